package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"tinyc/grammar"
	"tinyc/internal/codegen"
	"tinyc/internal/errors"
	"tinyc/internal/interp"
	"tinyc/internal/ir"
	"tinyc/internal/semantic"
	"tinyc/internal/toolchain"
)

func main() {
	outPath := flag.String("o", "a.out", "output executable path")
	emitIR := flag.String("emit-ir", "", "dump IR and exit: 'raw' or 'opt'")
	emitASM := flag.Bool("emit-asm", false, "print generated assembly instead of linking")
	run := flag.Bool("run", false, "interpret the program instead of compiling")
	noOpt := flag.Bool("no-opt", false, "skip the optimization pipeline")
	traceOpt := flag.Bool("trace-opt", false, "print IR after each optimization pass")
	underscore := flag.Bool("underscore", false, "prefix global symbols with '_' (Mach-O naming)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: tinyc [flags] <file.tiny>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	startTime := time.Now()
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	reporter := errors.NewReporter(path, string(source))

	program, err := grammar.Parse(path, string(source))
	if err != nil {
		reportAndExit(reporter, err, startTime)
	}

	_, scopeErrors := semantic.Check(program)
	if len(scopeErrors) > 0 {
		for _, scopeErr := range scopeErrors {
			fmt.Print(reporter.Format(scopeErr))
		}
		failAndExit(startTime)
	}

	if *run {
		if err := interp.Run(program, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	seq, err := ir.Translate(program)
	if err != nil {
		reportAndExit(reporter, err, startTime)
	}

	if *emitIR == "raw" {
		fmt.Print(ir.Dump(seq))
		return
	}

	if !*noOpt {
		pipeline := ir.NewPipeline()
		if *traceOpt {
			pipeline.SetObserver(func(pass string, out []ir.Instr) {
				color.Cyan("after %s:", pass)
				fmt.Print(ir.Dump(out))
			})
		}
		seq = pipeline.Run(seq)
	}

	if *emitIR == "opt" {
		fmt.Print(ir.Dump(seq))
		return
	}

	asmText := codegen.Generate(seq, codegen.Options{UnderscorePrefix: *underscore})
	if *emitASM {
		fmt.Print(asmText)
		return
	}

	if err := toolchain.AssembleAndLink(asmText, *outPath); err != nil {
		color.Red("toolchain error: %v", err)
		failAndExit(startTime)
	}

	color.Green("Successfully compiled %s to %s in %s", path, *outPath, formatDuration(time.Since(startTime)))
}

func reportAndExit(reporter *errors.Reporter, err error, startTime time.Time) {
	if ce, ok := err.(errors.CompilerError); ok {
		fmt.Print(reporter.Format(ce))
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	failAndExit(startTime)
}

func failAndExit(startTime time.Time) {
	color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
	os.Exit(1)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
