// Package repl evaluates statements interactively with a persistent
// environment, using the tree-walking interpreter rather than the
// compilation pipeline.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tinyc/grammar"
	"tinyc/internal/interp"
)

const PROMPT = ">> "

// Start runs the read-eval loop until in is exhausted. The loop and the
// interpreter share one buffered reader, so an input expression reads
// the bytes following its own line rather than racing a second buffer
// for them.
func Start(in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)
	interpreter := interp.New(reader, out)

	for {
		fmt.Fprint(out, PROMPT)
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			eval(interpreter, line, out)
		}
		if err != nil {
			return
		}
	}
}

func eval(interpreter *interp.Interpreter, line string, out io.Writer) {
	program, err := grammar.Parse("repl", line)
	if err != nil {
		color.Red("%v", err)
		return
	}

	for _, stmt := range program.Stmts {
		if err := interpreter.Exec(stmt); err != nil {
			color.Red("%v", err)
			return
		}
	}
}
