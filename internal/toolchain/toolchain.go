// Package toolchain drives the external assembler/linker. It is the
// only place the compiler touches an out-of-process resource: the C
// compiler assembles the generated text and links it against the
// embedded runtime, which provides the input and output routines.
package toolchain

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

//go:embed runtime/runtime.c
var runtimeSource []byte

// LinkError reports a failed toolchain step. Failures are fatal for the
// compilation unit; there is no retry and no partial executable.
type LinkError struct {
	Step   string // which toolchain step failed
	Output string // combined tool output
	Err    error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s failed: %v\n%s", e.Step, e.Err, e.Output)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// compiler returns the C compiler to invoke, honoring $CC.
func compiler() string {
	if cc := os.Getenv("CC"); cc != "" {
		return cc
	}
	return "cc"
}

// AssembleAndLink assembles the generated text and links it with the
// runtime object into an executable at outPath. Each step runs exactly
// once; a nonzero exit from either surfaces as a *LinkError naming the
// step.
func AssembleAndLink(asmText string, outPath string) error {
	dir, err := os.MkdirTemp("", "tinyc-*")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(dir)

	runtimeC := filepath.Join(dir, "runtime.c")
	runtimeObj := filepath.Join(dir, "runtime.o")
	asmFile := filepath.Join(dir, "program.s")

	if err := os.WriteFile(runtimeC, runtimeSource, 0o644); err != nil {
		return fmt.Errorf("failed to write runtime source: %w", err)
	}
	if err := os.WriteFile(asmFile, []byte(asmText), 0o644); err != nil {
		return fmt.Errorf("failed to write assembly: %w", err)
	}

	if err := run("compile runtime", compiler(), "-c", runtimeC, "-o", runtimeObj); err != nil {
		return err
	}
	return run("link", compiler(), asmFile, runtimeObj, "-o", outPath)
}

func run(step string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &LinkError{Step: step, Output: string(output), Err: err}
	}
	return nil
}
