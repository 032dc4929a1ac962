package ir

// This package is the compiler's middle end: a flat three-address code,
// the AST lowering that produces it, and the optimization pipeline that
// rewrites it to a fixpoint before code generation.

import (
	"tinyc/internal/ast"
)

// BuildProgram lowers a checked AST and optimizes the result with the
// default pipeline.
func BuildProgram(program *ast.Program) ([]Instr, error) {
	seq, err := Translate(program)
	if err != nil {
		return nil, err
	}
	return Optimize(seq), nil
}
