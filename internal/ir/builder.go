package ir

import (
	"fmt"

	"tinyc/internal/ast"
	"tinyc/internal/errors"
)

// Builder lowers a checked AST to three-address code. It owns the two
// pieces of per-compilation state: the fresh-cell counter and the symbol
// table mapping each variable name to the cell holding its current value.
type Builder struct {
	cellCounter int
	symbols     map[string]Cell
}

func NewBuilder() *Builder {
	return &Builder{
		symbols: make(map[string]Cell),
	}
}

// Translate lowers a whole program with a fresh builder. The input must
// already have passed scope checking; an undefined variable here is a
// precondition violation and surfaces as a scope error rather than a
// panic.
func Translate(program *ast.Program) ([]Instr, error) {
	return NewBuilder().Build(program)
}

// Build lowers the program's statements in source order, threading one
// symbol table and one cell counter through the whole unit.
func (b *Builder) Build(program *ast.Program) ([]Instr, error) {
	var seq []Instr
	for _, stmt := range program.Stmts {
		code, err := b.stmt(stmt)
		if err != nil {
			return nil, err
		}
		seq = append(seq, code...)
	}
	return seq, nil
}

func (b *Builder) stmt(stmt ast.Stmt) ([]Instr, error) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		code, result, err := b.expr(s.Value)
		if err != nil {
			return nil, err
		}
		// First assignment allocates the variable's cell; subsequent
		// assignments reuse it so every reference sees the latest value.
		dst, bound := b.symbols[s.Name]
		if !bound {
			dst = b.fresh()
			b.symbols[s.Name] = dst
		}
		return append(code, Copy{Dst: dst, Src: result}), nil
	case *ast.PrintStmt:
		code, result, err := b.expr(s.Value)
		if err != nil {
			return nil, err
		}
		return append(code, Print{Src: result}), nil
	}
	return nil, fmt.Errorf("unsupported statement type: %T", stmt)
}

// expr lowers an expression post-order and returns the generated code
// together with the cell holding the expression's result. A variable
// reference generates no code: its result is the cell already bound to
// the name.
func (b *Builder) expr(expr ast.Expr) ([]Instr, Cell, error) {
	switch e := expr.(type) {
	case *ast.InputExpr:
		dst := b.fresh()
		return []Instr{Input{Dst: dst}}, dst, nil
	case *ast.LiteralExpr:
		dst := b.fresh()
		return []Instr{Copy{Dst: dst, Src: Literal{Value: int64(e.Value)}}}, dst, nil
	case *ast.AddExpr:
		left, leftResult, err := b.expr(e.Left)
		if err != nil {
			return nil, Cell{}, err
		}
		right, rightResult, err := b.expr(e.Right)
		if err != nil {
			return nil, Cell{}, err
		}
		dst := b.fresh()
		code := append(left, right...)
		return append(code, Add{Dst: dst, Left: leftResult, Right: rightResult}), dst, nil
	case *ast.VarExpr:
		cell, bound := b.symbols[e.Name]
		if !bound {
			return nil, Cell{}, errors.NewScopeError(
				fmt.Sprintf("undefined variable '%s' reached IR generation", e.Name),
				e.Pos, len(e.Name))
		}
		return nil, cell, nil
	}
	return nil, Cell{}, fmt.Errorf("unsupported expression type: %T", expr)
}

// fresh allocates the next cell id. IDs start at 1 and are never reused
// within a compilation.
func (b *Builder) fresh() Cell {
	b.cellCounter++
	return Cell{ID: b.cellCounter}
}
