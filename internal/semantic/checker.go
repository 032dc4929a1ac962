package semantic

import (
	"fmt"

	"tinyc/internal/ast"
	"tinyc/internal/errors"
)

// Checker validates that every variable reference names a previously
// assigned variable. It runs after parsing and before IR generation;
// downstream stages treat an unchecked AST as a precondition violation.
type Checker struct {
	symbols *SymbolTable
	errors  []errors.CompilerError
}

func NewChecker() *Checker {
	return &Checker{
		symbols: NewSymbolTable(),
	}
}

// Check walks the program in statement order. A variable becomes defined
// only after the statement assigning it, so its own right-hand side may
// not reference it.
func Check(program *ast.Program) (map[string]struct{}, []errors.CompilerError) {
	checker := NewChecker()
	checker.checkProgram(program)
	return checker.symbols.Names(), checker.errors
}

func (c *Checker) checkProgram(program *ast.Program) {
	for _, stmt := range program.Stmts {
		c.checkStmt(stmt)
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		c.checkExpr(s.Value)
		c.symbols.Define(s.Name, s.Pos)
	case *ast.PrintStmt:
		c.checkExpr(s.Value)
	}
}

func (c *Checker) checkExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.AddExpr:
		c.checkExpr(e.Left)
		c.checkExpr(e.Right)
	case *ast.VarExpr:
		if c.symbols.Lookup(e.Name) == nil {
			c.errors = append(c.errors, errors.NewScopeError(
				fmt.Sprintf("undefined variable '%s'", e.Name),
				e.Pos, len(e.Name)))
		}
	case *ast.InputExpr, *ast.LiteralExpr:
		// Always valid.
	}
}
