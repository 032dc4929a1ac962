// Package interp is a tree-walking interpreter over the AST. It shares
// the front end with the compiler but evaluates directly, with the same
// observable input/output behavior as compiled programs: the "Input: "
// prompt and "Output: " label match the runtime library.
package interp

import (
	"bufio"
	"fmt"
	"io"

	"tinyc/internal/ast"
	"tinyc/internal/errors"
)

// Env maps variable names to their current values.
type Env map[string]int64

// Interpreter evaluates statements against a persistent environment, so
// the REPL can feed it one statement at a time.
type Interpreter struct {
	env Env
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Interpreter {
	return &Interpreter{
		env: make(Env),
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run executes a whole program in statement order.
func Run(program *ast.Program, in io.Reader, out io.Writer) error {
	return New(in, out).Run(program)
}

func (i *Interpreter) Run(program *ast.Program) error {
	for _, stmt := range program.Stmts {
		if err := i.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Exec executes a single statement, updating the environment.
func (i *Interpreter) Exec(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		value, err := i.eval(s.Value)
		if err != nil {
			return err
		}
		i.env[s.Name] = value
		return nil
	case *ast.PrintStmt:
		value, err := i.eval(s.Value)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(i.out, "Output: %d\n", value)
		return err
	}
	return fmt.Errorf("unsupported statement type: %T", stmt)
}

func (i *Interpreter) eval(expr ast.Expr) (int64, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return int64(e.Value), nil
	case *ast.AddExpr:
		left, err := i.eval(e.Left)
		if err != nil {
			return 0, err
		}
		right, err := i.eval(e.Right)
		if err != nil {
			return 0, err
		}
		return left + right, nil
	case *ast.VarExpr:
		value, bound := i.env[e.Name]
		if !bound {
			return 0, errors.NewScopeError(
				fmt.Sprintf("undefined variable '%s'", e.Name),
				e.Pos, len(e.Name))
		}
		return value, nil
	case *ast.InputExpr:
		fmt.Fprint(i.out, "Input: ")
		var value int64
		if _, err := fmt.Fscan(i.in, &value); err != nil {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
		return value, nil
	}
	return 0, fmt.Errorf("unsupported expression type: %T", expr)
}
