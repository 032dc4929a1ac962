package ast

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder
	for _, stmt := range p.Stmts {
		b.WriteString(stmt.String())
		b.WriteString("\n")
	}
	return b.String()
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s;", a.Name, a.Value.String())
}

func (p *PrintStmt) String() string {
	return fmt.Sprintf("print %s;", p.Value.String())
}

func (i *InputExpr) String() string {
	return "input"
}

func (l *LiteralExpr) String() string {
	return fmt.Sprintf("%d", l.Value)
}

func (a *AddExpr) String() string {
	return fmt.Sprintf("%s + %s", a.Left.String(), a.Right.String())
}

func (v *VarExpr) String() string {
	return v.Name
}
