package ast

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

type Node interface {
	NodePos() Position
	String() string
}

func (p *Program) NodePos() Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].NodePos()
	}
	return Position{Line: 1, Column: 1}
}

func (a *AssignStmt) NodePos() Position { return a.Pos }
func (p *PrintStmt) NodePos() Position  { return p.Pos }

func (i *InputExpr) NodePos() Position   { return i.Pos }
func (l *LiteralExpr) NodePos() Position { return l.Pos }
func (a *AddExpr) NodePos() Position     { return a.Left.NodePos() }
func (v *VarExpr) NodePos() Position     { return v.Pos }
