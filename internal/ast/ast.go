package ast

// Program is an ordered sequence of statements. There is no nesting:
// the language has no functions, blocks, or control flow.
type Program struct {
	Stmts []Stmt
}

type Stmt interface {
	Node
	isStmt()
}

// AssignStmt binds the value of an expression to a variable name.
type AssignStmt struct {
	Pos   Position
	Name  string
	Value Expr
}

// PrintStmt writes the value of an expression to program output.
type PrintStmt struct {
	Pos   Position
	Value Expr
}

func (*AssignStmt) isStmt() {}
func (*PrintStmt) isStmt()  {}

type Expr interface {
	Node
	isExpr()
}

// InputExpr reads one integer from program input.
type InputExpr struct {
	Pos Position
}

// LiteralExpr is an integer literal. The concrete syntax limits
// literals to the 32-bit range; wider values come only from input.
type LiteralExpr struct {
	Pos   Position
	Value int32
}

// AddExpr is the sum of two subexpressions.
type AddExpr struct {
	Left  Expr
	Right Expr
}

// VarExpr references a previously assigned variable.
type VarExpr struct {
	Pos  Position
	Name string
}

func (*InputExpr) isExpr()   {}
func (*LiteralExpr) isExpr() {}
func (*AddExpr) isExpr()     {}
func (*VarExpr) isExpr()     {}
