package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type Program struct {
	Statements []*Statement `parser:"@@*"`
}

type Statement struct {
	Print  *PrintStmt  `parser:"  @@"`
	Assign *AssignStmt `parser:"| @@"`
}

type PrintStmt struct {
	Pos lexer.Position

	Value *Expr `parser:"'print' @@ ';'"`
}

type AssignStmt struct {
	Pos lexer.Position

	Name  string `parser:"@Ident '='"`
	Value *Expr  `parser:"@@ ';'"`
}

type Expr struct {
	First *Term   `parser:"@@"`
	Rest  []*Term `parser:"{ '+' @@ }"`
}

type Term struct {
	Pos lexer.Position

	Input  bool    `parser:"  @'input'"`
	Number *string `parser:"| @Integer"`
	Ident  *string `parser:"| @Ident"`
	Parens *Expr   `parser:"| '(' @@ ')'"`
}
