package grammar

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"tinyc/internal/ast"
	"tinyc/internal/errors"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(TinyLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse parses source text into an AST. Syntax problems come back as
// errors.CompilerError values with KindSyntax.
func Parse(filename, source string) (*ast.Program, error) {
	tree, err := parser.ParseString(filename, source)
	if err != nil {
		if pe, ok := err.(participle.Error); ok {
			pos := pe.Position()
			return nil, errors.NewSyntaxError(pe.Message(), ast.Position{Line: pos.Line, Column: pos.Column})
		}
		return nil, errors.NewSyntaxError(err.Error(), ast.Position{})
	}
	return convertProgram(tree)
}

func convertProgram(tree *Program) (*ast.Program, error) {
	program := &ast.Program{}
	for _, stmt := range tree.Statements {
		converted, err := convertStatement(stmt)
		if err != nil {
			return nil, err
		}
		program.Stmts = append(program.Stmts, converted)
	}
	return program, nil
}

func convertStatement(stmt *Statement) (ast.Stmt, error) {
	switch {
	case stmt.Print != nil:
		value, err := convertExpr(stmt.Print.Value)
		if err != nil {
			return nil, err
		}
		return &ast.PrintStmt{Pos: convertPos(stmt.Print.Pos), Value: value}, nil
	case stmt.Assign != nil:
		value, err := convertExpr(stmt.Assign.Value)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{
			Pos:   convertPos(stmt.Assign.Pos),
			Name:  stmt.Assign.Name,
			Value: value,
		}, nil
	}
	return nil, errors.NewSyntaxError("empty statement", ast.Position{})
}

// convertExpr folds the flat addition chain left-associatively.
func convertExpr(expr *Expr) (ast.Expr, error) {
	result, err := convertTerm(expr.First)
	if err != nil {
		return nil, err
	}
	for _, term := range expr.Rest {
		right, err := convertTerm(term)
		if err != nil {
			return nil, err
		}
		result = &ast.AddExpr{Left: result, Right: right}
	}
	return result, nil
}

func convertTerm(term *Term) (ast.Expr, error) {
	pos := convertPos(term.Pos)
	switch {
	case term.Input:
		return &ast.InputExpr{Pos: pos}, nil
	case term.Number != nil:
		value, err := strconv.ParseInt(*term.Number, 10, 32)
		if err != nil {
			return nil, errors.NewSyntaxError("integer literal out of 32-bit range: "+*term.Number, pos)
		}
		return &ast.LiteralExpr{Pos: pos, Value: int32(value)}, nil
	case term.Ident != nil:
		return &ast.VarExpr{Pos: pos, Name: *term.Ident}, nil
	case term.Parens != nil:
		return convertExpr(term.Parens)
	}
	return nil, errors.NewSyntaxError("empty expression", pos)
}

func convertPos(pos lexer.Position) ast.Position {
	return ast.Position{Line: pos.Line, Column: pos.Column}
}
