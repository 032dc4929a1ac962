package lsp

import (
	"tinyc/internal/ast"
)

// SemanticToken represents a single LSP semantic token entry.
// Line and StartChar are 0-based positions; TokenType is an index into
// SemanticTokenTypes and TokenModifiers a bitmask over
// SemanticTokenModifiers.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

const (
	tokenKeyword = iota
	tokenVariable
	tokenNumber
)

const modifierDeclaration = 1 << 0

func collectSemanticTokens(program *ast.Program) []SemanticToken {
	var tokens []SemanticToken

	if program == nil {
		return tokens
	}

	for _, stmt := range program.Stmts {
		switch s := stmt.(type) {
		case *ast.AssignStmt:
			tokens = append(tokens, makeToken(s.Pos, len(s.Name), tokenVariable, modifierDeclaration))
			tokens = append(tokens, walkExpr(s.Value)...)
		case *ast.PrintStmt:
			tokens = append(tokens, makeToken(s.Pos, len("print"), tokenKeyword, 0))
			tokens = append(tokens, walkExpr(s.Value)...)
		}
	}

	return tokens
}

func walkExpr(expr ast.Expr) []SemanticToken {
	var tokens []SemanticToken

	switch e := expr.(type) {
	case *ast.AddExpr:
		tokens = append(tokens, walkExpr(e.Left)...)
		tokens = append(tokens, walkExpr(e.Right)...)
	case *ast.VarExpr:
		tokens = append(tokens, makeToken(e.Pos, len(e.Name), tokenVariable, 0))
	case *ast.InputExpr:
		tokens = append(tokens, makeToken(e.Pos, len("input"), tokenKeyword, 0))
	case *ast.LiteralExpr:
		tokens = append(tokens, makeToken(e.Pos, len(e.String()), tokenNumber, 0))
	}

	return tokens
}

func makeToken(pos ast.Position, length int, tokenType int, modifiers int) SemanticToken {
	return SemanticToken{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column - 1),
		Length:         uint32(length),
		TokenType:      tokenType,
		TokenModifiers: modifiers,
	}
}
