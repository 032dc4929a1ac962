package errors

import (
	"fmt"

	"tinyc/internal/ast"
)

// Kind classifies what stage of compilation produced an error.
type Kind string

const (
	KindSyntax Kind = "syntax"
	KindScope  Kind = "scope"
	KindLink   Kind = "link"
)

// Stable error codes, one per kind, used in diagnostic headers.
var codes = map[Kind]string{
	KindSyntax: "E0001",
	KindScope:  "E0002",
	KindLink:   "E0003",
}

// CompilerError is a structured diagnostic. Errors are plain values
// propagated to the caller; no stage of the compiler panics on bad input.
type CompilerError struct {
	Kind     Kind
	Message  string
	Position ast.Position
	Length   int      // length of the problematic region, 0 for point errors
	Notes    []string // additional context lines
}

func (e CompilerError) Error() string {
	if e.Position.Line > 0 {
		return fmt.Sprintf("%s error at %d:%d: %s", e.Kind, e.Position.Line, e.Position.Column, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Code returns the stable code for the error's kind.
func (e CompilerError) Code() string {
	return codes[e.Kind]
}

// NewSyntaxError builds a syntax diagnostic at the given position.
func NewSyntaxError(message string, pos ast.Position) CompilerError {
	return CompilerError{Kind: KindSyntax, Message: message, Position: pos}
}

// NewScopeError builds a scope diagnostic for a name reference.
func NewScopeError(message string, pos ast.Position, length int) CompilerError {
	return CompilerError{Kind: KindScope, Message: message, Position: pos, Length: length}
}
