package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tinyc/internal/errors"
)

// ConvertError transforms a single compiler error into LSP diagnostics.
func ConvertError(err error) []protocol.Diagnostic {
	ce, ok := err.(errors.CompilerError)
	if !ok {
		return nil
	}
	return []protocol.Diagnostic{toDiagnostic(ce)}
}

// ConvertScopeErrors transforms scope-check errors into LSP diagnostics
// for IDE display.
func ConvertScopeErrors(scopeErrors []errors.CompilerError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic
	for _, scopeErr := range scopeErrors {
		diagnostics = append(diagnostics, toDiagnostic(scopeErr))
	}
	return diagnostics
}

func toDiagnostic(err errors.CompilerError) protocol.Diagnostic {
	length := err.Length
	if length <= 0 {
		length = 1 // point errors still need a visible span
	}
	if err.Position.Line < 1 {
		err.Position.Line = 1
	}
	if err.Position.Column < 1 {
		err.Position.Column = 1
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(err.Position.Line - 1), // convert to 0-based indexing
				Character: uint32(err.Position.Column - 1),
			},
			End: protocol.Position{
				Line:      uint32(err.Position.Line - 1),
				Character: uint32(err.Position.Column - 1 + length),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("tinyc-" + string(err.Kind)),
		Message:  err.Message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
