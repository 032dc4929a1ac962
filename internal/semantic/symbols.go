package semantic

import (
	"tinyc/internal/ast"
)

type Symbol struct {
	Name     string
	Position ast.Position
}

// SymbolTable tracks assigned variable names. The language has a single
// flat scope, so there is no parent chaining.
type SymbolTable struct {
	symbols map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
	}
}

func (st *SymbolTable) Define(name string, pos ast.Position) *Symbol {
	symbol := &Symbol{
		Name:     name,
		Position: pos,
	}
	st.symbols[name] = symbol
	return symbol
}

func (st *SymbolTable) Lookup(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	return nil
}

// Names returns the set of all defined names.
func (st *SymbolTable) Names() map[string]struct{} {
	names := make(map[string]struct{}, len(st.symbols))
	for name := range st.symbols {
		names[name] = struct{}{}
	}
	return names
}
