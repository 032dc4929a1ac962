package ir

import (
	"fmt"
)

// Three-address code for the tiny language. A program lowers to a flat,
// ordered instruction sequence: there are no basic blocks because the
// language has no control flow. Sequences honor def-before-use by
// construction; cells may be redefined, so this is not SSA.

// Operand is a closed sum of the two value sources an instruction can
// read: a storage cell or an immediate. Both variants have value
// semantics, so == compares operands structurally.
type Operand interface {
	isOperand()
	String() string
}

// Cell is an abstract storage location, analogous to an unbounded
// register. IDs are positive and allocated densely per compilation.
type Cell struct {
	ID int
}

// Literal is an immediate integer value.
type Literal struct {
	Value int64
}

func (Cell) isOperand()    {}
func (Literal) isOperand() {}

func (c Cell) String() string    { return fmt.Sprintf("t%d", c.ID) }
func (l Literal) String() string { return fmt.Sprintf("%d", l.Value) }

// Instr is a closed sum of the four instruction variants. Instructions
// are immutable values; optimization passes build new sequences rather
// than mutating in place.
type Instr interface {
	// Dest returns the cell the instruction defines, if any.
	Dest() (Cell, bool)
	// Sources returns the operands the instruction reads.
	Sources() []Operand
	String() string
	isInstr()
}

// Add computes Dst := Left + Right.
type Add struct {
	Dst   Cell
	Left  Operand
	Right Operand
}

// Copy computes Dst := Src.
type Copy struct {
	Dst Cell
	Src Operand
}

// Input reads one integer from external input into Dst.
type Input struct {
	Dst Cell
}

// Print emits the value of Src to external output.
type Print struct {
	Src Operand
}

func (Add) isInstr()   {}
func (Copy) isInstr()  {}
func (Input) isInstr() {}
func (Print) isInstr() {}

func (a Add) Dest() (Cell, bool)   { return a.Dst, true }
func (c Copy) Dest() (Cell, bool)  { return c.Dst, true }
func (i Input) Dest() (Cell, bool) { return i.Dst, true }
func (Print) Dest() (Cell, bool)   { return Cell{}, false }

func (a Add) Sources() []Operand { return []Operand{a.Left, a.Right} }
func (c Copy) Sources() []Operand { return []Operand{c.Src} }
func (Input) Sources() []Operand  { return nil }
func (p Print) Sources() []Operand { return []Operand{p.Src} }

func (a Add) String() string   { return fmt.Sprintf("%s := %s + %s", a.Dst, a.Left, a.Right) }
func (c Copy) String() string  { return fmt.Sprintf("%s := %s", c.Dst, c.Src) }
func (i Input) String() string { return fmt.Sprintf("%s := input()", i.Dst) }
func (p Print) String() string { return fmt.Sprintf("print %s", p.Src) }

// Equal reports whether two sequences are structurally identical.
// Instruction variants hold only comparable value types, so element
// comparison with == is structural.
func Equal(a, b []Instr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MaxCellID returns the largest cell id referenced anywhere in the
// sequence, or zero for an empty sequence. IDs are allocated densely, so
// this bounds the number of storage slots a backend must reserve.
func MaxCellID(seq []Instr) int {
	maxID := 0
	for _, instr := range seq {
		if dst, ok := instr.Dest(); ok && dst.ID > maxID {
			maxID = dst.ID
		}
		for _, src := range instr.Sources() {
			if cell, ok := src.(Cell); ok && cell.ID > maxID {
				maxID = cell.ID
			}
		}
	}
	return maxID
}
