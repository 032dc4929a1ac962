package ir

import (
	"fmt"
	"strings"
)

// Printer provides pretty-printing for instruction sequences.
type Printer struct {
	output strings.Builder
}

func NewPrinter() *Printer {
	return &Printer{}
}

// Dump returns a line-per-instruction rendering of a sequence, with
// instruction indices for cross-referencing diagnostics.
func Dump(seq []Instr) string {
	p := NewPrinter()
	p.printSequence(seq)
	return p.output.String()
}

func (p *Printer) printSequence(seq []Instr) {
	for i, instr := range seq {
		p.writeLine("%3d: %s", i, instr.String())
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}
