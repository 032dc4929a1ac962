// Package codegen emits x86-64 assembly (AT&T syntax) for an optimized
// instruction sequence. The whole program becomes one procedure with no
// control flow; every IR cell gets a dedicated stack slot and every
// instruction expands to one fixed pattern through the accumulator.
// There is no register allocation and no instruction selection.
package codegen

import (
	"fmt"
	"math"
	"strings"

	"tinyc/internal/ir"
)

const (
	wordSize   = 8
	stackAlign = 16

	// scratchReg materializes literals too wide for an imm32 field.
	// Caller-saved and never live across an instruction pattern.
	scratchReg = "%r10"

	entrySymbol  = "main"
	inputRoutine = "tiny_input"
	printRoutine = "tiny_print"
)

// Options configures symbol naming. Emission logic never branches on
// the target; the prefix is pure configuration.
type Options struct {
	// UnderscorePrefix prepends '_' to every global and external symbol,
	// per the Mach-O naming convention.
	UnderscorePrefix bool
}

// Generator accumulates assembly text for one compilation unit.
type Generator struct {
	opts Options
	out  strings.Builder
}

func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate returns the assembly text for a sequence.
func Generate(seq []ir.Instr, opts Options) string {
	g := NewGenerator(opts)
	g.program(seq)
	return g.out.String()
}

// FrameSize returns the stack space reserved below the frame pointer:
// one word per cell id up to the maximum id referenced, rounded up so
// the frame (together with the saved %rbp and return address) keeps the
// platform's 16-byte alignment. Unused lower ids still reserve a slot
// since ids are allocated densely.
func FrameSize(seq []ir.Instr) int {
	raw := wordSize * ir.MaxCellID(seq)
	return (raw + stackAlign - 1) / stackAlign * stackAlign
}

func (g *Generator) program(seq []ir.Instr) {
	frame := FrameSize(seq)

	g.directive(".text")
	g.directive(".globl\t%s", g.symbol(entrySymbol))
	g.label(g.symbol(entrySymbol))

	// Frame setup.
	g.op("pushq\t%%rbp")
	g.op("movq\t%%rsp, %%rbp")
	if frame > 0 {
		g.op("subq\t$%d, %%rsp", frame)
	}

	for _, instr := range seq {
		g.instr(instr)
	}

	// Teardown: zero exit status, restore frame, return.
	g.blank()
	g.op("movq\t$0, %%rax")
	g.op("leave")
	g.op("ret")
}

// instr expands one IR instruction into its fixed pattern, preceded by
// a comment rendering the source instruction.
func (g *Generator) instr(instr ir.Instr) {
	g.blank()
	g.comment(instr.String())

	switch i := instr.(type) {
	case ir.Add:
		g.load(i.Left, "%rax")
		if lit, ok := i.Right.(ir.Literal); ok && !fitsImm32(lit.Value) {
			g.op("movabsq\t$%d, %s", lit.Value, scratchReg)
			g.op("addq\t%s, %%rax", scratchReg)
		} else {
			g.op("addq\t%s, %%rax", g.operand(i.Right))
		}
		g.op("movq\t%%rax, %s", g.operand(i.Dst))
	case ir.Copy:
		g.load(i.Src, "%rax")
		g.op("movq\t%%rax, %s", g.operand(i.Dst))
	case ir.Input:
		g.op("call\t%s", g.symbol(inputRoutine))
		g.op("movq\t%%rax, %s", g.operand(i.Dst))
	case ir.Print:
		g.load(i.Src, "%rax")
		g.op("movq\t%%rax, %%rdi")
		g.op("call\t%s", g.symbol(printRoutine))
	}
}

// load places an operand's value in reg. movq sign-extends a 32-bit
// immediate; wider literals, which constant folding can produce, go
// through movabsq.
func (g *Generator) load(op ir.Operand, reg string) {
	if lit, ok := op.(ir.Literal); ok && !fitsImm32(lit.Value) {
		g.op("movabsq\t$%d, %s", lit.Value, reg)
		return
	}
	g.op("movq\t%s, %s", g.operand(op), reg)
}

func fitsImm32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// operand renders a literal as an immediate and a cell as its
// frame-relative slot. Immediates wider than 32 bits never reach this
// path; load and the Add pattern materialize them through a register.
func (g *Generator) operand(op ir.Operand) string {
	switch o := op.(type) {
	case ir.Literal:
		return fmt.Sprintf("$%d", o.Value)
	case ir.Cell:
		return fmt.Sprintf("-%d(%%rbp)", wordSize*o.ID)
	}
	return ""
}

func (g *Generator) symbol(name string) string {
	if g.opts.UnderscorePrefix {
		return "_" + name
	}
	return name
}

func (g *Generator) directive(format string, args ...interface{}) {
	g.out.WriteString("\t")
	g.out.WriteString(fmt.Sprintf(format, args...))
	g.out.WriteString("\n")
}

func (g *Generator) label(name string) {
	g.out.WriteString(name)
	g.out.WriteString(":\n")
}

func (g *Generator) op(format string, args ...interface{}) {
	g.out.WriteString("\t")
	g.out.WriteString(fmt.Sprintf(format, args...))
	g.out.WriteString("\n")
}

func (g *Generator) comment(text string) {
	g.out.WriteString("\t# ")
	g.out.WriteString(text)
	g.out.WriteString("\n")
}

func (g *Generator) blank() {
	g.out.WriteString("\n")
}
