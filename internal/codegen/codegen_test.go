package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyc/grammar"
	"tinyc/internal/codegen"
	"tinyc/internal/ir"
)

func compile(t *testing.T, source string, opts codegen.Options) (string, []ir.Instr) {
	t.Helper()
	program, err := grammar.Parse("test.tiny", source)
	require.NoError(t, err)
	seq, err := ir.BuildProgram(program)
	require.NoError(t, err)
	return codegen.Generate(seq, opts), seq
}

func TestGenerateFrameAndEpilogue(t *testing.T) {
	seq := []ir.Instr{
		ir.Copy{Dst: ir.Cell{ID: 1}, Src: ir.Literal{Value: 3}},
		ir.Print{Src: ir.Cell{ID: 1}},
	}

	asm := codegen.Generate(seq, codegen.Options{})

	assert.Contains(t, asm, ".globl\tmain")
	assert.Contains(t, asm, "main:")
	assert.Contains(t, asm, "pushq\t%rbp")
	assert.Contains(t, asm, "movq\t%rsp, %rbp")
	assert.Contains(t, asm, "subq\t$16, %rsp")
	assert.Contains(t, asm, "movq\t$0, %rax")
	assert.Contains(t, asm, "leave")
	assert.Contains(t, asm, "ret")
}

func TestGenerateFixedPatterns(t *testing.T) {
	seq := []ir.Instr{
		ir.Input{Dst: ir.Cell{ID: 1}},
		ir.Add{Dst: ir.Cell{ID: 2}, Left: ir.Cell{ID: 1}, Right: ir.Literal{Value: 5}},
		ir.Copy{Dst: ir.Cell{ID: 3}, Src: ir.Cell{ID: 2}},
		ir.Print{Src: ir.Cell{ID: 3}},
	}

	asm := codegen.Generate(seq, codegen.Options{})

	// Input: call runtime, store result.
	assert.Contains(t, asm, "call\ttiny_input")
	assert.Contains(t, asm, "movq\t%rax, -8(%rbp)")

	// Add: load, add, store into the destination slot.
	assert.Contains(t, asm, "movq\t-8(%rbp), %rax")
	assert.Contains(t, asm, "addq\t$5, %rax")
	assert.Contains(t, asm, "movq\t%rax, -16(%rbp)")

	// Print: value through the argument register.
	assert.Contains(t, asm, "movq\t%rax, %rdi")
	assert.Contains(t, asm, "call\ttiny_print")
}

func TestGenerateAnnotations(t *testing.T) {
	seq := []ir.Instr{
		ir.Add{Dst: ir.Cell{ID: 3}, Left: ir.Cell{ID: 1}, Right: ir.Cell{ID: 2}},
	}

	asm := codegen.Generate(seq, codegen.Options{})
	assert.Contains(t, asm, "# t3 := t1 + t2")
}

func TestGenerateUnderscorePrefix(t *testing.T) {
	seq := []ir.Instr{
		ir.Input{Dst: ir.Cell{ID: 1}},
		ir.Print{Src: ir.Cell{ID: 1}},
	}

	asm := codegen.Generate(seq, codegen.Options{UnderscorePrefix: true})

	assert.Contains(t, asm, ".globl\t_main")
	assert.Contains(t, asm, "_main:")
	assert.Contains(t, asm, "call\t_tiny_input")
	assert.Contains(t, asm, "call\t_tiny_print")
	assert.NotContains(t, asm, "call\ttiny_input")
}

func TestFrameSizeAlignmentAndMonotonicity(t *testing.T) {
	prev := 0
	for maxID := 0; maxID <= 20; maxID++ {
		var seq []ir.Instr
		if maxID > 0 {
			seq = []ir.Instr{ir.Copy{Dst: ir.Cell{ID: maxID}, Src: ir.Literal{Value: 1}}}
		}
		size := codegen.FrameSize(seq)
		assert.Zerof(t, size%16, "frame size %d not 16-byte aligned for max id %d", size, maxID)
		assert.GreaterOrEqualf(t, size, prev, "frame size shrank at max id %d", maxID)
		assert.GreaterOrEqual(t, size, 8*maxID, "frame must hold one word per cell id")
		prev = size
	}
}

func TestFrameSizeCountsUnusedLowerIDs(t *testing.T) {
	// IDs are allocated densely; a sequence referencing only t5 still
	// reserves slots 1-5.
	seq := []ir.Instr{
		ir.Copy{Dst: ir.Cell{ID: 5}, Src: ir.Literal{Value: 1}},
	}
	assert.Equal(t, 48, codegen.FrameSize(seq))
}

func TestEndToEndConstantProgram(t *testing.T) {
	asm, seq := compile(t, "x = 3;\ny = 4;\nz = x + y;\nprint z;\n", codegen.Options{})

	// Optimization reduces the program to printing the constant 7.
	require.Equal(t, []ir.Instr{ir.Print{Src: ir.Literal{Value: 7}}}, seq)

	assert.Contains(t, asm, "movq\t$7, %rax")
	assert.Contains(t, asm, "call\ttiny_print")
	assert.NotContains(t, asm, "tiny_input")
}

func TestEndToEndEchoProgram(t *testing.T) {
	asm, seq := compile(t, "a = input;\nprint a;\n", codegen.Options{})

	require.Equal(t, []ir.Instr{
		ir.Input{Dst: ir.Cell{ID: 1}},
		ir.Print{Src: ir.Cell{ID: 1}},
	}, seq)

	assert.Equal(t, 1, strings.Count(asm, "call\ttiny_input"))
	assert.Equal(t, 1, strings.Count(asm, "call\ttiny_print"))
}

func TestGenerateWideLiteralOperands(t *testing.T) {
	// Folding can produce literals outside the signed 32-bit immediate
	// range; those go through a register instead of an imm field.
	seq := []ir.Instr{
		ir.Copy{Dst: ir.Cell{ID: 1}, Src: ir.Literal{Value: 4000000000}},
		ir.Add{Dst: ir.Cell{ID: 2}, Left: ir.Cell{ID: 1}, Right: ir.Literal{Value: -4000000000}},
		ir.Print{Src: ir.Literal{Value: 5000000000}},
	}

	asm := codegen.Generate(seq, codegen.Options{})

	assert.Contains(t, asm, "movabsq\t$4000000000, %rax")
	assert.Contains(t, asm, "movabsq\t$-4000000000, %r10")
	assert.Contains(t, asm, "addq\t%r10, %rax")
	assert.Contains(t, asm, "movabsq\t$5000000000, %rax")
	assert.NotContains(t, asm, "$-4000000000, %rax")
	assert.NotContains(t, asm, "addq\t$-4000000000")
}

func TestGenerateImm32BoundaryLiterals(t *testing.T) {
	seq := []ir.Instr{
		ir.Add{Dst: ir.Cell{ID: 1}, Left: ir.Literal{Value: 2147483647}, Right: ir.Literal{Value: -2147483648}},
	}

	asm := codegen.Generate(seq, codegen.Options{})

	// Both bounds still fit a sign-extended imm32.
	assert.Contains(t, asm, "movq\t$2147483647, %rax")
	assert.Contains(t, asm, "addq\t$-2147483648, %rax")
	assert.NotContains(t, asm, "movabsq")
}

func TestEndToEndWideLiteralSum(t *testing.T) {
	asm, seq := compile(t, "a = input;\nx = 2000000000 + 2000000000;\nprint a + x;\n", codegen.Options{})

	require.Equal(t, []ir.Instr{
		ir.Input{Dst: ir.Cell{ID: 1}},
		ir.Add{Dst: ir.Cell{ID: 7}, Left: ir.Cell{ID: 1}, Right: ir.Literal{Value: 4000000000}},
		ir.Print{Src: ir.Cell{ID: 7}},
	}, seq)

	assert.Contains(t, asm, "movabsq\t$4000000000, %r10")
	assert.Contains(t, asm, "addq\t%r10, %rax")
	assert.NotContains(t, asm, "addq\t$4000000000")
}

func TestGenerateEmptySequence(t *testing.T) {
	asm := codegen.Generate(nil, codegen.Options{})

	assert.Contains(t, asm, "main:")
	assert.NotContains(t, asm, "subq", "no cells means no frame reservation")
	assert.Contains(t, asm, "ret")
}
