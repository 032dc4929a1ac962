package ir

// Optimization passes over instruction sequences. Each pass is a pure
// function: it consumes a sequence and produces a new one, never mutating
// its input. The pipeline iterates all passes to a fixpoint; termination
// follows from every pass only removing or simplifying instructions, so
// the instruction count can never grow and repeated application must
// stabilize.

// Pass represents a single optimization transformation.
type Pass interface {
	// Name returns a human-readable name for this pass.
	Name() string
	// Apply transforms a sequence into an equivalent, no-larger one.
	Apply(seq []Instr) []Instr
}

// Observer is called after each pass application with the pass name and
// its output. Observation is a diagnostic hook, not part of the
// transformation contract.
type Observer func(pass string, seq []Instr)

// Pipeline manages an ordered list of passes and drives them to a
// fixpoint. Pass order affects how fast the fixpoint is reached, not
// which sequence it is.
type Pipeline struct {
	passes        []Pass
	maxIterations int
	observer      Observer
}

// NewPipeline creates a pipeline with the default passes.
func NewPipeline() *Pipeline {
	pipeline := &Pipeline{
		maxIterations: 100,
	}

	pipeline.AddPass(&ConstantFolding{})
	pipeline.AddPass(&CopyPropagation{})
	pipeline.AddPass(&DeadCodeElimination{})

	return pipeline
}

// AddPass appends a pass to the pipeline.
func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// SetObserver installs a diagnostic hook invoked after each pass.
func (p *Pipeline) SetObserver(observer Observer) {
	p.observer = observer
}

// SetMaxIterations bounds the fixpoint loop. The bound is a safety
// valve, not a correctness requirement: well-formed passes converge long
// before the default of 100.
func (p *Pipeline) SetMaxIterations(n int) {
	p.maxIterations = n
}

// Run applies the whole pipeline repeatedly until an iteration leaves
// the sequence structurally unchanged, or the iteration bound is hit.
func (p *Pipeline) Run(seq []Instr) []Instr {
	current := seq
	for i := 0; i < p.maxIterations; i++ {
		next := current
		for _, pass := range p.passes {
			next = pass.Apply(next)
			if p.observer != nil {
				p.observer(pass.Name(), next)
			}
		}
		if Equal(next, current) {
			return next
		}
		current = next
	}
	return current
}

// Optimize runs the default pipeline on a sequence.
func Optimize(seq []Instr) []Instr {
	return NewPipeline().Run(seq)
}

// ConstantFolding replaces an Add whose operands are both literals with
// a Copy of their sum. One application is a single left-to-right sweep;
// chains of foldable adds exposed by other passes are handled by the
// pipeline's fixpoint iteration, not by looping here.
type ConstantFolding struct{}

func (cf *ConstantFolding) Name() string {
	return "constant-folding"
}

func (cf *ConstantFolding) Apply(seq []Instr) []Instr {
	result := make([]Instr, 0, len(seq))
	for _, instr := range seq {
		if add, ok := instr.(Add); ok {
			left, leftLit := add.Left.(Literal)
			right, rightLit := add.Right.(Literal)
			if leftLit && rightLit {
				result = append(result, Copy{Dst: add.Dst, Src: Literal{Value: left.Value + right.Value}})
				continue
			}
		}
		result = append(result, instr)
	}
	return result
}

// CopyPropagation rewrites each source operand to the canonical operand
// holding its value: the transitive source of the Copy chain that defined
// it, or the cell itself where the value is not known to be a copy
// (Input results, Add results).
type CopyPropagation struct{}

func (cp *CopyPropagation) Name() string {
	return "copy-propagation"
}

func (cp *CopyPropagation) Apply(seq []Instr) []Instr {
	// canonical maps a cell id to the operand currently holding the same
	// value. Literals appear only as map values, never keys.
	canonical := make(map[int]Operand)

	resolve := func(op Operand) Operand {
		if cell, ok := op.(Cell); ok {
			if repl, known := canonical[cell.ID]; known {
				return repl
			}
		}
		return op
	}

	// bind records a (re)definition of dst. Any cell whose canonical
	// operand was dst held the OLD value, so it reverts to canonicalizing
	// to itself before dst is rebound.
	bind := func(dst Cell, to Operand) {
		for id, op := range canonical {
			if cell, ok := op.(Cell); ok && cell.ID == dst.ID && id != dst.ID {
				canonical[id] = Cell{ID: id}
			}
		}
		canonical[dst.ID] = to
	}

	result := make([]Instr, 0, len(seq))
	for _, instr := range seq {
		switch i := instr.(type) {
		case Add:
			rewritten := Add{Dst: i.Dst, Left: resolve(i.Left), Right: resolve(i.Right)}
			bind(i.Dst, Cell{ID: i.Dst.ID})
			result = append(result, rewritten)
		case Copy:
			src := resolve(i.Src)
			bind(i.Dst, src)
			result = append(result, Copy{Dst: i.Dst, Src: src})
		case Input:
			// The value is not known at compile time; the cell is its own
			// canonical operand.
			bind(i.Dst, Cell{ID: i.Dst.ID})
			result = append(result, i)
		case Print:
			result = append(result, Print{Src: resolve(i.Src)})
		default:
			result = append(result, instr)
		}
	}
	return result
}

// DeadCodeElimination drops instructions whose destination is never read
// by a later instruction that reaches observable output. The sequence is
// scanned in reverse, growing a set of used cells from Print sources.
//
// Policy: an Input whose result is unused is eliminated like any other
// definition. Consuming an input token is not treated as an observable
// effect; this mirrors the source language's semantics and is pinned by
// a dedicated test.
type DeadCodeElimination struct{}

func (dce *DeadCodeElimination) Name() string {
	return "dead-code-elimination"
}

func (dce *DeadCodeElimination) Apply(seq []Instr) []Instr {
	used := make(map[int]bool)
	kept := make([]Instr, 0, len(seq))

	markSources := func(instr Instr) {
		for _, src := range instr.Sources() {
			if cell, ok := src.(Cell); ok {
				used[cell.ID] = true
			}
		}
	}

	for i := len(seq) - 1; i >= 0; i-- {
		instr := seq[i]
		dst, hasDest := instr.Dest()
		if !hasDest {
			// Print is the only destination-free variant; it is always
			// observable and always kept.
			kept = append(kept, instr)
			markSources(instr)
			continue
		}
		if used[dst.ID] {
			kept = append(kept, instr)
			markSources(instr)
		}
	}

	// kept was built back to front.
	result := make([]Instr, 0, len(kept))
	for i := len(kept) - 1; i >= 0; i-- {
		result = append(result, kept[i])
	}
	return result
}
