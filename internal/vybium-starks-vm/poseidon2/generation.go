package poseidon2

import (
	"fmt"
	"sync"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// Poseidon2Spec bundles the four round-constant arrays required by one
// Poseidon2Params shape: the beginning and ending full-round constants,
// the partial-round constants, and the internal matrix diagonal. It is
// immutable after construction and shared read-only by the generator and
// the evaluator.
type Poseidon2Spec struct {
	Params                      *Poseidon2Params
	BeginningFullRoundConstants [][]field.Element // [HalfFullRounds][Width]
	PartialRoundConstants       []field.Element   // [PartialRounds]
	EndingFullRoundConstants    [][]field.Element // [HalfFullRounds][Width]
	InternalMatrixDiagonal      []field.Element   // [Width]
}

// NewPoseidon2Spec validates that every constant array has exactly the
// shape the params call for before bundling them. Shape mismatches are
// configuration errors caught here, once, rather than surfacing as
// out-of-bounds panics deep in generation or evaluation.
func NewPoseidon2Spec(params *Poseidon2Params, beginning [][]field.Element, partial []field.Element, ending [][]field.Element, diagonal []field.Element) (*Poseidon2Spec, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(beginning) != params.HalfFullRounds {
		return nil, configError(ErrShapeMismatch, "beginning full round constants: want %d rows, got %d", params.HalfFullRounds, len(beginning))
	}
	for i, row := range beginning {
		if len(row) != params.Width {
			return nil, configError(ErrShapeMismatch, "beginning full round constants[%d]: want %d cells, got %d", i, params.Width, len(row))
		}
	}
	if len(partial) != params.PartialRounds {
		return nil, configError(ErrShapeMismatch, "partial round constants: want %d cells, got %d", params.PartialRounds, len(partial))
	}
	if len(ending) != params.HalfFullRounds {
		return nil, configError(ErrShapeMismatch, "ending full round constants: want %d rows, got %d", params.HalfFullRounds, len(ending))
	}
	for i, row := range ending {
		if len(row) != params.Width {
			return nil, configError(ErrShapeMismatch, "ending full round constants[%d]: want %d cells, got %d", i, params.Width, len(row))
		}
	}
	if len(diagonal) != params.Width {
		return nil, configError(ErrShapeMismatch, "internal matrix diagonal: want %d cells, got %d", params.Width, len(diagonal))
	}
	return &Poseidon2Spec{
		Params:                      params,
		BeginningFullRoundConstants: beginning,
		PartialRoundConstants:       partial,
		EndingFullRoundConstants:    ending,
		InternalMatrixDiagonal:      diagonal,
	}, nil
}

// Generator produces witness rows from a Poseidon2Spec. A Generator holds
// no mutable state of its own; it is safe to call GenerateRow from
// multiple goroutines concurrently, each against a disjoint Row.
type Generator struct {
	spec *Poseidon2Spec
}

// NewGenerator wraps a validated spec for witness generation.
func NewGenerator(spec *Poseidon2Spec) *Generator {
	return &Generator{spec: spec}
}

// GenerateRow runs the permutation concretely over input, writing the
// pre-external-layer state into row.Inputs() and every S-box register
// value into its auxiliary cell, round by round.
func (g *Generator) GenerateRow(row Row, input []field.Element) error {
	p := g.spec.Params
	if len(input) != p.Width {
		return configError(ErrShapeMismatch, "input has %d cells, want %d", len(input), p.Width)
	}

	copy(row.Inputs(), input)

	state := wrapFieldSlice(input)
	if err := ApplyExternal(p.Width, state); err != nil {
		return err
	}

	for r := 0; r < p.HalfFullRounds; r++ {
		if err := g.generateFullRound(state, row, r, g.spec.BeginningFullRoundConstants[r], row.BeginningFullRoundSBox); err != nil {
			return err
		}
	}
	for r := 0; r < p.PartialRounds; r++ {
		if err := g.generatePartialRound(state, row, r); err != nil {
			return err
		}
	}
	for r := 0; r < p.HalfFullRounds; r++ {
		if err := g.generateFullRound(state, row, r, g.spec.EndingFullRoundConstants[r], row.EndingFullRoundSBox); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateFullRound(state []Elem, row Row, round int, constants []field.Element, sboxOf func(round, lane int) []field.Element) error {
	p := g.spec.Params
	for i := 0; i < p.Width; i++ {
		x := state[i].(concreteElem).v.Add(constants[i])
		regs, err := GenerateSBox(p.Degree, p.Registers, x)
		if err != nil {
			return err
		}
		copy(sboxOf(round, i), regs)
		state[i] = wrapField(regs[len(regs)-1])
	}
	return ApplyExternal(p.Width, state)
}

func (g *Generator) generatePartialRound(state []Elem, row Row, round int) error {
	p := g.spec.Params
	x := state[0].(concreteElem).v.Add(g.spec.PartialRoundConstants[round])
	regs, err := GenerateSBox(p.Degree, p.Registers, x)
	if err != nil {
		return err
	}
	copy(row.PartialRoundSBox(round), regs)
	state[0] = wrapField(regs[len(regs)-1])
	return ApplyInternal(p.Width, state, wrapFieldSlice(g.spec.InternalMatrixDiagonal))
}

// GenerateTrace fills one row per input, in parallel across rows. The
// number of inputs must be a power of two; callers are expected to pad.
// Each goroutine owns a disjoint slice of the flat output buffer, so no
// synchronization beyond the final join is needed.
func (g *Generator) GenerateTrace(inputs [][]field.Element) ([]field.Element, error) {
	n := len(inputs)
	if n == 0 || n&(n-1) != 0 {
		return nil, configError(ErrNonPowerOfTwo, "input batch length %d is not a power of two", n)
	}

	ncols := g.spec.Params.NumColumns()
	trace := make([]field.Element, n*ncols)

	workers := n
	if workers > 32 {
		workers = 32
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				row, err := RowView(g.spec.Params, trace[i*ncols:(i+1)*ncols])
				if err != nil {
					errs <- err
					return
				}
				if err := g.GenerateRow(row, inputs[i]); err != nil {
					errs <- fmt.Errorf("row %d: %w", i, err)
					return
				}
			}
		}(start, end)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return trace, nil
}
