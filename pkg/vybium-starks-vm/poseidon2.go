package vybiumstarksvm

import (
	"math/big"
	"sync"

	"github.com/vybium/poseidon2-starks-vm/internal/vybium-starks-vm/core"
	"github.com/vybium/poseidon2-starks-vm/internal/vybium-starks-vm/poseidon2"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// goldilocksField is the core.Field wrapper used to hand Poseidon2
// results back to callers as *FieldElement. It is built once, lazily,
// since core.Field's modulus is an arbitrary-precision big.Int rather
// than the fixed uint64 modulus the internal poseidon2 package computes
// against directly.
var (
	goldilocksOnce  sync.Once
	goldilocksField *core.Field
)

// FieldElementFromUint64 builds a Goldilocks *FieldElement from a raw
// uint64, reducing modulo the Goldilocks prime. It is the normal way to
// build inputs and round constants for a Poseidon2Permutation.
func FieldElementFromUint64(v uint64) *FieldElement {
	return goldilocks().NewElementFromUint64(v)
}

// wrapPoseidon2Error lifts the internal poseidon2 package's own
// *ConfigError into the public VMError taxonomy as ErrInvalidConfig,
// keeping the internal error as the Cause.
func wrapPoseidon2Error(err error) error {
	if err == nil {
		return nil
	}
	return &VMError{
		Code:    ErrInvalidConfig,
		Message: "poseidon2: " + err.Error(),
		Cause:   err,
	}
}

func goldilocks() *core.Field {
	goldilocksOnce.Do(func() {
		modulus := new(big.Int).SetUint64(field.P)
		f, err := core.NewField(modulus)
		if err != nil {
			panic("vybiumstarksvm: failed to construct goldilocks field: " + err.Error())
		}
		goldilocksField = f
	})
	return goldilocksField
}

// Poseidon2Shape names a canonical, ready-to-use Poseidon2 permutation
// width/degree configuration over the Goldilocks field.
type Poseidon2Shape int

const (
	// Poseidon2Width8Degree7 is the width-8, degree-7 Goldilocks shape
	// used by the Plonky3-style hash-table row layout.
	Poseidon2Width8Degree7 Poseidon2Shape = iota
	// Poseidon2Width8Degree3 is the width-8, degree-3 Goldilocks shape.
	Poseidon2Width8Degree3
	// Poseidon2Width12Degree5 is the width-12, degree-5 Goldilocks shape.
	Poseidon2Width12Degree5
	// Poseidon2Width16Degree11 is the width-16, degree-11 Goldilocks shape.
	Poseidon2Width16Degree11
)

func (s Poseidon2Shape) params() *poseidon2.Poseidon2Params {
	switch s {
	case Poseidon2Width8Degree7:
		return poseidon2.GoldilocksWidth8Degree7()
	case Poseidon2Width8Degree3:
		return poseidon2.GoldilocksWidth8Degree3()
	case Poseidon2Width12Degree5:
		return poseidon2.GoldilocksWidth12Degree5()
	case Poseidon2Width16Degree11:
		return poseidon2.GoldilocksWidth16Degree11()
	default:
		return nil
	}
}

// Poseidon2RoundConstants holds the round constants and internal-matrix
// diagonal a Poseidon2Permutation needs. Callers supply these; this
// package never fabricates or guesses a "standard" constant set.
type Poseidon2RoundConstants struct {
	BeginningFullRounds [][]*FieldElement
	PartialRounds       []*FieldElement
	EndingFullRounds    [][]*FieldElement
	InternalDiagonal    []*FieldElement
}

// Poseidon2Permutation is the public handle for generating and checking
// Poseidon2 permutation traces: one row per invocation, export/inputs
// plus every intermediate S-box register, following the same row schema
// the witness generator and the constraint evaluator both read.
type Poseidon2Permutation struct {
	params *poseidon2.Poseidon2Params
	gen    *poseidon2.Generator
	air    *poseidon2.Poseidon2Air
}

// NewPoseidon2Permutation builds a permutation instance for the given
// shape and round constants.
func NewPoseidon2Permutation(shape Poseidon2Shape, rc Poseidon2RoundConstants) (*Poseidon2Permutation, error) {
	p := shape.params()
	if p == nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "unknown poseidon2 shape"}
	}

	spec, err := poseidon2.NewPoseidon2Spec(
		p,
		toFieldMatrix(rc.BeginningFullRounds),
		toFieldSlice(rc.PartialRounds),
		toFieldMatrix(rc.EndingFullRounds),
		toFieldSlice(rc.InternalDiagonal),
	)
	if err != nil {
		return nil, wrapPoseidon2Error(err)
	}

	air, err := poseidon2.NewAir(spec)
	if err != nil {
		return nil, wrapPoseidon2Error(err)
	}

	return &Poseidon2Permutation{
		params: p,
		gen:    poseidon2.NewGenerator(spec),
		air:    air,
	}, nil
}

// Width returns the number of state lanes this permutation operates on.
func (p *Poseidon2Permutation) Width() int { return p.params.Width }

// NumColumns returns the number of trace cells one row occupies.
func (p *Poseidon2Permutation) NumColumns() int { return p.params.NumColumns() }

// Permute runs the permutation over input (length Width) and returns the
// resulting row's flat cell buffer, suitable for appending to a larger
// execution trace.
func (p *Poseidon2Permutation) Permute(input []*FieldElement) ([]*FieldElement, error) {
	row := poseidon2.NewRow(p.params)
	if err := p.gen.GenerateRow(row, toFieldSlice(input)); err != nil {
		return nil, wrapPoseidon2Error(err)
	}
	return fromFieldSlice(row.Buffer()), nil
}

// GenerateTrace runs the permutation over every input row and returns the
// flattened trace, row-major, with rows split into contiguous chunks
// across at most 32 worker goroutines. len(inputs) must be a power of two.
func (p *Poseidon2Permutation) GenerateTrace(inputs [][]*FieldElement) ([]*FieldElement, error) {
	converted := make([][]field.Element, len(inputs))
	for i, in := range inputs {
		converted[i] = toFieldSlice(in)
	}
	trace, err := p.gen.GenerateTrace(converted)
	if err != nil {
		return nil, wrapPoseidon2Error(err)
	}
	return fromFieldSlice(trace), nil
}

// CheckRow re-derives every algebraic constraint the generator's output
// must satisfy and reports the first violation, if any. It is the public
// entry point for verifying a trace row produced elsewhere.
func (p *Poseidon2Permutation) CheckRow(rowCells []*FieldElement) error {
	builder := poseidon2.NewSymbolicBuilder(p.params.NumColumns())
	if err := p.air.Eval(builder); err != nil {
		return wrapPoseidon2Error(err)
	}
	witness := toFieldSlice(rowCells)
	for _, c := range builder.Constraints() {
		left := poseidon2.Evaluate(c.Left, witness)
		right := poseidon2.Evaluate(c.Right, witness)
		if !left.Equal(right) {
			return &VMError{Code: ErrInvalidProof, Message: "poseidon2 row fails a permutation constraint"}
		}
	}
	return nil
}

func toFieldSlice(in []*FieldElement) []field.Element {
	out := make([]field.Element, len(in))
	for i, e := range in {
		if e != nil {
			out[i] = field.New(e.Big().Uint64())
		}
	}
	return out
}

func toFieldMatrix(in [][]*FieldElement) [][]field.Element {
	out := make([][]field.Element, len(in))
	for i, row := range in {
		out[i] = toFieldSlice(row)
	}
	return out
}

func fromFieldSlice(in []field.Element) []*FieldElement {
	f := goldilocks()
	out := make([]*FieldElement, len(in))
	for i, e := range in {
		out[i] = f.NewElementFromUint64(e.Value())
	}
	return out
}
