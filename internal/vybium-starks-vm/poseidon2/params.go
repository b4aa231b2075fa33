package poseidon2

// canonicalRegisters maps an S-box degree to its optimal register count.
// Off-table pairs are rejected at construction: the decomposition in
// sbox.go is only proven to reproduce x^D for these four degrees.
var canonicalRegisters = map[int]int{
	3:  1,
	5:  2,
	7:  3,
	11: 3,
}

// Poseidon2Params fixes the five shape parameters of one Poseidon2 AIR
// instance: state width, S-box degree, register count, half-full-round
// count and partial-round count. An instance is immutable after
// construction and shared read-only between the generator and the
// constraint evaluator.
type Poseidon2Params struct {
	Width          int
	Degree         int
	Registers      int
	HalfFullRounds int
	PartialRounds  int
}

// NewPoseidon2Params builds and validates a parameter set. Construction is
// the only place shape errors are allowed to surface; once built, a
// Poseidon2Params is assumed valid everywhere else.
func NewPoseidon2Params(width, degree, registers, halfFullRounds, partialRounds int) (*Poseidon2Params, error) {
	p := &Poseidon2Params{
		Width:          width,
		Degree:         degree,
		Registers:      registers,
		HalfFullRounds: halfFullRounds,
		PartialRounds:  partialRounds,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks every invariant the row schema and round algorithms
// depend on. D must be one of {3,5,7,11}; R must match the canonical
// table for D; W must be a width the external linear layer supports
// (2, 3, 8, 12, 16, 20 or 24).
func (p *Poseidon2Params) Validate() error {
	want, ok := canonicalRegisters[p.Degree]
	if !ok {
		return configError(ErrInvalidDegree, "unsupported S-box degree %d, want one of 3,5,7,11", p.Degree)
	}
	if p.Registers != want {
		return configError(ErrInvalidRegisters, "degree %d requires %d registers, got %d", p.Degree, want, p.Registers)
	}
	if p.Registers <= 0 {
		return configError(ErrInvalidRegisters, "register count must be positive")
	}
	if p.Width == 4 {
		return configError(ErrInvalidWidth, "width 4 is not supported by the external linear layer")
	}
	if p.Width < 2 {
		return configError(ErrInvalidWidth, "width must be at least 2, got %d", p.Width)
	}
	switch p.Width {
	case 2, 3, 8, 12, 16, 20, 24:
	default:
		return configError(ErrInvalidWidth, "unsupported width %d, want one of 2,3,8,12,16,20,24", p.Width)
	}
	if p.HalfFullRounds <= 0 {
		return configError(ErrInvalidConfigShape, "half-full-round count must be positive")
	}
	if p.PartialRounds <= 0 {
		return configError(ErrInvalidConfigShape, "partial-round count must be positive")
	}
	return nil
}

// NumColumns returns the total per-row cell count: one export cell, W
// input cells, H beginning plus H ending full-round blocks (each W lanes
// of R registers), and P partial-round blocks of R registers.
func (p *Poseidon2Params) NumColumns() int {
	return 1 + p.Width + 2*p.HalfFullRounds*p.Width*p.Registers + p.PartialRounds*p.Registers
}

// WithWidth returns a copy of p with Width replaced, for fluent test
// construction.
func (p *Poseidon2Params) WithWidth(width int) *Poseidon2Params {
	c := *p
	c.Width = width
	return &c
}

// WithRounds returns a copy of p with the round counts replaced.
func (p *Poseidon2Params) WithRounds(halfFullRounds, partialRounds int) *Poseidon2Params {
	c := *p
	c.HalfFullRounds = halfFullRounds
	c.PartialRounds = partialRounds
	return &c
}

// Clone returns a copy of p.
func (p *Poseidon2Params) Clone() *Poseidon2Params {
	c := *p
	return &c
}

// GoldilocksWidth8Degree7 is the canonical Horizen-Labs-style Poseidon2
// shape over the Goldilocks field: width 8, degree 7, 3 registers, 4
// full rounds per half, 22 partial rounds.
func GoldilocksWidth8Degree7() *Poseidon2Params {
	p, err := NewPoseidon2Params(8, 7, 3, 4, 22)
	if err != nil {
		panic(err)
	}
	return p
}

// GoldilocksWidth12Degree5 is a secondary canonical shape used for
// cross-width testing.
func GoldilocksWidth12Degree5() *Poseidon2Params {
	p, err := NewPoseidon2Params(12, 5, 2, 4, 22)
	if err != nil {
		panic(err)
	}
	return p
}

// GoldilocksWidth16Degree11 exercises the D=11 triple-product S-box
// branch at a wider state.
func GoldilocksWidth16Degree11() *Poseidon2Params {
	p, err := NewPoseidon2Params(16, 11, 3, 4, 22)
	if err != nil {
		panic(err)
	}
	return p
}

// GoldilocksWidth8Degree3 is the minimal-register shape (R=1): only a
// single register per lane, holding x^3 directly.
func GoldilocksWidth8Degree3() *Poseidon2Params {
	p, err := NewPoseidon2Params(8, 3, 1, 4, 22)
	if err != nil {
		panic(err)
	}
	return p
}
