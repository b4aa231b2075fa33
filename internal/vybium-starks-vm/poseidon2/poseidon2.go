package poseidon2

// Poseidon2Air bundles one Poseidon2Spec into the constraint-evaluator
// contract: Width() plus Eval(builder). It is the top-level object a
// STARK collaborator registers alongside the generator's trace output.
type Poseidon2Air struct {
	*Poseidon2Spec
}

// NewAir builds a Poseidon2Air from a validated spec. Construction never
// accepts an uninitialized spec implicitly — unlike the source's
// new_from_rng, which silently ignores its RNG argument and proceeds
// with whatever constants were already sitting in the struct, this
// constructor requires the caller's explicit constants.
func NewAir(spec *Poseidon2Spec) (*Poseidon2Air, error) {
	if spec == nil {
		return nil, configError(ErrShapeMismatch, "spec must not be nil")
	}
	if err := spec.Params.Validate(); err != nil {
		return nil, err
	}
	return &Poseidon2Air{Poseidon2Spec: spec}, nil
}

// Width returns the total column count of one row under this AIR's
// shape.
func (a *Poseidon2Air) Width() int {
	return a.Params.NumColumns()
}
