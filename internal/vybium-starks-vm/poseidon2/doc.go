// Package poseidon2 implements the algebraic core of a Poseidon2 permutation
// AIR: the row schema, the linear-layer and S-box capabilities shared by
// witness generation and constraint evaluation, the witness generator
// itself, and the symbolic constraint evaluator.
//
// # Features
//
//   - Parametric row schema for any (width, degree, registers, half-full-
//     rounds, partial-rounds) shape, with offset-based zero-copy accessors.
//   - Row-parallel witness generation over the Goldilocks field via
//     github.com/vybium/vybium-crypto's field.Element.
//   - A shared carrier abstraction (Elem) so the linear layer and S-box
//     decomposition run identical arithmetic whether backed by concrete
//     field elements or symbolic constraint-builder expressions.
//
// # Quick Start
//
//	params := poseidon2.GoldilocksWidth8Degree7()
//	spec, err := poseidon2.NewPoseidon2Spec(params, beginning, partial, ending, diagonal)
//	if err != nil {
//		// constants shape mismatch is a configuration error
//	}
//	gen := poseidon2.NewGenerator(spec)
//	trace, err := gen.GenerateTrace(inputs)
package poseidon2
