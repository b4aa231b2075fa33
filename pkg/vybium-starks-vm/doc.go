// Package vybiumstarksvm provides the public API for generating and
// checking Poseidon2 permutation traces over the Goldilocks field.
//
// # Features
//
//   - Canonical Goldilocks Poseidon2 shapes (width 8/12/16, several S-box
//     degrees) via Poseidon2Shape.
//   - Row-parallel trace generation for a batch of permutation inputs.
//   - Constraint checking for a trace row produced elsewhere, re-deriving
//     every algebraic equality the generator's output must satisfy.
//
// # Quick Start
//
// Building a permutation and generating a trace:
//
//	perm, err := vybiumstarksvm.NewPoseidon2Permutation(
//		vybiumstarksvm.Poseidon2Width8Degree7,
//		roundConstants,
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	trace, err := perm.GenerateTrace(inputs)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Checking a row produced elsewhere against the permutation's own
// constraints:
//
//	if err := perm.CheckRow(trace[:perm.NumColumns()]); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
//   - pkg/vybium-starks-vm/: public API (this package)
//   - internal/vybium-starks-vm/poseidon2/: row schema, S-box decomposition,
//     witness generator, and constraint evaluator
//   - internal/vybium-starks-vm/core/: the arbitrary-modulus Field/
//     FieldElement type this package's public FieldElement aliases
//
// Implementation details in internal/ can be refactored without breaking
// the public API.
package vybiumstarksvm
