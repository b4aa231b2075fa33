package vybiumstarksvm

import (
	"github.com/vybium/poseidon2-starks-vm/internal/vybium-starks-vm/core"
)

// FieldElement represents an element in a finite field. This is the public
// type used to exchange Poseidon2 inputs, outputs, and round constants
// across the package boundary.
type FieldElement = core.FieldElement

// Field represents a finite field.
type Field = core.Field
