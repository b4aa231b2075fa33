package poseidon2

import "github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

// Elem is the shared algebraic carrier used by both the witness generator
// and the constraint evaluator: the linear layer and the S-box
// decomposition are written once against Elem, so the two call sites can
// never drift apart. The generator instantiates Elem with concrete field
// elements; the evaluator instantiates it with symbolic expressions over
// the current row.
type Elem interface {
	Add(Elem) Elem
	Mul(Elem) Elem
}

// double returns e+e. Elem has no dedicated doubling operation since the
// M4 recipe and the internal matrix are both expressible with it alone.
func double(e Elem) Elem {
	return e.Add(e)
}

// square returns e*e.
func square(e Elem) Elem {
	return e.Mul(e)
}

// concreteElem wraps a field.Element so it satisfies Elem. Both operands
// of Add/Mul must be concreteElem; mixing with a symbolic expr is a
// programming error and panics via the failed type assertion.
type concreteElem struct {
	v field.Element
}

func wrapField(v field.Element) Elem { return concreteElem{v} }

func (c concreteElem) Add(o Elem) Elem { return concreteElem{c.v.Add(o.(concreteElem).v)} }
func (c concreteElem) Mul(o Elem) Elem { return concreteElem{c.v.Mul(o.(concreteElem).v)} }

func wrapFieldSlice(values []field.Element) []Elem {
	out := make([]Elem, len(values))
	for i, v := range values {
		out[i] = wrapField(v)
	}
	return out
}
