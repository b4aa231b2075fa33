package poseidon2

import "github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

// testMatrix is the minimal Matrix implementation a test needs: a
// single row, since this AIR never reads beyond offset 0.
type testMatrix struct {
	row []Elem
}

func (m testMatrix) RowSlice(offset int) []Elem {
	if offset != 0 {
		panic("poseidon2: no cross-row constraints are defined")
	}
	return m.row
}

// testBuilder is an AirBuilder that records failed equality assertions
// instead of building a real constraint system, for unit verification
// that generation and evaluation agree.
type testBuilder struct {
	matrix   testMatrix
	failures []string
}

func (b *testBuilder) Main() Matrix { return b.matrix }

// Const wraps a literal as the same concrete carrier the row uses, since
// this builder checks a concrete row rather than building a symbolic
// constraint system.
func (b *testBuilder) Const(v field.Element) Elem { return wrapField(v) }

func (b *testBuilder) AssertEq(a, c Elem) {
	av := a.(concreteElem).v
	cv := c.(concreteElem).v
	if !av.Equal(cv) {
		b.failures = append(b.failures, "assert_eq failed: "+av.String()+" != "+cv.String())
	}
}

func (b *testBuilder) AssertZero(e Elem) {
	ev := e.(concreteElem).v
	if !ev.IsZero() {
		b.failures = append(b.failures, "assert_zero failed: "+ev.String())
	}
}

func newTestBuilder(row []field.Element) *testBuilder {
	return &testBuilder{matrix: testMatrix{row: wrapFieldSlice(row)}}
}
