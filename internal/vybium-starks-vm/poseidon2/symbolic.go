package poseidon2

import "github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

// Constraint is one algebraic equality the evaluator emitted: Left must
// equal Right for a satisfying row.
type Constraint struct {
	Left, Right Elem
}

// SymbolicBuilder is a minimal AirBuilder that builds the expression
// tree for every column of one row and records every equality the
// evaluator asserts, without committing to any particular downstream
// polynomial representation. A real STARK prover's builder plays the
// same role but additionally lowers the recorded constraints into its
// own low-degree-extension machinery.
type SymbolicBuilder struct {
	row         []Elem
	constraints []Constraint
	zeros       []Elem
}

// NewSymbolicBuilder allocates a builder over a row of numColumns
// symbolic variables, one per column index.
func NewSymbolicBuilder(numColumns int) *SymbolicBuilder {
	row := make([]Elem, numColumns)
	for i := range row {
		row[i] = Var(i)
	}
	return &SymbolicBuilder{row: row}
}

type symbolicMatrix struct{ row []Elem }

func (m symbolicMatrix) RowSlice(offset int) []Elem {
	if offset != 0 {
		panic("poseidon2: no cross-row constraints are defined")
	}
	return m.row
}

func (b *SymbolicBuilder) Main() Matrix               { return symbolicMatrix{b.row} }
func (b *SymbolicBuilder) Const(v field.Element) Elem { return Const(v) }
func (b *SymbolicBuilder) AssertEq(a, c Elem)         { b.constraints = append(b.constraints, Constraint{a, c}) }
func (b *SymbolicBuilder) AssertZero(e Elem)          { b.zeros = append(b.zeros, e) }

// Constraints returns every equality recorded by AssertEq.
func (b *SymbolicBuilder) Constraints() []Constraint { return b.constraints }

// Evaluate collapses a symbolic expression to a concrete value by
// substituting row[i] for each Var(i) leaf. It panics if e did not
// originate from this package's symbolic carrier.
func Evaluate(e Elem, row []field.Element) field.Element {
	ex, ok := e.(*expr)
	if !ok {
		panic("poseidon2: Evaluate requires a symbolic expression")
	}
	switch ex.kind {
	case exprVar:
		return row[ex.columnIndex]
	case exprConst:
		return ex.constant
	case exprAdd:
		return Evaluate(ex.left, row).Add(Evaluate(ex.right, row))
	case exprMul:
		return Evaluate(ex.left, row).Mul(Evaluate(ex.right, row))
	default:
		panic("poseidon2: unreachable expression kind")
	}
}
