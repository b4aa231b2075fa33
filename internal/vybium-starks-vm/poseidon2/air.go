package poseidon2

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// exprKind tags the shape of a symbolic expression node.
type exprKind int

const (
	exprVar exprKind = iota
	exprConst
	exprAdd
	exprMul
)

// expr is a symbolic expression over one row, built up by Elem's Add/Mul
// as the evaluator walks the permutation. It satisfies Elem so the linear
// layer (linear.go) and the symbolic S-box evaluation (sbox.go) run
// unmodified against it.
type expr struct {
	kind        exprKind
	constant    field.Element
	columnIndex int
	left, right *expr
}

// Var lifts a row column (identified by its flat index, for diagnostics
// only) into an expr leaf.
func Var(columnIndex int) Elem {
	return &expr{kind: exprVar, columnIndex: columnIndex}
}

// Const lifts a literal field element into an expr leaf.
func Const(v field.Element) Elem {
	return &expr{kind: exprConst, constant: v}
}

func asExpr(e Elem) *expr {
	if ex, ok := e.(*expr); ok {
		return ex
	}
	if c, ok := e.(concreteElem); ok {
		return &expr{kind: exprConst, constant: c.v}
	}
	panic(fmt.Sprintf("poseidon2: unexpected Elem implementation %T in symbolic evaluation", e))
}

func (e *expr) Add(o Elem) Elem { return &expr{kind: exprAdd, left: e, right: asExpr(o)} }
func (e *expr) Mul(o Elem) Elem { return &expr{kind: exprMul, left: e, right: asExpr(o)} }

// AirBuilder is the symbolic-evaluation collaborator contract: it hands
// the evaluator a view of the current row and collects the algebraic
// equalities the evaluator emits while walking the permutation.
type AirBuilder interface {
	// Main returns the trace matrix the evaluator reads from.
	Main() Matrix
	// Const lifts a literal round constant into the builder's own Elem
	// carrier. A symbolic builder wraps it as an expression leaf; a
	// builder checking a concrete row (as in self-consistency tests)
	// wraps it as the same concrete carrier the row uses.
	Const(v field.Element) Elem
	// AssertEq records the constraint a == b.
	AssertEq(a, b Elem)
	// AssertZero records the constraint e == 0.
	AssertZero(e Elem)
}

// Matrix exposes row-relative views of the trace to a builder.
type Matrix interface {
	// RowSlice returns the row `offset` steps from the current one as a
	// slice of Elem, one per column. offset 0 is the evaluator's own row;
	// this core only ever reads offset 0 since Poseidon2 has no
	// cross-row transition constraints.
	RowSlice(offset int) []Elem
}

// Air is the top-level constraint-evaluator contract: width() plus
// eval(builder).
type Air interface {
	Width() int
	Eval(builder AirBuilder) error
}

// Eval walks the permutation exactly as the generator does, but against
// symbolic state, asserting each S-box register against its defining
// product and letting AssertEq accumulate the resulting polynomial
// identities. A row satisfying every emitted equality is a faithful
// execution of the permutation.
func (a *Poseidon2Air) Eval(builder AirBuilder) error {
	row := builder.Main().RowSlice(0)
	if len(row) != a.Params.NumColumns() {
		return configError(ErrShapeMismatch, "row has %d columns, want %d", len(row), a.Params.NumColumns())
	}
	l := newLayout(a.Params)
	width := a.Params.Width

	state := make([]Elem, width)
	copy(state, row[l.inputsStart:l.inputsStart+width])

	if err := ApplyExternal(width, state); err != nil {
		return err
	}

	for r := 0; r < a.Params.HalfFullRounds; r++ {
		if err := evalFullRound(state, row, l, r, a.BeginningFullRoundConstants[r], builder); err != nil {
			return err
		}
	}
	for r := 0; r < a.Params.PartialRounds; r++ {
		if err := evalPartialRound(state, row, l, r, a.PartialRoundConstants[r], a.InternalMatrixDiagonal, builder); err != nil {
			return err
		}
	}
	for r := 0; r < a.Params.HalfFullRounds; r++ {
		if err := evalFullRound(state, row, l, r, a.EndingFullRoundConstants[r], builder, endingRound); err != nil {
			return err
		}
	}
	return nil
}

type roundSection int

const (
	beginningRound roundSection = iota
	endingRound
)

func evalFullRound(state []Elem, row []Elem, l layout, round int, constants []field.Element, builder AirBuilder, section ...roundSection) error {
	sec := beginningRound
	if len(section) > 0 {
		sec = section[0]
	}
	for i := range state {
		state[i] = state[i].Add(builder.Const(constants[i]))
		var regs []Elem
		if sec == beginningRound {
			regs = row[l.beginningSBoxStart(round, i):l.beginningSBoxStart(round, i)+l.registers]
		} else {
			regs = row[l.endingSBoxStart(round, i):l.endingSBoxStart(round, i)+l.registers]
		}
		newVal, err := EvalSBox(l.degree, l.registers, state[i], regs, builder.AssertEq)
		if err != nil {
			return err
		}
		state[i] = newVal
	}
	return ApplyExternal(len(state), state)
}

func evalPartialRound(state []Elem, row []Elem, l layout, round int, constant field.Element, diagonal []field.Element, builder AirBuilder) error {
	state[0] = state[0].Add(builder.Const(constant))
	regs := row[l.partialSBoxStart(round) : l.partialSBoxStart(round)+l.registers]
	newVal, err := EvalSBox(l.degree, l.registers, state[0], regs, builder.AssertEq)
	if err != nil {
		return err
	}
	state[0] = newVal
	diag := make([]Elem, len(diagonal))
	for i, d := range diagonal {
		diag[i] = builder.Const(d)
	}
	return ApplyInternal(len(state), state, diag)
}
