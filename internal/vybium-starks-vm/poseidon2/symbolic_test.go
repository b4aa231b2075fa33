package poseidon2

import (
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// TestSymbolicConstraintsHoldAtWitness builds the full expression tree
// via SymbolicBuilder (exercising Var/Const/Add/Mul and asExpr's
// symbolic branch), then substitutes a concrete witness row computed by the
// generator and checks every recorded equality actually holds. This is
// the strongest check available without a real downstream low-degree
// extension step: the same constraint tree a STARK prover would lower
// into polynomials is satisfied at a genuine witness.
func TestSymbolicConstraintsHoldAtWitness(t *testing.T) {
	shapes := []*Poseidon2Params{
		GoldilocksWidth8Degree7(),
		GoldilocksWidth12Degree5(),
		GoldilocksWidth16Degree11(),
	}
	for _, p := range shapes {
		spec := deterministicSpec(t, p)
		gen := NewGenerator(spec)
		row := NewRow(p)

		input := make([]field.Element, p.Width)
		for i := range input {
			input[i] = field.New(uint64(i + 1))
		}
		if err := gen.GenerateRow(row, input); err != nil {
			t.Fatalf("width %d: GenerateRow error: %v", p.Width, err)
		}

		air, err := NewAir(spec)
		if err != nil {
			t.Fatalf("width %d: NewAir error: %v", p.Width, err)
		}
		builder := NewSymbolicBuilder(p.NumColumns())
		if err := air.Eval(builder); err != nil {
			t.Fatalf("width %d: Eval error: %v", p.Width, err)
		}
		if len(builder.Constraints()) == 0 {
			t.Fatalf("width %d: expected at least one recorded constraint", p.Width)
		}

		witness := row.Buffer()
		for i, c := range builder.Constraints() {
			left := Evaluate(c.Left, witness)
			right := Evaluate(c.Right, witness)
			if !left.Equal(right) {
				t.Fatalf("width %d: constraint %d failed at witness: %s != %s", p.Width, i, left.String(), right.String())
			}
		}
	}
}
