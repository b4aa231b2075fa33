package vybiumstarksvm

import "testing"

func uint64Elements(f *Field, vals ...uint64) []*FieldElement {
	out := make([]*FieldElement, len(vals))
	for i, v := range vals {
		out[i] = f.NewElementFromUint64(v)
	}
	return out
}

func synthethicRoundConstants(width, halfFullRounds, partialRounds int) Poseidon2RoundConstants {
	f := goldilocks()
	counter := uint64(1)
	next := func() *FieldElement {
		v := f.NewElementFromUint64(counter)
		counter++
		return v
	}
	beginning := make([][]*FieldElement, halfFullRounds)
	ending := make([][]*FieldElement, halfFullRounds)
	for r := 0; r < halfFullRounds; r++ {
		beginning[r] = make([]*FieldElement, width)
		ending[r] = make([]*FieldElement, width)
		for i := 0; i < width; i++ {
			beginning[r][i] = next()
			ending[r][i] = next()
		}
	}
	partial := make([]*FieldElement, partialRounds)
	for i := range partial {
		partial[i] = next()
	}
	diagonal := make([]*FieldElement, width)
	for i := range diagonal {
		diagonal[i] = next()
	}
	return Poseidon2RoundConstants{
		BeginningFullRounds: beginning,
		PartialRounds:       partial,
		EndingFullRounds:    ending,
		InternalDiagonal:    diagonal,
	}
}

func TestPoseidon2PermutationPermuteAndCheck(t *testing.T) {
	rc := synthethicRoundConstants(8, 4, 22)
	perm, err := NewPoseidon2Permutation(Poseidon2Width8Degree7, rc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := perm.Width(), 8; got != want {
		t.Fatalf("Width() = %d, want %d", got, want)
	}

	input := uint64Elements(goldilocks(), 1, 2, 3, 4, 5, 6, 7, 8)
	row, err := perm.Permute(input)
	if err != nil {
		t.Fatalf("Permute error: %v", err)
	}
	if got, want := len(row), perm.NumColumns(); got != want {
		t.Fatalf("row has %d cells, want %d", got, want)
	}

	if err := perm.CheckRow(row); err != nil {
		t.Fatalf("CheckRow rejected a generated row: %v", err)
	}
}

func TestPoseidon2PermutationCheckRowRejectsTamperedRow(t *testing.T) {
	rc := synthethicRoundConstants(8, 4, 22)
	perm, err := NewPoseidon2Permutation(Poseidon2Width8Degree7, rc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input := uint64Elements(goldilocks(), 1, 2, 3, 4, 5, 6, 7, 8)
	row, err := perm.Permute(input)
	if err != nil {
		t.Fatalf("Permute error: %v", err)
	}

	row[len(row)-1] = goldilocks().NewElementFromUint64(row[len(row)-1].Big().Uint64() + 1)
	if err := perm.CheckRow(row); err == nil {
		t.Fatal("expected CheckRow to reject a tampered row")
	}
}

func TestPoseidon2PermutationGenerateTrace(t *testing.T) {
	rc := synthethicRoundConstants(8, 4, 22)
	perm, err := NewPoseidon2Permutation(Poseidon2Width8Degree3, rc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const n = 4
	inputs := make([][]*FieldElement, n)
	for i := range inputs {
		vals := make([]uint64, 8)
		for j := range vals {
			vals[j] = uint64(i*8 + j + 1)
		}
		inputs[i] = uint64Elements(goldilocks(), vals...)
	}

	trace, err := perm.GenerateTrace(inputs)
	if err != nil {
		t.Fatalf("GenerateTrace error: %v", err)
	}
	ncols := perm.NumColumns()
	if got, want := len(trace), n*ncols; got != want {
		t.Fatalf("trace has %d cells, want %d", got, want)
	}
	for i := 0; i < n; i++ {
		if err := perm.CheckRow(trace[i*ncols : (i+1)*ncols]); err != nil {
			t.Fatalf("row %d: CheckRow error: %v", i, err)
		}
	}
}

func TestPoseidon2PermutationRejectsUnknownShape(t *testing.T) {
	if _, err := NewPoseidon2Permutation(Poseidon2Shape(99), Poseidon2RoundConstants{}); err == nil {
		t.Fatal("expected error for unknown shape")
	}
}
