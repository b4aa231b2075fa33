package poseidon2

import (
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

func valuesOf(t *testing.T, state []Elem) []uint64 {
	t.Helper()
	out := make([]uint64, len(state))
	for i, e := range state {
		c, ok := e.(concreteElem)
		if !ok {
			t.Fatalf("element %d is not concrete", i)
		}
		out[i] = c.v.Value()
	}
	return out
}

func assertValues(t *testing.T, state []Elem, want []uint64) {
	t.Helper()
	got := valuesOf(t, state)
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("state[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestApplyExternalRejectsWidth4(t *testing.T) {
	state := wrapFieldSlice([]field.Element{field.New(1), field.New(2), field.New(3), field.New(4)})
	if err := ApplyExternal(4, state); err == nil {
		t.Fatal("expected width-4 external layer to be rejected")
	}
}

func TestApplyExternalWidth2(t *testing.T) {
	state := wrapFieldSlice([]field.Element{field.New(1), field.New(2)})
	if err := ApplyExternal(2, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// sum = 3; out0 = 1+3 = 4; out1 = 2+3 = 5.
	assertValues(t, state, []uint64{4, 5})
}

func TestApplyExternalWidth3(t *testing.T) {
	state := wrapFieldSlice([]field.Element{field.New(1), field.New(1), field.New(1)})
	if err := ApplyExternal(3, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// sum = 3; every cell becomes 1+3 = 4.
	assertValues(t, state, []uint64{4, 4, 4})
}

func TestApplyExternalWidth8Ones(t *testing.T) {
	ones := make([]field.Element, 8)
	for i := range ones {
		ones[i] = field.New(1)
	}
	state := wrapFieldSlice(ones)
	if err := ApplyExternal(8, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, state, []uint64{48, 36, 48, 36, 48, 36, 48, 36})
}

func TestApplyInternalWidth2(t *testing.T) {
	diag := wrapFieldSlice([]field.Element{field.New(5), field.New(7)})
	state := wrapFieldSlice([]field.Element{field.New(1), field.New(2)})
	if err := ApplyInternal(2, state, diag); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// width-2 formula ignores the diagonal: sum=3; out0=1+3=4; out1=2*2+3=7.
	assertValues(t, state, []uint64{4, 7})
}

func TestApplyInternalGenericWidth(t *testing.T) {
	diag := wrapFieldSlice([]field.Element{field.New(2), field.New(3), field.New(4), field.New(5)})
	state := wrapFieldSlice([]field.Element{field.New(1), field.New(1), field.New(1), field.New(1)})
	if err := ApplyInternal(4, state, diag); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// sum = 4; out[i] = in[i]*diag[i] + sum.
	assertValues(t, state, []uint64{1*2 + 4, 1*3 + 4, 1*4 + 4, 1*5 + 4})
}

func TestApplyExternalUnsupportedWidth(t *testing.T) {
	state := wrapFieldSlice([]field.Element{field.New(1)})
	if err := ApplyExternal(1, state); err == nil {
		t.Fatal("expected error for unsupported width")
	}
}
