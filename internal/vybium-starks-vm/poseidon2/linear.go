package poseidon2

// ApplyExternal applies the external MDS-like linear layer to state in
// place. Widths 2 and 3 use small circulant recipes; widths 8, 12, 16,
// 20 and 24 tile the M4 recipe across groups of four plus a cross-lane
// fold. Width 4 has no supported recipe in this core and is a hard
// configuration error rather than the silent no-op the source leaves
// behind.
func ApplyExternal(width int, state []Elem) error {
	switch width {
	case 2:
		sum := state[0].Add(state[1])
		state[0] = state[0].Add(sum)
		state[1] = state[1].Add(sum)
	case 3:
		sum := state[0].Add(state[1]).Add(state[2])
		state[0] = state[0].Add(sum)
		state[1] = state[1].Add(sum)
		state[2] = state[2].Add(sum)
	case 4:
		return configError(ErrInvalidWidth, "external linear layer does not support width 4")
	case 8, 12, 16, 20, 24:
		matmulM4(width, state)
		t4 := width / 4
		stored := make([]Elem, 4)
		for lane := 0; lane < 4; lane++ {
			stored[lane] = state[lane]
			for j := 1; j < t4; j++ {
				stored[lane] = stored[lane].Add(state[4*j+lane])
			}
		}
		for i := range state {
			state[i] = state[i].Add(stored[i%4])
		}
	default:
		return configError(ErrInvalidWidth, "unsupported external linear layer width %d", width)
	}
	return nil
}

// matmulM4 applies the 4x4 cheap MDS recipe to each group of four lanes
// of state, in place.
func matmulM4(width int, state []Elem) {
	groups := width / 4
	for g := 0; g < groups; g++ {
		base := g * 4
		a, b, c, d := state[base], state[base+1], state[base+2], state[base+3]

		t0 := a.Add(b)
		t1 := c.Add(d)
		t2 := double(b).Add(t1)
		t3 := double(d).Add(t0)
		t4 := double(double(t1)).Add(t3)
		t5 := double(double(t0)).Add(t2)

		state[base] = t3.Add(t5)
		state[base+1] = t5
		state[base+2] = t2.Add(t4)
		state[base+3] = t4
	}
}

// ApplyInternal applies the internal matrix I + diag(d)*1 to state in
// place, using the width-specific small-matrix formulas for 2 and 3 and
// the generic diagonal-plus-broadcast-sum formula otherwise.
func ApplyInternal(width int, state []Elem, diagonal []Elem) error {
	switch width {
	case 2:
		sum := state[0].Add(state[1])
		state[0] = state[0].Add(sum)
		state[1] = double(state[1]).Add(sum)
	case 3:
		sum := state[0].Add(state[1]).Add(state[2])
		state[0] = state[0].Add(sum)
		state[1] = state[1].Add(sum)
		state[2] = double(state[2]).Add(sum)
	case 4, 8, 12, 16, 20, 24:
		sum := state[0]
		for i := 1; i < width; i++ {
			sum = sum.Add(state[i])
		}
		for i := range state {
			state[i] = state[i].Mul(diagonal[i]).Add(sum)
		}
	default:
		return configError(ErrInvalidWidth, "unsupported internal linear layer width %d", width)
	}
	return nil
}
