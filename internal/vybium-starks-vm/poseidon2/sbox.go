package poseidon2

import "github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

// GenerateSBox computes the register decomposition of x^degree and
// returns the R register values to record in the trace. The last
// register always equals x^degree exactly, by construction of the
// recurrence below, so it doubles as the S-box output — the source
// computes this value a second time via a separate exponentiation chain
// (sbox/sbox_p); that duplication is not carried over here since the
// two computations are provably the same value.
func GenerateSBox(degree, registers int, x field.Element) ([]field.Element, error) {
	if registers <= 0 {
		return nil, configError(ErrInvalidRegisters, "register count must be positive")
	}
	if degree > 11 {
		return nil, configError(ErrInvalidDegree, "degree must be at most 11, got %d", degree)
	}

	regs := make([]field.Element, registers)
	x2 := x.Mul(x)
	x3 := x2.Mul(x)
	regs[0] = x3

	if registers == 1 {
		return regs, nil
	}

	for j := 1; j < registers-1; j++ {
		value := regs[0].Mul(regs[j-1])
		if degree == 11 {
			value = value.Mul(regs[0])
		}
		regs[j] = value
	}

	finalBase := [3]field.Element{x3, x, x2}[degree%3]
	regs[registers-1] = finalBase.Mul(regs[registers-2])
	return regs, nil
}

// EvalSBox mirrors GenerateSBox in the symbolic ring: it asserts each
// provided register against the product that defines it, using the
// same recurrence, and returns the last register as the S-box output. A
// row whose registers all satisfy these assertions encodes a faithful
// x^degree computation.
func EvalSBox(degree, registers int, x Elem, regs []Elem, assertEq func(a, b Elem)) (Elem, error) {
	if registers <= 0 {
		return nil, configError(ErrInvalidRegisters, "register count must be positive")
	}
	if degree > 11 {
		return nil, configError(ErrInvalidDegree, "degree must be at most 11, got %d", degree)
	}
	if len(regs) != registers {
		return nil, configError(ErrShapeMismatch, "expected %d S-box registers, got %d", registers, len(regs))
	}

	x2 := square(x)
	x3 := x2.Mul(x)
	assertEq(regs[0], x3)

	if registers == 1 {
		return regs[0], nil
	}

	for j := 1; j < registers-1; j++ {
		product := regs[0].Mul(regs[j-1])
		if degree == 11 {
			product = product.Mul(regs[0])
		}
		assertEq(regs[j], product)
	}

	finalBase := [3]Elem{x3, x, x2}[degree%3]
	finalProduct := finalBase.Mul(regs[registers-2])
	assertEq(regs[registers-1], finalProduct)
	return regs[registers-1], nil
}
