package poseidon2

import "github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

// layout computes the per-field column offsets for a given shape. Go has
// no reinterpret-cast, so the zero-copy row view required of the schema
// is built from explicit offset arithmetic instead of an unsafe cast; a
// layout value is the single source of truth both Row and the symbolic
// evaluator read from, so the two can never disagree about where a cell
// lives.
type layout struct {
	width, degree, registers, halfFullRounds, partialRounds int

	exportIdx      int
	inputsStart    int
	beginningStart int
	partialStart   int
	endingStart    int
}

func newLayout(p *Poseidon2Params) layout {
	l := layout{
		width:          p.Width,
		degree:         p.Degree,
		registers:      p.Registers,
		halfFullRounds: p.HalfFullRounds,
		partialRounds:  p.PartialRounds,
	}
	l.exportIdx = 0
	l.inputsStart = 1
	l.beginningStart = l.inputsStart + p.Width
	l.partialStart = l.beginningStart + p.HalfFullRounds*p.Width*p.Registers
	l.endingStart = l.partialStart + p.PartialRounds*p.Registers
	return l
}

func (l layout) total() int {
	return l.endingStart + l.halfFullRounds*l.width*l.registers
}

func (l layout) beginningSBoxStart(round, lane int) int {
	return l.beginningStart + round*l.width*l.registers + lane*l.registers
}

func (l layout) partialSBoxStart(round int) int {
	return l.partialStart + round*l.registers
}

func (l layout) endingSBoxStart(round, lane int) int {
	return l.endingStart + round*l.width*l.registers + lane*l.registers
}

// Row is a zero-copy view of one trace row's flat field-element buffer,
// exposing the named subfields of the schema: export, inputs, and the
// per-round S-box register vectors.
type Row struct {
	layout layout
	buf    []field.Element
}

// NewRow allocates a fresh, zeroed row for the given shape.
func NewRow(p *Poseidon2Params) Row {
	l := newLayout(p)
	return Row{layout: l, buf: make([]field.Element, l.total())}
}

// RowView wraps an existing flat buffer as a Row without copying. The
// buffer's length must equal the shape's NumColumns() exactly; any
// mismatch is a misaligned-buffer configuration error, since callers are
// expected to allocate aligned per §4.1.
func RowView(p *Poseidon2Params, buf []field.Element) (Row, error) {
	l := newLayout(p)
	if len(buf) != l.total() {
		return Row{}, configError(ErrMisalignedBuffer, "row buffer has %d cells, want %d", len(buf), l.total())
	}
	return Row{layout: l, buf: buf}, nil
}

// Export returns the reserved export cell. This core never writes it;
// its value is meaningless until a downstream sponge-mode caller defines
// a use for it.
func (r Row) Export() field.Element { return r.buf[r.layout.exportIdx] }

// Inputs returns the W cells holding the pre-external-layer state.
func (r Row) Inputs() []field.Element {
	return r.buf[r.layout.inputsStart : r.layout.inputsStart+r.layout.width]
}

// BeginningFullRoundSBox returns the R-cell register vector for lane
// `lane` of beginning full round `round`.
func (r Row) BeginningFullRoundSBox(round, lane int) []field.Element {
	start := r.layout.beginningSBoxStart(round, lane)
	return r.buf[start : start+r.layout.registers]
}

// PartialRoundSBox returns the R-cell register vector for partial round
// `round`.
func (r Row) PartialRoundSBox(round int) []field.Element {
	start := r.layout.partialSBoxStart(round)
	return r.buf[start : start+r.layout.registers]
}

// EndingFullRoundSBox returns the R-cell register vector for lane `lane`
// of ending full round `round`.
func (r Row) EndingFullRoundSBox(round, lane int) []field.Element {
	start := r.layout.endingSBoxStart(round, lane)
	return r.buf[start : start+r.layout.registers]
}

// Buffer returns the flat backing buffer, for handing a row off into a
// trace matrix.
func (r Row) Buffer() []field.Element { return r.buf }
