// Package tape implements the fixed-size byte tape and its wrapping cell
// arithmetic (spec component A).
package tape

// DefaultSize is the default tape length (spec §3).
const DefaultSize = 3000

// Tape is a fixed, non-resizable array of 8-bit cells indexed by a data
// pointer in [0, len(cells)).
type Tape struct {
	cells []byte
}

// New allocates a zero-initialized tape of the given size. A size <= 0
// falls back to DefaultSize.
func New(size int) *Tape {
	if size <= 0 {
		size = DefaultSize
	}
	return &Tape{cells: make([]byte, size)}
}

// Len reports the tape's fixed size.
func (t *Tape) Len() int { return len(t.cells) }

// InBounds reports whether i is a valid cell index.
func (t *Tape) InBounds(i int) bool { return i >= 0 && i < len(t.cells) }

// Get reads the cell at i. The caller must ensure i is in bounds.
func (t *Tape) Get(i int) byte { return t.cells[i] }

// Set writes the cell at i. The caller must ensure i is in bounds.
func (t *Tape) Set(i int, v byte) { t.cells[i] = v }

// AddImm adds n (mod 256) to the cell at i, wrapping on overflow.
func (t *Tape) AddImm(i int, n uint64) {
	t.cells[i] = byte(uint64(t.cells[i]) + n)
}

// SubImm subtracts n (mod 256) from the cell at i, wrapping on underflow.
func (t *Tape) SubImm(i int, n uint64) {
	t.cells[i] = byte(uint64(t.cells[i]) - n)
}

// AddCell adds the value of the src cell onto the dst cell.
func (t *Tape) AddCell(dst, src int) {
	t.AddImm(dst, uint64(t.cells[src]))
}

// SubCell subtracts the value of the src cell from the dst cell.
func (t *Tape) SubCell(dst, src int) {
	t.SubImm(dst, uint64(t.cells[src]))
}

// Bytes exposes the underlying storage, e.g. for the JIT engine which owns
// a raw base pointer into the same backing array (spec §3 "Lifecycle").
func (t *Tape) Bytes() []byte { return t.cells }

// Reset zeroes every cell without reallocating.
func (t *Tape) Reset() {
	for i := range t.cells {
		t.cells[i] = 0
	}
}
