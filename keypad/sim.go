package keypad

import "log"

// SimSampler is an in-memory matrix used by tests and by desktop builds
// without GPIO. Cells are opened and closed programmatically.
type SimSampler struct {
	rows int
	cols int
	bits []uint8
	dump bool
}

func NewSimSampler(rows, cols int) *SimSampler {
	return &SimSampler{rows: rows, cols: cols, bits: make([]uint8, rows)}
}

// DebugDump turns on logging of every sample returned.
func (ss *SimSampler) DebugDump(on bool) {
	ss.dump = on
}

func (ss *SimSampler) Sample() []uint8 {
	out := make([]uint8, len(ss.bits))
	copy(out, ss.bits)
	if ss.dump {
		log.Printf("sim sample: %08b", out)
	}
	return out
}

func (ss *SimSampler) Close() {
}

// Press closes the contact at (row, col).
func (ss *SimSampler) Press(row, col int) {
	ss.bits[row] |= 1 << uint(col)
}

// Release opens the contact at (row, col).
func (ss *SimSampler) Release(row, col int) {
	ss.bits[row] &^= 1 << uint(col)
}

// Toggle flips the contact at (row, col) and reports the new closed state.
func (ss *SimSampler) Toggle(row, col int) bool {
	ss.bits[row] ^= 1 << uint(col)
	return ss.bits[row]&(1<<uint(col)) != 0
}

// Clear opens every contact.
func (ss *SimSampler) Clear() {
	for i := range ss.bits {
		ss.bits[i] = 0
	}
}

// Set replaces the whole bitmask at once.
func (ss *SimSampler) Set(bits []uint8) {
	copy(ss.bits, bits)
}
