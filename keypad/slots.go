package keypad

import "time"

// reconcile is one full pass of the active-key list against a fresh scan.
// Reclaim runs first so a slot vacated last cycle is immediately reusable
// for a new press seen in this same bitmask.
func (k *Keypad) reconcile(rowBits []uint8, now time.Time) {
	for i := range k.slots {
		if k.slots[i].occupied && k.slots[i].state == StateIdle {
			k.slots[i] = slot{}
		}
	}

	for r := 0; r < k.rows; r++ {
		for c := 0; c < k.cols; c++ {
			closed := rowBits[r]&(1<<uint(c)) != 0
			code := r*k.cols + c

			if i := k.findSlot(code); i >= 0 {
				k.advanceState(&k.slots[i], closed, now)
				continue
			}
			if !closed {
				continue
			}
			i := k.freeSlot()
			if i < 0 {
				// list saturated: the press is silently dropped, a
				// known capacity limit rather than an error. Nothing
				// distinguishes it from an open contact until a slot
				// frees up.
				continue
			}
			k.slots[i] = slot{occupied: true, key: k.keymap[code], code: code, state: StateIdle}
			// advance immediately so a fresh detection reports
			// Pressed in the cycle it is first seen
			k.advanceState(&k.slots[i], closed, now)
		}
	}
}

// findSlot returns the index of the occupied slot tracking the given cell
// code, or -1. Linear search: the list is rows*cols entries at most.
func (k *Keypad) findSlot(code int) int {
	for i := range k.slots {
		if k.slots[i].occupied && k.slots[i].code == code {
			return i
		}
	}
	return -1
}

// freeSlot returns the lowest-index unused slot, or -1 when saturated.
func (k *Keypad) freeSlot() int {
	for i := range k.slots {
		if !k.slots[i].occupied {
			return i
		}
	}
	return -1
}
