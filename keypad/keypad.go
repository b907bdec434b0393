// Package keypad turns raw matrix-keypad scans into debounced key events.
// It tracks any number of simultaneously held keys up to rows*cols and
// reports each state transition (pressed, hold, released, idle) exactly once.
package keypad

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// NoKey is returned by the single-key poll when nothing just became pressed.
const NoKey byte = 0

// default timing knobs, overridable per instance
const (
	DefaultDebounce = 10 * time.Millisecond
	DefaultHold     = 500 * time.Millisecond
	minDebounce     = time.Millisecond
)

// Listener receives one callback per qualifying state transition, fired
// synchronously from inside the poll call that observed it.
type Listener func(key byte, state KeyState)

// slot tracks one physical grid cell while it is active. occupied is an
// explicit discriminant so a real key may legally map to any byte value.
type slot struct {
	occupied   bool
	key        byte
	code       int // row*cols + col of the tracked cell
	state      KeyState
	changed    bool
	pressStart time.Time
}

// Config describes the grid at construction time.
type Config struct {
	Rows     int
	Cols     int
	Keymap   []byte        // row-major, len Rows*Cols
	Debounce time.Duration // 0 means DefaultDebounce
	Hold     time.Duration // 0 means DefaultHold
	MaxKeys  int           // slot capacity, 0 means Rows*Cols
}

// Keypad is the scanning core: a sampler, a fixed slot list and the
// per-slot state machine. It is not safe for concurrent use; a host
// polling from several goroutines must serialize calls itself.
type Keypad struct {
	sampler  Sampler
	clock    clockwork.Clock
	rows     int
	cols     int
	keymap   []byte
	slots    []slot
	debounce time.Duration
	holdTime time.Duration
	lastScan time.Time
	listener Listener
}

// New builds a keypad over the given sampler. The clock is injected so
// hosts and tests control time; pass clockwork.NewRealClock() on hardware.
func New(sampler Sampler, clock clockwork.Clock, cfg Config) *Keypad {
	capacity := cfg.MaxKeys
	if capacity <= 0 || capacity > cfg.Rows*cfg.Cols {
		capacity = cfg.Rows * cfg.Cols
	}
	k := &Keypad{
		sampler:  sampler,
		clock:    clock,
		rows:     cfg.Rows,
		cols:     cfg.Cols,
		keymap:   cfg.Keymap,
		slots:    make([]slot, capacity),
		debounce: cfg.Debounce,
		holdTime: cfg.Hold,
	}
	if k.debounce <= 0 {
		k.debounce = DefaultDebounce
	}
	if k.holdTime <= 0 {
		k.holdTime = DefaultHold
	}
	// first poll should always scan
	k.lastScan = clock.Now().Add(-k.debounce - time.Second)
	return k
}

// SetDebounceInterval changes the minimum time between hardware scans.
// Values below 1ms are clamped up, not rejected.
func (k *Keypad) SetDebounceInterval(d time.Duration) {
	if d < minDebounce {
		d = minDebounce
	}
	k.debounce = d
}

// SetHoldThreshold changes how long a key stays Pressed before Hold.
func (k *Keypad) SetHoldThreshold(d time.Duration) {
	k.holdTime = d
}

// SetListener registers (or replaces, or with nil removes) the transition
// callback. An unset listener is simply a no-op dispatch target.
func (k *Keypad) SetListener(l Listener) {
	k.listener = l
}

// GetKeys is the multi-key poll: scan the matrix, reconcile the slot list
// and report whether any slot changed state this cycle. Calls inside the
// debounce window do no hardware scan and report no activity.
func (k *Keypad) GetKeys() bool {
	if !k.scan() {
		return false
	}
	changed := false
	for i := range k.slots {
		s := &k.slots[i]
		if !s.occupied || !s.changed {
			continue
		}
		changed = true
		if k.listener != nil {
			k.listener(s.key, s.state)
		}
	}
	return changed
}

// GetKey is the single-key compatibility poll: same scan and reconcile,
// but only slot 0 is dispatched, and the return value is slot 0's key iff
// it just became pressed this cycle (NoKey otherwise).
func (k *Keypad) GetKey() byte {
	if !k.scan() {
		return NoKey
	}
	s := &k.slots[0]
	if !s.occupied || !s.changed {
		return NoKey
	}
	if k.listener != nil {
		k.listener(s.key, s.state)
	}
	if s.state == StatePressed {
		return s.key
	}
	return NoKey
}

// WaitForKey blocks until a key becomes pressed and returns it. This is a
// busy-wait over GetKey and monopolizes the calling goroutine's thread
// time; prefer polling GetKeys from a loop that sleeps.
func (k *Keypad) WaitForKey() byte {
	for {
		if key := k.GetKey(); key != NoKey {
			return key
		}
	}
}

// Key returns the identity tracked by slot i, or NoKey when the slot is
// unused.
func (k *Keypad) Key(i int) byte {
	if !k.slots[i].occupied {
		return NoKey
	}
	return k.slots[i].key
}

// State returns slot i's current state (Idle for unused slots).
func (k *Keypad) State(i int) KeyState {
	return k.slots[i].state
}

// Changed reports whether slot i transitioned during the last scan.
func (k *Keypad) Changed(i int) bool {
	return k.slots[i].changed
}

// NumSlots returns the fixed slot capacity (rows * cols).
func (k *Keypad) NumSlots() int {
	return len(k.slots)
}

// IsPressed reports whether the given key just became pressed this cycle.
func (k *Keypad) IsPressed(key byte) bool {
	for i := range k.slots {
		s := &k.slots[i]
		if s.occupied && s.key == key && s.state == StatePressed && s.changed {
			return true
		}
	}
	return false
}

// ActiveKeys counts the slots currently tracking a non-idle key.
func (k *Keypad) ActiveKeys() int {
	n := 0
	for i := range k.slots {
		if k.slots[i].occupied && k.slots[i].state != StateIdle {
			n++
		}
	}
	return n
}

// scan runs one debounce-gated sample+reconcile cycle. It reports whether
// a scan actually happened; a gated call leaves all state untouched.
func (k *Keypad) scan() bool {
	now := k.clock.Now()
	if now.Sub(k.lastScan) < k.debounce {
		return false
	}
	k.lastScan = now
	k.reconcile(k.sampler.Sample(), now)
	return true
}
