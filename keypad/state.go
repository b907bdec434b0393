package keypad

import "time"

// KeyState is the debounce/hold state of one tracked key.
type KeyState int

const (
	StateIdle KeyState = iota
	StatePressed
	StateHold
	StateReleased
)

func (s KeyState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressed:
		return "pressed"
	case StateHold:
		return "hold"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// advanceState runs one evaluation of the per-key state machine.
// changed is cleared first and set only by a real transition, so
// pressed-and-still-pressed cycles never report as activity.
func (k *Keypad) advanceState(s *slot, closed bool, now time.Time) {
	s.changed = false

	switch s.state {
	case StateIdle:
		if closed {
			s.state = StatePressed
			s.changed = true
			s.pressStart = now
		}
	case StatePressed:
		// the hold check comes first: a key that crossed the hold
		// threshold reports Hold before any release is noticed
		if now.Sub(s.pressStart) > k.holdTime {
			s.state = StateHold
			s.changed = true
		} else if !closed {
			s.state = StateReleased
			s.changed = true
		}
	case StateHold:
		if !closed {
			s.state = StateReleased
			s.changed = true
		}
	case StateReleased:
		// Released lasts exactly one evaluation; even a re-closed
		// contact passes through Idle so the next press is a fresh
		// Pressed transition
		s.state = StateIdle
		s.changed = true
	}
}
