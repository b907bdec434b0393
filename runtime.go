package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"matrixpad/keypad"
)

var wg sync.WaitGroup

// keyMsg is one observed key transition, fanned out to consumers
type keyMsg struct {
	key   byte
	state keypad.KeyState
	held  time.Duration // how long the key has been down, 0 until Hold
}

// knobMsg carries a runtime adjustment from the config service to the
// watcher goroutine; a zero field means "leave that knob alone"
type knobMsg struct {
	debounce time.Duration
	hold     time.Duration
}

type commChannels struct {
	quit     chan struct{}
	quitOnce *sync.Once
	keys     chan keyMsg
	knobs    chan knobMsg
}

func initComms() commChannels {
	return commChannels{
		quit:     make(chan struct{}),
		quitOnce: &sync.Once{},
		keys:     make(chan keyMsg, 10),
		knobs:    make(chan knobMsg, 2),
	}
}

// shutdown closes the quit channel exactly once; any goroutine may call it
func (c commChannels) shutdown() {
	c.quitOnce.Do(func() {
		close(c.quit)
	})
}

// padStatus is the only state shared between the watcher goroutine and the
// config service; everything else flows over channels.
type padStatus struct {
	mu         sync.Mutex
	activeKeys int
	lastKey    byte
	lastState  keypad.KeyState
	debounce   time.Duration
	hold       time.Duration
}

func (ps *padStatus) update(active int, key byte, state keypad.KeyState) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.activeKeys = active
	if key != keypad.NoKey {
		ps.lastKey = key
		ps.lastState = state
	}
}

func (ps *padStatus) setKnobs(debounce, hold time.Duration) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.debounce = debounce
	ps.hold = hold
}

func (ps *padStatus) snapshot() (int, byte, keypad.KeyState, time.Duration, time.Duration) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.activeKeys, ps.lastKey, ps.lastState, ps.debounce, ps.hold
}

type runtimeConfig struct {
	settings *settings
	clock    clockwork.Clock
	sampler  keypad.Sampler
	comms    commChannels
	status   *padStatus
}

// padLayout pulls the grid shape out of settings and sanity-checks the
// keymap against it.
func padLayout(s *settings) (rows int, cols int, keymap []byte, err error) {
	rows = len(s.GetIntArray("rowPins"))
	cols = len(s.GetIntArray("colPins"))
	keymap = []byte(s.GetString("keymap"))
	if rows == 0 || cols == 0 {
		err = fmt.Errorf("no pins: %d rows, %d cols", rows, cols)
		return
	}
	if len(keymap) != rows*cols {
		err = fmt.Errorf("keymap has %d keys, want %d (%dx%d)", len(keymap), rows*cols, rows, cols)
	}
	return
}

func initRuntime(s *settings) (runtimeConfig, error) {
	rt := runtimeConfig{
		settings: s,
		clock:    clockwork.NewRealClock(),
		comms:    initComms(),
		status:   &padStatus{},
	}

	rows, cols, _, err := padLayout(s)
	if err != nil {
		return rt, err
	}

	if s.GetBool("keySimulated") {
		sim := keypad.NewSimSampler(rows, cols)
		sim.DebugDump(s.GetBool("debugDump"))
		rt.sampler = sim
	} else {
		ps, err := keypad.OpenPinSampler(s.GetIntArray("rowPins"), s.GetIntArray("colPins"))
		if err != nil {
			return rt, err
		}
		rt.sampler = ps
	}
	return rt, nil
}
