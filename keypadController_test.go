package main

import (
	"testing"
	"time"

	"gotest.tools/assert"

	"matrixpad/keypad"
)

func TestWatchKeypadPressHoldRelease(t *testing.T) {
	rt, clock, comms := testRuntime()
	sim := rt.sampler.(*keypad.SimSampler)
	sleep := rt.settings.GetDuration("sleepTime")

	go runWatchKeypad(rt)
	clock.BlockUntil(1)

	// nothing pressed yet, nothing reported
	keyNoRead(t, comms.keys)

	// close a contact and let one poll run
	sim.Press(0, 0)
	clock.Advance(sleep)
	clock.BlockUntil(1)

	m := keyRead(t, comms.keys)
	assert.Equal(t, m.key, byte('1'))
	assert.Equal(t, m.state, keypad.StatePressed)
	assert.Equal(t, m.held, time.Duration(0))
	keyNoRead(t, comms.keys)

	// keep it closed past the hold threshold
	testBlockDuration(clock, sleep, 600*time.Millisecond)
	m = keyRead(t, comms.keys)
	assert.Equal(t, m.key, byte('1'))
	assert.Equal(t, m.state, keypad.StateHold)
	assert.Assert(t, m.held > 500*time.Millisecond)
	keyNoRead(t, comms.keys)

	// release: one released message, then one idle message
	sim.Release(0, 0)
	clock.Advance(sleep)
	clock.BlockUntil(1)
	m = keyRead(t, comms.keys)
	assert.Equal(t, m.state, keypad.StateReleased)
	assert.Assert(t, m.held > 0)

	clock.Advance(sleep)
	clock.BlockUntil(1)
	m = keyRead(t, comms.keys)
	assert.Equal(t, m.state, keypad.StateIdle)

	testQuit(rt)
}

func TestWatchKeypadTwoKeys(t *testing.T) {
	rt, clock, comms := testRuntime()
	sim := rt.sampler.(*keypad.SimSampler)
	sleep := rt.settings.GetDuration("sleepTime")

	go runWatchKeypad(rt)
	clock.BlockUntil(1)

	sim.Press(0, 1) // '2'
	sim.Press(1, 0) // '3'
	clock.Advance(sleep)
	clock.BlockUntil(1)

	m1 := keyRead(t, comms.keys)
	m2 := keyRead(t, comms.keys)
	assert.Equal(t, m1.key, byte('2'))
	assert.Equal(t, m1.state, keypad.StatePressed)
	assert.Equal(t, m2.key, byte('3'))
	assert.Equal(t, m2.state, keypad.StatePressed)

	testQuit(rt)
}

func TestWatchKeypadKnobs(t *testing.T) {
	rt, clock, comms := testRuntime()

	go runWatchKeypad(rt)
	clock.BlockUntil(1)

	comms.knobs <- knobMsg{debounce: 25 * time.Millisecond, hold: time.Second}
	// wake the watcher so it picks the message up
	clock.Advance(rt.settings.GetDuration("sleepTime"))
	clock.BlockUntil(1)

	_, _, _, debounce, hold := rt.status.snapshot()
	assert.Equal(t, debounce, 25*time.Millisecond)
	assert.Equal(t, hold, time.Second)

	testQuit(rt)
}

func TestWatchKeypadBadLayout(t *testing.T) {
	rt, _, comms := testRuntime()
	rt.settings.settings["keymap"] = "12345" // 5 keys on a 2x2 grid

	runWatchKeypad(rt)

	// the watcher refuses to start and shuts everything down
	select {
	case <-comms.quit:
	default:
		assert.Assert(t, false, "quit channel should be closed")
	}
}
