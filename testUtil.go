package main

import (
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"

	"matrixpad/keypad"
)

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn == nil {
		fnName = "?()"
	} else {
		dotName := filepath.Ext(fn.Name())
		fnName = strings.TrimLeft(dotName, ".") + "()"
	}

	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

func testSettings() *settings {
	s := defaultSettings()
	// a small 2x2 pad keeps test traces readable
	s.settings["rowPins"] = []int{1, 2}
	s.settings["colPins"] = []int{3, 4}
	s.settings["keymap"] = "1234"
	s.settings["keySimulated"] = true
	s.settings["logFile"] = ""
	return s
}

func initTestRuntime(s *settings) runtimeConfig {
	rows, cols, _, _ := padLayout(s)
	return runtimeConfig{
		settings: s,
		clock:    clockwork.NewFakeClock(),
		sampler:  keypad.NewSimSampler(rows, cols),
		comms:    initComms(),
		status:   &padStatus{},
	}
}

func testRuntime() (runtimeConfig, clockwork.FakeClock, commChannels) {
	// make rt for test, log the start of the test
	logCaller(runtime.Caller(1))
	rt := initTestRuntime(testSettings())
	return rt, rt.clock.(clockwork.FakeClock), rt.comms
}

// testBlockDuration advances the fake clock in steps, letting the watcher
// run one poll per step.
func testBlockDuration(clock clockwork.FakeClock, step, total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		clock.Advance(step)
		clock.BlockUntil(1)
	}
}

// testQuit shuts the watcher down and wakes it from its sleep so the
// goroutine actually exits.
func testQuit(rt runtimeConfig) {
	rt.comms.shutdown()
	rt.clock.(clockwork.FakeClock).Advance(rt.settings.GetDuration("sleepTime"))
}

func keyRead(t *testing.T, c chan keyMsg) keyMsg {
	select {
	case m := <-c:
		return m
	default:
		assert.Assert(t, false, "Nothing to read from key channel")
	}
	return keyMsg{}
}

func keyNoRead(t *testing.T, c chan keyMsg) {
	select {
	case m := <-c:
		assert.Assert(t, m == keyMsg{}, "Got an unexpected value on key channel")
	default:
	}
}
