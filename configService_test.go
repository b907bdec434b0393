package main

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gotest.tools/assert"

	"matrixpad/keypad"
)

func TestAPIStatus(t *testing.T) {
	rt, _, _ := testRuntime()
	rt.status.setKnobs(10*time.Millisecond, 500*time.Millisecond)
	rt.status.update(2, '1', keypad.StateHold)

	h := newHandler(rt)
	w := httptest.NewRecorder()
	h.apiStatus(w, httptest.NewRequest("GET", "/api/status", nil))

	assert.Equal(t, w.Code, 200)
	var resp statusResponse
	assert.NilError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, resp.Response, "OK")
	assert.Equal(t, resp.ActiveKeys, 2)
	assert.Equal(t, resp.LastKey, "1")
	assert.Equal(t, resp.LastState, "hold")
	assert.Equal(t, resp.DebounceMS, int64(10))
	assert.Equal(t, resp.HoldMS, int64(500))
}

func TestAPIDebounce(t *testing.T) {
	rt, _, comms := testRuntime()
	h := newHandler(rt)

	w := httptest.NewRecorder()
	h.apiDebounce(w, httptest.NewRequest("POST", "/api/debounce", strings.NewReader(`{"ms": 25}`)))

	assert.Equal(t, w.Code, 200)
	m := <-comms.knobs
	assert.Equal(t, m.debounce, 25*time.Millisecond)
	assert.Equal(t, m.hold, time.Duration(0))
}

func TestAPIHold(t *testing.T) {
	rt, _, comms := testRuntime()
	h := newHandler(rt)

	w := httptest.NewRecorder()
	h.apiHold(w, httptest.NewRequest("POST", "/api/hold", strings.NewReader(`{"ms": 1000}`)))

	assert.Equal(t, w.Code, 200)
	m := <-comms.knobs
	assert.Equal(t, m.hold, time.Second)
	assert.Equal(t, m.debounce, time.Duration(0))
}

func TestAPIKnobRejectsBadInput(t *testing.T) {
	rt, _, _ := testRuntime()
	h := newHandler(rt)

	w := httptest.NewRecorder()
	h.apiDebounce(w, httptest.NewRequest("POST", "/api/debounce", strings.NewReader(`{"ms": 0}`)))
	assert.Equal(t, w.Code, 400)

	w = httptest.NewRecorder()
	h.apiHold(w, httptest.NewRequest("POST", "/api/hold", strings.NewReader(`not json`)))
	assert.Equal(t, w.Code, 400)
}

func TestAPIKnobWatcherBusy(t *testing.T) {
	rt, _, comms := testRuntime()
	h := newHandler(rt)

	// fill the knob channel so the next post has nowhere to go
	comms.knobs <- knobMsg{debounce: time.Millisecond}
	comms.knobs <- knobMsg{debounce: time.Millisecond}

	w := httptest.NewRecorder()
	h.apiDebounce(w, httptest.NewRequest("POST", "/api/debounce", strings.NewReader(`{"ms": 25}`)))
	assert.Equal(t, w.Code, 503)
}
