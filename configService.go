package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/context"

	"matrixpad/keypad"
)

type statusResponse struct {
	Response   string `json:"response"`
	Error      string `json:"error,omitempty"`
	ActiveKeys int    `json:"active_keys"`
	LastKey    string `json:"last_key,omitempty"`
	LastState  string `json:"last_state"`
	DebounceMS int64  `json:"debounce_ms"`
	HoldMS     int64  `json:"hold_ms"`
}

type knobRequest struct {
	MS int64 `json:"ms"`
}

type knobResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// apiHandler - settings for the thing that handles HTTP requests
type apiHandler struct {
	rt runtimeConfig
}

func newHandler(rt runtimeConfig) *apiHandler {
	return &apiHandler{rt: rt}
}

func (h *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	active, key, state, debounce, hold := h.rt.status.snapshot()
	resp := statusResponse{
		Response:   "OK",
		ActiveKeys: active,
		LastState:  state.String(),
		DebounceMS: int64(debounce / time.Millisecond),
		HoldMS:     int64(hold / time.Millisecond),
	}
	if key != keypad.NoKey {
		resp.LastKey = string(key)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *apiHandler) apiDebounce(w http.ResponseWriter, r *http.Request) {
	h.postKnob(w, r, func(d time.Duration) knobMsg {
		return knobMsg{debounce: d}
	})
}

func (h *apiHandler) apiHold(w http.ResponseWriter, r *http.Request) {
	h.postKnob(w, r, func(d time.Duration) knobMsg {
		return knobMsg{hold: d}
	})
}

func (h *apiHandler) postKnob(w http.ResponseWriter, r *http.Request, msg func(time.Duration) knobMsg) {
	var req knobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, knobResponse{Response: "BAD", Error: err.Error()})
		return
	}
	if req.MS <= 0 {
		writeJSON(w, http.StatusBadRequest, knobResponse{Response: "BAD", Error: "ms must be > 0"})
		return
	}

	// the watcher applies knob changes between polls; don't wedge the
	// request if it's gone
	select {
	case h.rt.comms.knobs <- msg(time.Duration(req.MS) * time.Millisecond):
		writeJSON(w, http.StatusOK, knobResponse{Response: "OK"})
	default:
		writeJSON(w, http.StatusServiceUnavailable, knobResponse{Response: "BAD", Error: "watcher not accepting changes"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("config service encode: %s", err.Error())
	}
}

type httpConfigService struct {
	srv     *http.Server
	handler *apiHandler
}

func (h *httpConfigService) launch(handler *apiHandler, addr string) {
	h.handler = handler

	// json api only, no static content to serve
	r := mux.NewRouter()
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/api/debounce", handler.apiDebounce).Methods("POST")
	r.HandleFunc("/api/hold", handler.apiHold).Methods("POST")

	h.srv = &http.Server{Addr: addr, Handler: r}

	// add to the wg
	wg.Add(1)

	// launch the server
	go func() {
		defer wg.Done()
		log.Println("starting config service http server")
		err := h.srv.ListenAndServe()
		log.Print(err)
		log.Print("exiting config service")
	}()
}

func (h *httpConfigService) stop() {
	h.srv.Shutdown(context.Background())
}
