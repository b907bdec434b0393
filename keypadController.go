package main

import (
	"log"
	"time"

	"matrixpad/keypad"
)

// runWatchKeypad owns the keypad instance: it polls at sleepTime, applies
// knob updates from the config service between polls, and fans every key
// transition out on comms.keys.
func runWatchKeypad(rt runtimeConfig) {
	defer func() {
		log.Println("exiting runWatchKeypad")
	}()

	settings := rt.settings
	comms := rt.comms

	rows, cols, keymap, err := padLayout(settings)
	if err != nil {
		log.Println(err.Error())
		comms.shutdown()
		return
	}
	defer rt.sampler.Close()

	pad := keypad.New(rt.sampler, rt.clock, keypad.Config{
		Rows:     rows,
		Cols:     cols,
		Keymap:   keymap,
		Debounce: settings.GetDuration("debounceTime"),
		Hold:     settings.GetDuration("holdTime"),
		MaxKeys:  settings.GetInt("maxKeys"),
	})

	debounce := settings.GetDuration("debounceTime")
	hold := settings.GetDuration("holdTime")
	rt.status.setKnobs(debounce, hold)

	// press timestamps, for the held-duration on hold/release messages
	started := make(map[byte]time.Time)

	for {
		select {
		case <-comms.quit:
			log.Println("quit from runWatchKeypad")
			return
		case m := <-comms.knobs:
			if m.debounce > 0 {
				pad.SetDebounceInterval(m.debounce)
				debounce = m.debounce
			}
			if m.hold > 0 {
				pad.SetHoldThreshold(m.hold)
				hold = m.hold
			}
			rt.status.setKnobs(debounce, hold)
			continue
		default:
		}

		if pad.GetKeys() {
			now := rt.clock.Now()
			for i := 0; i < pad.NumSlots(); i++ {
				if !pad.Changed(i) || pad.Key(i) == keypad.NoKey {
					continue
				}
				key := pad.Key(i)
				state := pad.State(i)

				var held time.Duration
				switch state {
				case keypad.StatePressed:
					started[key] = now
				case keypad.StateHold, keypad.StateReleased:
					if t0, ok := started[key]; ok {
						held = now.Sub(t0)
					}
				case keypad.StateIdle:
					delete(started, key)
				}

				log.Printf("key '%c' %s", key, state)
				comms.keys <- keyMsg{key: key, state: state, held: held}
				rt.status.update(pad.ActiveKeys(), key, state)
			}
		}

		rt.status.update(pad.ActiveKeys(), keypad.NoKey, keypad.StateIdle)
		rt.clock.Sleep(settings.GetDuration("sleepTime"))
	}
}
