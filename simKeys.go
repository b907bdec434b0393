package main

import (
	"log"
	"time"

	// keyboard for sim mode
	"github.com/nsf/termbox-go"

	"matrixpad/keypad"
)

// runSimKeys drives the sim sampler from the terminal: typing a keymap
// character toggles that grid cell's contact. Ctrl-C shuts the app down.
func runSimKeys(rt runtimeConfig, sim *keypad.SimSampler) {
	if err := termbox.Init(); err != nil {
		log.Println(err.Error())
		rt.comms.shutdown()
		return
	}
	defer termbox.Close()

	termbox.SetInputMode(termbox.InputEsc)
	termbox.Flush()

	_, cols, keymap, _ := padLayout(rt.settings)

	for {
		select {
		case <-rt.comms.quit:
			return
		default:
		}

		// poll with quick timeout
		// no key means "no change"
		go func() {
			rt.clock.Sleep(100 * time.Millisecond)
			termbox.Interrupt()
		}()

		ev := termbox.PollEvent()
		if ev.Type != termbox.EventKey {
			continue
		}
		if ev.Key == termbox.KeyCtrlC {
			rt.comms.shutdown()
			return
		}

		for i := range keymap {
			if keymap[i] == byte(ev.Ch) {
				closed := sim.Toggle(i/cols, i%cols)
				log.Printf("sim cell '%c' closed=%t", keymap[i], closed)
				break
			}
		}
	}
}
