package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"matrixpad/keypad"
)

// matrixpad -config={config file} [-sim]

func main() {
	// read config information
	settings := initSettings()
	setupLogging(settings)
	settings.Dump()

	rt, err := initRuntime(settings)
	if err != nil {
		log.Fatalf("init error: %s", err.Error())
	}

	// the keypad watcher owns the scanner
	wg.Add(1)
	go func() {
		defer wg.Done()
		runWatchKeypad(rt)
	}()

	// sim mode gets the termbox front-end
	if sim, ok := rt.sampler.(*keypad.SimSampler); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runSimKeys(rt, sim)
		}()
	}

	// runtime knobs over http, if configured
	if addr := settings.GetString("cfgService"); addr != "" {
		var cfgSvc httpConfigService
		cfgSvc.launch(newHandler(rt), addr)
		go func() {
			<-rt.comms.quit
			cfgSvc.stop()
		}()
	}

	// consume key messages until shutdown
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-rt.comms.quit:
				return
			case m := <-rt.comms.keys:
				if m.held > 0 {
					log.Printf("[%c] %s after %s", m.key, m.state, m.held)
				} else {
					log.Printf("[%c] %s", m.key, m.state)
				}
			}
		}
	}()

	// ctrl-c / SIGTERM also shuts down
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			rt.comms.shutdown()
		case <-rt.comms.quit:
		}
	}()

	wg.Wait()
}
