package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

// keep settings generic strings, type-convert on the fly
type settings struct {
	settings map[string]interface{}
}

func defaultSettings() *settings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	// default wiring is a 4x4 keypad on the usual BCM pins
	s["rowPins"] = []int{5, 6, 13, 19}
	s["colPins"] = []int{12, 16, 20, 21}
	s["keymap"] = "123A456B789C*0#D"
	s["debounceTime"], _ = time.ParseDuration("10ms")
	s["holdTime"], _ = time.ParseDuration("500ms")
	s["sleepTime"], _ = time.ParseDuration("10ms")
	s["logFile"] = "/var/log/matrixpad.log"
	s["keySimulated"] = false
	s["debugDump"] = false
	s["cfgService"] = ""
	s["maxKeys"] = 0 // 0 -> one slot per grid cell

	return &settings{settings: s}
}

func (s *settings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case int:
			var v int64
			v, err = jsonparser.GetInt(data, k)
			s.settings[k] = int(v)
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false as strings
				sv, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(sv) {
				case "true":
					bVal = true
				case "false":
					bVal = false
				default:
					return err
				}
				err = nil
			}
			s.settings[k] = bVal
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		case []int:
			pins := make([]int, 0, 8)
			_, err = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, errEach error) {
				v, errParse := jsonparser.ParseInt(value)
				if errParse == nil {
					pins = append(pins, int(v))
				}
			}, k)
			if err == nil {
				s.settings[k] = pins
			}
		default:
			err = fmt.Errorf("Bad type: %T", initVal)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func initSettings() *settings {
	log.Println("initSettings")

	// defaults
	s := defaultSettings()

	// define our flags first
	configFile := flag.String("config", "/etc/default/matrixpad/matrixpad.conf", "config file path")
	simulated := flag.Bool("sim", false, "use a simulated keypad (termbox)")

	// parse the flags
	flag.Parse()

	if *simulated {
		s.settings["keySimulated"] = true
	}

	// a missing config file just means all-defaults
	data, err := ioutil.ReadFile(*configFile)
	if err != nil {
		log.Printf("No conf file '%s', using defaults", *configFile)
		return s
	}

	log.Println(fmt.Sprintf("Reading configuration from '%s'", *configFile))

	// json parse it
	if err := s.settingsFromJSON(data); err != nil {
		log.Fatal(err.Error())
	}

	return s
}

func (s *settings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *settings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *settings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *settings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s *settings) GetIntArray(key string) []int {
	switch v := s.settings[key].(type) {
	case []int:
		return v
	default:
		return nil
	}
}

func (s *settings) Dump() {
	for k, v := range s.settings {
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
