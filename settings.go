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

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() *configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s["sleepTime"], _ = time.ParseDuration("10ms")
	s["filterInterval"], _ = time.ParseDuration("1ms")
	s["filterThreshold"] = 10
	s["debounceTime"], _ = time.ParseDuration("50ms")
	s["agentTime"], _ = time.ParseDuration("5ms")
	s["longPressTime"], _ = time.ParseDuration("500ms")
	s["multiClickWindow"], _ = time.ParseDuration("500ms")
	s["multiClickCount"] = 2
	s["backend"] = "sim" // sim, rpio, cdev
	s["gpioChip"] = "gpiochip0"
	s["pullup"] = true
	s["mainBtnPin"] = 25
	s["longBtnPin"] = 24
	s["dblBtnPin"] = 23
	s["mainBtnKey"] = "m"
	s["longBtnKey"] = "l"
	s["dblBtnKey"] = "d"
	s["logFile"] = "/var/log/pinwatch.log"
	s["debug"] = false

	return &configSettings{settings: s}
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false as strings
				sVal, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(sVal) {
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
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func initSettings() *configSettings {
	// defaults
	s := defaultSettings()

	configFile := flag.String("config", "/etc/default/pinwatch/pinwatch.conf", "config file path")
	simulated := flag.Bool("sim", false, "force the keyboard-simulated backend")
	flag.Parse()

	if *simulated {
		s.settings["backend"] = "sim"
	}

	// a missing config file just means defaults
	data, err := ioutil.ReadFile(*configFile)
	if err != nil {
		log.Printf("no config file at '%s', using defaults", *configFile)
		return s
	}

	if err := s.settingsFromJSON(data); err != nil {
		log.Fatalf("bad config file '%s': %s", *configFile, err.Error())
	}

	return s
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

// GetKey maps a button name to its sim-mode keyboard key.
func (s *configSettings) GetKey(name string) rune {
	v := s.GetString(name + "Key")
	if len(v) == 0 {
		return '?'
	}
	return []rune(v)[0]
}
