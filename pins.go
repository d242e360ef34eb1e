package main

import (
	"github.com/pkg/errors"

	"dkeller.net/pinwatch/digital"
)

var buttonNames = []string{sMainBtn, sLongBtn, sDblBtn}

// setupPins builds the configured pin backend and returns the pins plus a
// teardown function.
func setupPins(rt runtimeConfig) (map[string]digital.WatchablePin, func(), error) {
	settings := rt.settings
	pullup := settings.GetBool("pullup")
	pins := make(map[string]digital.WatchablePin)

	switch backend := settings.GetString("backend"); backend {
	case "sim":
		kb, err := digital.NewKeyboard(rt.logger)
		if err != nil {
			return nil, nil, err
		}
		idle := pressedLevel(pullup).Inverse()
		for _, name := range buttonNames {
			pins[name] = kb.Pin(settings.GetKey(name), idle)
		}
		return pins, kb.Close, nil

	case "rpio":
		if err := digital.OpenRPIO(); err != nil {
			return nil, nil, err
		}
		for _, name := range buttonNames {
			pins[name] = digital.NewRPIOPin(settings.GetInt(name+"Pin"), pullup,
				rt.clock, rt.logger)
		}
		teardown := func() {
			if err := digital.CloseRPIO(); err != nil {
				rt.logger.Warnf("rpio teardown: %v", err)
			}
		}
		return pins, teardown, nil

	case "cdev":
		return setupCdevPins(rt)

	default:
		return nil, nil, errors.Errorf("unknown pin backend %q", backend)
	}
}
