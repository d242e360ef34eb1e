//go:build linux

package main

import (
	"dkeller.net/pinwatch/digital"
)

func setupCdevPins(rt runtimeConfig) (map[string]digital.WatchablePin, func(), error) {
	settings := rt.settings
	chip := settings.GetString("gpioChip")
	pullup := settings.GetBool("pullup")

	pins := make(map[string]digital.WatchablePin)
	var opened []*digital.CdevPin
	for _, name := range buttonNames {
		p, err := digital.NewCdevPin(chip, settings.GetInt(name+"Pin"), pullup, rt.logger)
		if err != nil {
			for _, o := range opened {
				o.Close()
			}
			return nil, nil, err
		}
		opened = append(opened, p)
		pins[name] = p
	}
	teardown := func() {
		for _, o := range opened {
			if err := o.Close(); err != nil {
				rt.logger.Warnf("cdev teardown: %v", err)
			}
		}
	}
	return pins, teardown, nil
}
