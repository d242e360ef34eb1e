//go:build !linux

package main

import (
	"github.com/pkg/errors"

	"dkeller.net/pinwatch/digital"
)

func setupCdevPins(rt runtimeConfig) (map[string]digital.WatchablePin, func(), error) {
	return nil, nil, errors.New("cdev backend needs linux")
}
