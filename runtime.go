package main

import (
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	sMainBtn = "mainBtn"
	sLongBtn = "longBtn"
	sDblBtn  = "dblBtn"
)

type commChannels struct {
	quit    chan struct{}
	effects chan buttonEffect
}

// runtimeConfig bundles the dependencies the worker functions share, so
// tests can swap in fake clocks and pins.
type runtimeConfig struct {
	settings *configSettings
	clock    clockwork.Clock
	logger   *zap.SugaredLogger
	comms    commChannels
}

func initCommChannels() commChannels {
	return commChannels{
		quit:    make(chan struct{}),
		effects: make(chan buttonEffect, 10),
	}
}

func initRuntime(settings *configSettings, clock clockwork.Clock, logger *zap.SugaredLogger) runtimeConfig {
	return runtimeConfig{
		settings: settings,
		clock:    clock,
		logger:   logger,
		comms:    initCommChannels(),
	}
}
