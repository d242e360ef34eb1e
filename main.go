package main

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
)

var wg sync.WaitGroup

// pinwatch -config={config file} [-sim]

func main() {
	settings := initSettings()

	logger := setupLogging(settings)
	defer logger.Sync()

	rt := initRuntime(settings, clockwork.NewRealClock(), logger)

	pins, teardown, err := setupPins(rt)
	if err != nil {
		logger.Fatalf("pin backend setup failed: %v", err)
	}
	defer teardown()

	w, err := startWatchButtons(rt, pins)
	if err != nil {
		logger.Fatalf("button setup failed: %v", err)
	}

	wg.Add(1)
	go runEffects(rt)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	logger.Infof("caught %v, shutting down", s)

	w.stop()
	if !w.waitDrained(2 * time.Second) {
		logger.Warn("bindings did not drain in time")
	}
	close(rt.comms.quit)
	wg.Wait()
}
