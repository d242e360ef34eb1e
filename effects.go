package main

import (
	"time"
)

// buttonEffect is what the watcher publishes for every detected gesture.
type buttonEffect struct {
	source string
	kind   string
	at     time.Time
}

// runEffects consumes detections. The demo just narrates them; a real
// deployment swaps this worker for whatever the buttons should drive.
func runEffects(rt runtimeConfig) {
	defer wg.Done()
	logger := rt.logger.Named("effects")
	for {
		select {
		case <-rt.comms.quit:
			logger.Info("exiting runEffects")
			return
		case e := <-rt.comms.effects:
			logger.Infow("button event", "source", e.source, "kind", e.kind, "at", e.at)
		}
	}
}
