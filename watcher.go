package main

import (
	"time"

	"dkeller.net/pinwatch/button"
	"dkeller.net/pinwatch/digital"
	"dkeller.net/pinwatch/dispatch"
	"dkeller.net/pinwatch/event"
)

// watcher owns the three demo buttons and their bindings: the main button
// is interrupt-driven on a cooperative loop, the other two are
// count-filtered and polled from their own goroutines. Both regimes stay
// exercised in the normal build that way.
type watcher struct {
	rt       runtimeConfig
	loop     *dispatch.Loop
	mainBtn  *button.InterruptDriven
	bindings []*dispatch.Binding
}

func pressedLevel(pullup bool) digital.Signal {
	if pullup {
		return digital.Low
	}
	return digital.High
}

func startWatchButtons(rt runtimeConfig, pins map[string]digital.WatchablePin) (*watcher, error) {
	settings := rt.settings
	logger := rt.logger.Named("watcher")

	w := &watcher{rt: rt}
	pressed := pressedLevel(settings.GetBool("pullup"))
	sleepTime := settings.GetDuration("sleepTime")
	threshold := settings.GetInt("filterThreshold")
	filterIv := settings.GetDuration("filterInterval")

	// Main button: interrupt-driven, with its agent, debounce timer and
	// press binding all cooperating on one loop.
	w.loop = dispatch.NewLoop(rt.clock, logger)
	w.mainBtn = button.NewInterruptDriven(pins[sMainBtn], pressed,
		settings.GetDuration("debounceTime"), settings.GetDuration("agentTime"),
		w.loop, rt.clock, logger)
	if err := w.mainBtn.Activate(); err != nil {
		return nil, err
	}
	mainBind := dispatch.NewBinding(sMainBtn, event.NewPress(w.mainBtn),
		w.forwarder(), sleepTime, rt.clock, logger)
	mainBind.StartTask(w.loop)
	w.bindings = append(w.bindings, mainBind)

	// Long-press button, preemptive regime.
	longBtn := button.NewCountFiltered(pins[sLongBtn], pressed, threshold,
		filterIv, rt.clock, logger)
	longBind := dispatch.NewBinding(sLongBtn,
		event.NewLongPress(longBtn, settings.GetDuration("longPressTime"),
			rt.clock, rt.clock, logger),
		w.forwarder(), sleepTime, rt.clock, logger)
	longBind.StartThread()
	w.bindings = append(w.bindings, longBind)

	// Multi-click button, preemptive regime.
	dblBtn := button.NewCountFiltered(pins[sDblBtn], pressed, threshold,
		filterIv, rt.clock, logger)
	dblBind := dispatch.NewBinding(sDblBtn,
		event.NewMultiClick(dblBtn, settings.GetInt("multiClickCount"),
			settings.GetDuration("multiClickWindow"), rt.clock, rt.clock, logger),
		w.forwarder(), sleepTime, rt.clock, logger)
	dblBind.StartThread()
	w.bindings = append(w.bindings, dblBind)

	logger.Infof("watching %d buttons", len(pins))
	return w, nil
}

// forwarder publishes detections onto the effects channel. A full channel
// drops the event; detection must never block on a slow consumer.
func (w *watcher) forwarder() dispatch.Handler {
	return dispatch.HandlerFunc("effects", func(c dispatch.Context) {
		select {
		case w.rt.comms.effects <- buttonEffect{source: c.Source, kind: c.Kind, at: c.At}:
		default:
			w.rt.logger.Warnw("effects channel full, dropping", "source", c.Source, "kind", c.Kind)
		}
	})
}

// stop winds everything down and waits for the cooperative tasks to drain.
// Safe to call more than once.
func (w *watcher) stop() {
	for _, b := range w.bindings {
		b.Stop()
	}
	w.mainBtn.Deactivate()
	w.loop.Stop()
	w.loop.Wait()
}

// drained reports whether every preemptive binding has exited; stop does
// not block on them.
func (w *watcher) drained() bool {
	for _, b := range w.bindings {
		if b.Active() {
			return false
		}
	}
	return true
}

// waitDrained polls for the preemptive bindings to exit, up to limit.
func (w *watcher) waitDrained(limit time.Duration) bool {
	deadline := time.Now().Add(limit)
	for !w.drained() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}
