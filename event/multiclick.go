package event

import (
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"dkeller.net/pinwatch/digital"
)

// MultiClick fires when the button completes a run of full press/release
// cycles inside a window that opens at the first press. An attempt that
// runs out of window is discarded whole; partial progress never carries
// over to the next attempt.
type MultiClick struct {
	btn    Button
	times  int
	window time.Duration
	clock  clockwork.Clock
	sleep  digital.Sleeper
	valid  bool
}

// NewMultiClick with non-positive times or window yields a detector that
// warns once and never fires.
func NewMultiClick(btn Button, times int, window time.Duration, clock clockwork.Clock,
	sleep digital.Sleeper, logger *zap.SugaredLogger) *MultiClick {
	d := &MultiClick{
		btn:    btn,
		times:  times,
		window: window,
		clock:  clock,
		sleep:  sleep,
		valid:  times > 0 && window > 0,
	}
	if !d.valid {
		logger.Named("multiclick").Warnf("non-positive times %d or window %v, detector disabled",
			times, window)
	}
	return d
}

func (d *MultiClick) Poll() bool {
	if !d.valid {
		return false
	}
	if !d.btn.IsToStablyPressed() {
		return false
	}
	deadline := d.clock.Now().Add(d.window)
	if !d.await(d.btn.IsToStablyReleased, deadline) {
		return false
	}
	for clicks := 1; clicks < d.times; clicks++ {
		if !d.await(d.btn.IsToStablyPressed, deadline) {
			return false
		}
		if !d.await(d.btn.IsToStablyReleased, deadline) {
			return false
		}
	}
	return true
}

// await polls for the transition until it happens or the window closes.
func (d *MultiClick) await(transition func() bool, deadline time.Time) bool {
	for !transition() {
		if !d.clock.Now().Before(deadline) {
			return false
		}
		d.sleep.Sleep(d.btn.Interval())
	}
	return true
}

func (d *MultiClick) Kind() string { return "multiClick" }
