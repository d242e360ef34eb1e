package event

import (
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"dkeller.net/pinwatch/digital"
)

// LongPress fires when the button stays pressed for at least timeout. The
// release check comes before the deadline check on every tick, so a release
// landing on the deadline tick loses the press.
type LongPress struct {
	btn     Button
	timeout time.Duration
	clock   clockwork.Clock
	sleep   digital.Sleeper
	valid   bool
}

// NewLongPress with a non-positive timeout yields a detector that warns
// once and never fires; a broken config must not take the process down.
func NewLongPress(btn Button, timeout time.Duration, clock clockwork.Clock,
	sleep digital.Sleeper, logger *zap.SugaredLogger) *LongPress {
	d := &LongPress{
		btn:     btn,
		timeout: timeout,
		clock:   clock,
		sleep:   sleep,
		valid:   timeout > 0,
	}
	if !d.valid {
		logger.Named("longpress").Warnf("non-positive timeout %v, detector disabled", timeout)
	}
	return d
}

func (d *LongPress) Poll() bool {
	if !d.valid {
		return false
	}
	if !d.btn.IsToStablyPressed() {
		return false
	}
	deadline := d.clock.Now().Add(d.timeout)
	for {
		if !d.btn.IsStablyPressed() {
			return false
		}
		if !d.clock.Now().Before(deadline) {
			return true
		}
		d.sleep.Sleep(d.btn.Interval())
	}
}

func (d *LongPress) Kind() string { return "longPress" }
