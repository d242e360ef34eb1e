package button

import (
	"time"

	"go.uber.org/zap"

	"dkeller.net/pinwatch/digital"
)

// Immediate trusts every raw read. Cheapest of the four; only suitable for
// inputs that are already clean (simulated pins, externally debounced
// hardware). A transition probe is a read, one interval of settling, and a
// second read.
type Immediate struct {
	pin      digital.Pin
	pressed  digital.Signal
	released digital.Signal
	interval time.Duration
	sleep    digital.Sleeper
	logger   *zap.SugaredLogger
}

func NewImmediate(pin digital.Pin, pressed digital.Signal, interval time.Duration,
	sleep digital.Sleeper, logger *zap.SugaredLogger) *Immediate {
	return &Immediate{
		pin:      pin,
		pressed:  pressed,
		released: pressed.Inverse(),
		interval: interval,
		sleep:    sleep,
		logger:   logger.Named("button"),
	}
}

func (b *Immediate) State() State {
	switch b.pin.Read() {
	case b.pressed:
		return Pressed
	default:
		return Released
	}
}

func (b *Immediate) IsPressed() bool  { return b.pin.Read() == b.pressed }
func (b *Immediate) IsReleased() bool { return b.pin.Read() == b.released }

func (b *Immediate) IsToPressed() bool {
	if !b.IsReleased() {
		return false
	}
	b.sleep.Sleep(b.interval)
	return b.IsPressed()
}

func (b *Immediate) IsToReleased() bool {
	if !b.IsPressed() {
		return false
	}
	b.sleep.Sleep(b.interval)
	return b.IsReleased()
}

// The raw read is all the stability this variant has.

func (b *Immediate) IsStablyPressed() bool    { return b.IsPressed() }
func (b *Immediate) IsStablyReleased() bool   { return b.IsReleased() }
func (b *Immediate) IsToStablyPressed() bool  { return b.IsToPressed() }
func (b *Immediate) IsToStablyReleased() bool { return b.IsToReleased() }

func (b *Immediate) Interval() time.Duration { return b.interval }
