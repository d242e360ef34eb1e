package button

import (
	"time"

	"go.uber.org/zap"

	"dkeller.net/pinwatch/digital"
)

// StateCached remembers the last observed state and reports a transition
// only when a fresh sample disagrees with the cache. One read per query in
// the common case; meant for callers that poll frequently enough that the
// cache tracks reality.
//
// Not safe for concurrent use: the cache has a single writer by contract.
type StateCached struct {
	pin      digital.Pin
	pressed  digital.Signal
	released digital.Signal
	interval time.Duration
	sleep    digital.Sleeper
	logger   *zap.SugaredLogger

	last State
}

func NewStateCached(pin digital.Pin, pressed digital.Signal, interval time.Duration,
	sleep digital.Sleeper, logger *zap.SugaredLogger) *StateCached {
	return &StateCached{
		pin:      pin,
		pressed:  pressed,
		released: pressed.Inverse(),
		interval: interval,
		sleep:    sleep,
		logger:   logger.Named("button"),
		last:     Bouncing,
	}
}

// State samples the pin and refreshes the cache.
func (b *StateCached) State() State {
	switch b.pin.Read() {
	case b.pressed:
		b.last = Pressed
	default:
		b.last = Released
	}
	return b.last
}

func (b *StateCached) IsPressed() bool  { return b.State() == Pressed }
func (b *StateCached) IsReleased() bool { return b.State() == Released }

func (b *StateCached) IsToPressed() bool {
	if b.last == Bouncing {
		b.State()
	}
	if b.last != Released {
		return false
	}
	b.sleep.Sleep(b.interval)
	return b.State() == Pressed
}

func (b *StateCached) IsToReleased() bool {
	if b.last == Bouncing {
		b.State()
	}
	if b.last != Pressed {
		return false
	}
	b.sleep.Sleep(b.interval)
	return b.State() == Released
}

func (b *StateCached) IsStablyPressed() bool    { return b.IsPressed() }
func (b *StateCached) IsStablyReleased() bool   { return b.IsReleased() }
func (b *StateCached) IsToStablyPressed() bool  { return b.IsToPressed() }
func (b *StateCached) IsToStablyReleased() bool { return b.IsToReleased() }

func (b *StateCached) Interval() time.Duration { return b.interval }
