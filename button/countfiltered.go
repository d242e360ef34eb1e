package button

import (
	"time"

	"go.uber.org/zap"

	"dkeller.net/pinwatch/digital"
)

// CountFiltered debounces every query with the count filter: a state is
// only reported once threshold net samples agree on it. No state is kept
// between queries, so it tolerates arbitrary chatter at the cost of
// threshold reads per answer.
type CountFiltered struct {
	pin       digital.Pin
	pressed   digital.Signal
	released  digital.Signal
	threshold int
	interval  time.Duration
	sleep     digital.Sleeper
	logger    *zap.SugaredLogger
}

func NewCountFiltered(pin digital.Pin, pressed digital.Signal, threshold int,
	interval time.Duration, sleep digital.Sleeper, logger *zap.SugaredLogger) *CountFiltered {
	if threshold < 1 {
		logger.Warnf("count threshold %d below 1, using 1", threshold)
		threshold = 1
	}
	return &CountFiltered{
		pin:       pin,
		pressed:   pressed,
		released:  pressed.Inverse(),
		threshold: threshold,
		interval:  interval,
		sleep:     sleep,
		logger:    logger.Named("button"),
	}
}

// State samples threshold times; anything short of unanimity is Bouncing.
func (b *CountFiltered) State() State {
	hits := 0
	for i := 0; i < b.threshold; i++ {
		if b.pin.Read() == b.pressed {
			hits++
		}
		if i < b.threshold-1 {
			b.sleep.Sleep(b.interval)
		}
	}
	switch hits {
	case b.threshold:
		return Pressed
	case 0:
		return Released
	default:
		return Bouncing
	}
}

func (b *CountFiltered) IsPressed() bool {
	return digital.CountFiltering(b.pin, b.pressed, b.threshold, b.interval, b.sleep)
}

func (b *CountFiltered) IsReleased() bool {
	return digital.CountFiltering(b.pin, b.released, b.threshold, b.interval, b.sleep)
}

func (b *CountFiltered) IsToPressed() bool {
	return digital.IsChanged(b.pin, b.released, b.pressed, b.threshold, b.interval, b.sleep)
}

func (b *CountFiltered) IsToReleased() bool {
	return digital.IsChanged(b.pin, b.pressed, b.released, b.threshold, b.interval, b.sleep)
}

func (b *CountFiltered) IsStablyPressed() bool  { return b.IsPressed() }
func (b *CountFiltered) IsStablyReleased() bool { return b.IsReleased() }

func (b *CountFiltered) IsToStablyPressed() bool {
	return digital.IsChangedStably(b.pin, b.released, b.pressed, b.threshold, b.interval, b.sleep)
}

func (b *CountFiltered) IsToStablyReleased() bool {
	return digital.IsChangedStably(b.pin, b.pressed, b.released, b.threshold, b.interval, b.sleep)
}

func (b *CountFiltered) Interval() time.Duration { return b.interval }
