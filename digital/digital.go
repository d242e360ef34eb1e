// Package digital models a two-valued input line and the debounce
// filters that turn raw pin reads into stable verdicts.
package digital

import "time"

// Signal is an instantaneous line level.
type Signal int8

const (
	Low Signal = iota
	High
)

// Inverse returns the opposite line level.
func (s Signal) Inverse() Signal {
	if s == Low {
		return High
	}
	return Low
}

func (s Signal) String() string {
	if s == Low {
		return "LOW"
	}
	return "HIGH"
}

// Edge selects which line transitions an interrupt watch fires on.
type Edge int8

const (
	RisingEdge Edge = iota + 1
	FallingEdge
	BothEdges
)

func (e Edge) String() string {
	switch e {
	case RisingEdge:
		return "rising"
	case FallingEdge:
		return "falling"
	case BothEdges:
		return "both"
	}
	return "none"
}

// Pin is an instantaneous read of a digital input. No filtering.
type Pin interface {
	Read() Signal
}

// WatchablePin is a pin with an edge interrupt. Watch arms the interrupt
// with a callback that runs in interrupt context: it must be short and
// must not block. Unwatch disarms it; disarming an unarmed pin is a no-op.
type WatchablePin interface {
	Pin
	Watch(edge Edge, fn func()) error
	Unwatch() error
}

// Sleeper is how time passes inside the filters and detectors. A
// clockwork.Clock is a blocking Sleeper; a dispatch.Loop is a yielding
// one. Everything above this package is agnostic to which it gets.
type Sleeper interface {
	Sleep(d time.Duration)
}
