// Package button turns a digital pin into a debounced button. Four
// implementations trade CPU, latency and noise immunity differently; all of
// them answer the same set of queries, so detectors do not care which one
// they poll.
package button

import "time"

// State is a button's position as far as debouncing can tell.
type State int8

const (
	Bouncing State = iota
	Released
	Pressed
)

func (s State) String() string {
	switch s {
	case Released:
		return "RELEASED"
	case Pressed:
		return "PRESSED"
	case Bouncing:
		return "BOUNCING"
	}
	return "UNKNOWN"
}

// Button is the query surface shared by all four implementations.
//
// The To queries are transition probes: true means "a transition into that
// state was just observed", and each observation is reported once. The
// Stably variants insist the far side of the transition survives debouncing
// before reporting it.
type Button interface {
	State() State
	IsPressed() bool
	IsReleased() bool
	IsToPressed() bool
	IsToReleased() bool

	IsStablyPressed() bool
	IsStablyReleased() bool
	IsToStablyPressed() bool
	IsToStablyReleased() bool

	// Interval is the natural polling period for loops watching this
	// button.
	Interval() time.Duration
}
