// Package event detects higher-level gestures on a debounced button:
// presses, releases, long presses and multi-clicks. A detector's Poll
// reports true exactly once per occurrence; the dispatch package owns the
// loop that keeps calling it.
package event

import "time"

// Button is the slice of the button surface the detectors need.
type Button interface {
	IsStablyPressed() bool
	IsStablyReleased() bool
	IsToStablyPressed() bool
	IsToStablyReleased() bool
	Interval() time.Duration
}

// Press fires once per clean press.
type Press struct {
	btn Button
}

func NewPress(btn Button) *Press {
	return &Press{btn: btn}
}

func (d *Press) Poll() bool {
	return d.btn.IsToStablyPressed()
}

func (d *Press) Kind() string { return "press" }

// Release fires once per clean release.
type Release struct {
	btn Button
}

func NewRelease(btn Button) *Release {
	return &Release{btn: btn}
}

func (d *Release) Poll() bool {
	return d.btn.IsToStablyReleased()
}

func (d *Release) Kind() string { return "release" }
