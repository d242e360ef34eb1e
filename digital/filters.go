package digital

import "time"

// CountFiltering samples pin until it is confident the line sits at target
// or confident it does not. A signed counter gains one for every read that
// matches target and loses one for every read that does not; the verdict is
// "stable at target" when the counter hits +threshold and "not stable" when
// it hits -threshold. The counter never resets on a single opposite read, so
// sparse noise only delays the verdict. The sample budget is 2*threshold:
// input that keeps the counter oscillating near zero gets the "not stable"
// verdict when the budget runs out.
//
// A threshold below 1 degrades to a single unfiltered read.
func CountFiltering(pin Pin, target Signal, threshold int, interval time.Duration, sleep Sleeper) bool {
	if threshold < 1 {
		return pin.Read() == target
	}
	count := 0
	for sample := 0; sample < 2*threshold; sample++ {
		if pin.Read() == target {
			count++
		} else {
			count--
		}
		if count >= threshold {
			return true
		}
		if count <= -threshold {
			return false
		}
		sleep.Sleep(interval)
	}
	return false
}

// IsChanged is the cheap transition probe: false immediately when the pin is
// not at start, otherwise up to threshold polls waiting for it to reach end.
// A single read at end is enough; use IsChangedStably when the far side must
// be debounced too.
func IsChanged(pin Pin, start, end Signal, threshold int, interval time.Duration, sleep Sleeper) bool {
	if pin.Read() != start {
		return false
	}
	if threshold < 1 {
		threshold = 1
	}
	for poll := 0; poll < threshold; poll++ {
		if pin.Read() == end {
			return true
		}
		sleep.Sleep(interval)
	}
	return false
}

// IsChangedStably is the clean-transition primitive: the pin must be
// observed leaving start, and the new level must then survive count
// filtering at end. At most one true per genuine level change, since a pin
// resting at end no longer satisfies the probe.
func IsChangedStably(pin Pin, start, end Signal, threshold int, interval time.Duration, sleep Sleeper) bool {
	if !IsChanged(pin, start, end, threshold, interval, sleep) {
		return false
	}
	return CountFiltering(pin, end, threshold, interval, sleep)
}
