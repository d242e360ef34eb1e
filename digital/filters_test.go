package digital

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

// countSleeper records sleeps without blocking; filter tests care about
// sample counts, not wall time.
type countSleeper struct {
	sleeps int
}

func (s *countSleeper) Sleep(d time.Duration) {
	s.sleeps++
}

// togglePin alternates every read, the worst case for count filtering.
type togglePin struct {
	level Signal
	reads int
}

func (p *togglePin) Read() Signal {
	p.reads++
	p.level = p.level.Inverse()
	return p.level
}

func TestCountFilteringStable(t *testing.T) {
	pin := NewFakePin(High)
	sl := &countSleeper{}
	assert.Equal(t, true, CountFiltering(pin, High, 5, time.Millisecond, sl))
	assert.Equal(t, 5, pin.Reads())
}

func TestCountFilteringOpposite(t *testing.T) {
	pin := NewFakePin(Low)
	sl := &countSleeper{}
	assert.Equal(t, false, CountFiltering(pin, High, 5, time.Millisecond, sl))
	assert.Equal(t, 5, pin.Reads())
}

func TestCountFilteringSparseNoise(t *testing.T) {
	// One opposite sample costs two reads, it does not reset the count.
	pin := NewFakePin(High)
	pin.Script(High, High, Low, High, High, High)
	sl := &countSleeper{}
	assert.Equal(t, true, CountFiltering(pin, High, 4, time.Millisecond, sl))
	assert.Equal(t, 6, pin.Reads())
}

func TestCountFilteringBoundedByBudget(t *testing.T) {
	pin := &togglePin{}
	sl := &countSleeper{}
	assert.Equal(t, false, CountFiltering(pin, High, 8, time.Millisecond, sl))
	assert.Assert(t, pin.reads <= 16)
}

func TestCountFilteringDegenerateThreshold(t *testing.T) {
	pin := NewFakePin(High)
	sl := &countSleeper{}
	assert.Equal(t, true, CountFiltering(pin, High, 0, time.Millisecond, sl))
	assert.Equal(t, 1, pin.Reads())
	assert.Equal(t, 0, sl.sleeps)
}

func TestIsChangedNotAtStart(t *testing.T) {
	pin := NewFakePin(Low)
	sl := &countSleeper{}
	assert.Equal(t, false, IsChanged(pin, High, Low, 5, time.Millisecond, sl))
	assert.Equal(t, 1, pin.Reads())
	assert.Equal(t, 0, sl.sleeps)
}

func TestIsChangedWithinBudget(t *testing.T) {
	pin := NewFakePin(High)
	pin.Script(High, High, High, Low)
	sl := &countSleeper{}
	assert.Equal(t, true, IsChanged(pin, High, Low, 5, time.Millisecond, sl))
}

func TestIsChangedBudgetExhausted(t *testing.T) {
	pin := NewFakePin(High)
	sl := &countSleeper{}
	assert.Equal(t, false, IsChanged(pin, High, Low, 5, time.Millisecond, sl))
	// One probe read plus threshold polls.
	assert.Equal(t, 6, pin.Reads())
}

func TestIsChangedStablyCleanTransition(t *testing.T) {
	pin := NewFakePin(High)
	pin.Script(High, Low) // probe sees start, then the new level; rest settles Low
	sl := &countSleeper{}
	assert.Equal(t, true, IsChangedStably(pin, High, Low, 3, time.Millisecond, sl))

	// Resting at the far side must not report again.
	assert.Equal(t, false, IsChangedStably(pin, High, Low, 3, time.Millisecond, sl))
}

func TestIsChangedStablyRejectsChatter(t *testing.T) {
	pin := NewFakePin(High)
	pin.Script(High, Low, High, Low, High, Low, High, Low, High)
	sl := &countSleeper{}
	assert.Equal(t, false, IsChangedStably(pin, High, Low, 3, time.Millisecond, sl))
}
