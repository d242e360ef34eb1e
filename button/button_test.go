package button

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"gotest.tools/assert"

	"dkeller.net/pinwatch/digital"
)

type noopSleeper struct{}

func (noopSleeper) Sleep(d time.Duration) {}

func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestImmediateToPressed(t *testing.T) {
	pin := digital.NewFakePin(digital.High)
	b := NewImmediate(pin, digital.Low, time.Millisecond, noopSleeper{}, nopLogger())

	assert.Equal(t, Released, b.State())
	assert.Equal(t, false, b.IsToPressed())

	// Released on the probe read, pressed on the confirm read.
	pin.Script(digital.High, digital.Low)
	assert.Equal(t, true, b.IsToPressed())
	assert.Equal(t, Pressed, b.State())
	assert.Equal(t, false, b.IsToPressed())
}

func TestImmediateToReleased(t *testing.T) {
	pin := digital.NewFakePin(digital.Low)
	b := NewImmediate(pin, digital.Low, time.Millisecond, noopSleeper{}, nopLogger())

	pin.Script(digital.Low, digital.High)
	assert.Equal(t, true, b.IsToReleased())
	assert.Equal(t, false, b.IsToReleased())
}

func TestCountFilteredState(t *testing.T) {
	pin := digital.NewFakePin(digital.High)
	b := NewCountFiltered(pin, digital.Low, 3, time.Millisecond, noopSleeper{}, nopLogger())

	assert.Equal(t, Released, b.State())

	pin.Set(digital.Low)
	assert.Equal(t, Pressed, b.State())

	// Mixed samples are not a state.
	pin.Script(digital.Low, digital.High, digital.Low)
	assert.Equal(t, Bouncing, b.State())
}

func TestCountFilteredToStablyPressed(t *testing.T) {
	pin := digital.NewFakePin(digital.High)
	b := NewCountFiltered(pin, digital.Low, 3, time.Millisecond, noopSleeper{}, nopLogger())

	// Clean transition: probe sees the old level once, then the new level
	// settles.
	pin.Script(digital.High, digital.Low)
	assert.Equal(t, true, b.IsToStablyPressed())

	// Resting pressed is not a transition.
	assert.Equal(t, false, b.IsToStablyPressed())
	assert.Equal(t, true, b.IsStablyPressed())
}

func TestCountFilteredRejectsChatter(t *testing.T) {
	pin := digital.NewFakePin(digital.High)
	b := NewCountFiltered(pin, digital.Low, 3, time.Millisecond, noopSleeper{}, nopLogger())

	pin.Script(digital.High, digital.Low, digital.High, digital.Low,
		digital.High, digital.Low, digital.High, digital.High)
	assert.Equal(t, false, b.IsToStablyPressed())
}

func TestCountFilteredClampsThreshold(t *testing.T) {
	pin := digital.NewFakePin(digital.Low)
	b := NewCountFiltered(pin, digital.Low, 0, time.Millisecond, noopSleeper{}, nopLogger())
	assert.Equal(t, true, b.IsPressed())
}

func TestStateCachedReportsOnce(t *testing.T) {
	pin := digital.NewFakePin(digital.High)
	b := NewStateCached(pin, digital.Low, time.Millisecond, noopSleeper{}, nopLogger())

	// First query resolves the unknown cache, no transition yet.
	assert.Equal(t, false, b.IsToPressed())

	pin.Set(digital.Low)
	assert.Equal(t, true, b.IsToPressed())
	// The cache now agrees with the pin, so no repeat.
	assert.Equal(t, false, b.IsToPressed())

	pin.Set(digital.High)
	assert.Equal(t, true, b.IsToReleased())
	assert.Equal(t, false, b.IsToReleased())
}

func TestStateCachedNoTransitionWhileSteady(t *testing.T) {
	pin := digital.NewFakePin(digital.Low)
	b := NewStateCached(pin, digital.Low, time.Millisecond, noopSleeper{}, nopLogger())

	assert.Equal(t, true, b.IsPressed())
	for i := 0; i < 5; i++ {
		assert.Equal(t, false, b.IsToPressed())
	}
}
