package main

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gotest.tools/assert"

	"dkeller.net/pinwatch/digital"
)

// testRuntime shrinks every window so the smoke tests run in tens of
// milliseconds of real time.
func testRuntime() runtimeConfig {
	settings := defaultSettings()
	settings.settings["sleepTime"] = time.Millisecond
	settings.settings["filterInterval"] = 100 * time.Microsecond
	settings.settings["filterThreshold"] = 2
	settings.settings["debounceTime"] = 5 * time.Millisecond
	settings.settings["agentTime"] = time.Millisecond
	settings.settings["longPressTime"] = 20 * time.Millisecond
	settings.settings["multiClickWindow"] = 3 * time.Second
	return initRuntime(settings, clockwork.NewRealClock(), zap.NewNop().Sugar())
}

func testPins() map[string]digital.WatchablePin {
	// Pullup wiring: idle high, pressed low.
	return map[string]digital.WatchablePin{
		sMainBtn: digital.NewFakePin(digital.High),
		sLongBtn: digital.NewFakePin(digital.High),
		sDblBtn:  digital.NewFakePin(digital.High),
	}
}

func expectEffect(t *testing.T, rt runtimeConfig, source, kind string) {
	select {
	case e := <-rt.comms.effects:
		assert.Equal(t, source, e.source)
		assert.Equal(t, kind, e.kind)
	case <-time.After(5 * time.Second):
		t.Fatalf("no %s effect from %s", kind, source)
	}
}

func TestWatcherMainButtonPress(t *testing.T) {
	rt := testRuntime()
	pins := testPins()
	w, err := startWatchButtons(rt, pins)
	assert.NilError(t, err)
	defer w.stop()

	main := pins[sMainBtn].(*digital.FakePin)
	main.Set(digital.Low)
	main.Trigger(digital.FallingEdge)

	expectEffect(t, rt, sMainBtn, "press")
}

func TestWatcherLongPress(t *testing.T) {
	rt := testRuntime()
	pins := testPins()
	w, err := startWatchButtons(rt, pins)
	assert.NilError(t, err)
	defer w.stop()

	// The scripted pair guarantees some probe observes idle-then-pressed,
	// whenever it lands; the pin then rests pressed past the hold window.
	long := pins[sLongBtn].(*digital.FakePin)
	long.Script(digital.High, digital.Low)

	expectEffect(t, rt, sLongBtn, "longPress")
}

func TestWatcherDoubleClick(t *testing.T) {
	rt := testRuntime()
	pins := testPins()
	w, err := startWatchButtons(rt, pins)
	assert.NilError(t, err)
	defer w.stop()

	dbl := pins[sDblBtn].(*digital.FakePin)
	gap := 30 * time.Millisecond
	dbl.Script(digital.High, digital.Low) // first press
	time.Sleep(gap)
	dbl.Script(digital.Low, digital.High) // first release
	time.Sleep(gap)
	dbl.Script(digital.High, digital.Low) // second press
	time.Sleep(gap)
	dbl.Script(digital.Low, digital.High) // second release

	expectEffect(t, rt, sDblBtn, "multiClick")
}

func TestWatcherStopTwice(t *testing.T) {
	rt := testRuntime()
	w, err := startWatchButtons(rt, testPins())
	assert.NilError(t, err)

	w.stop()
	assert.Equal(t, true, w.waitDrained(5*time.Second))
	w.stop()
	assert.Equal(t, true, w.drained())
}
