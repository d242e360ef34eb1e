package button

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"dkeller.net/pinwatch/digital"
	"dkeller.net/pinwatch/dispatch"
)

// InterruptDriven keeps a debounced state current without any polling by
// the caller. An edge interrupt marks the button Bouncing and pokes an
// agent task; the agent restarts a one-shot silence timer anchored at the
// last edge; when the line has been quiet for the debounce interval the
// timer samples once and commits. Queries are then flag reads, never pin
// reads.
//
// Writer discipline: the ISR writes state and the edge bookkeeping, the
// timer callback writes state and everything else. The caller only ever
// consumes flags through atomic read-and-clear.
type InterruptDriven struct {
	pin      digital.WatchablePin
	pressed  digital.Signal
	released digital.Signal
	debounce time.Duration
	agentDly time.Duration
	loop     *dispatch.Loop
	clock    clockwork.Clock
	logger   *zap.SugaredLogger

	irq      atomic.Bool
	lastEdge atomic.Int64 // UnixNano of the most recent edge

	state      atomic.Int32
	toPressed  atomic.Bool
	toReleased atomic.Bool

	// Agent/timer context only.
	lastStable State
	pressStart time.Time

	lastPressDur atomic.Int64

	timer      *dispatch.OneShot
	clearPress *dispatch.OneShot
	clearRel   *dispatch.OneShot
	agentOn    atomic.Bool
	active     bool
}

// NewInterruptDriven builds the button inactive; call Activate to arm it.
// debounce is the silence interval; the agent wakes every agentDelay to
// service interrupt flags.
func NewInterruptDriven(pin digital.WatchablePin, pressed digital.Signal,
	debounce, agentDelay time.Duration, loop *dispatch.Loop,
	clock clockwork.Clock, logger *zap.SugaredLogger) *InterruptDriven {
	b := &InterruptDriven{
		pin:        pin,
		pressed:    pressed,
		released:   pressed.Inverse(),
		debounce:   debounce,
		agentDly:   agentDelay,
		loop:       loop,
		clock:      clock,
		logger:     logger.Named("button"),
		lastStable: Released,
	}
	b.state.Store(int32(Released))
	return b
}

// Activate arms the edge interrupt and starts the agent task. Activating an
// active button is a no-op with a warning.
func (b *InterruptDriven) Activate() error {
	if b.active {
		b.logger.Warn("activate on active button")
		return nil
	}
	b.timer = dispatch.NewOneShot(b.loop, b.debounce, "debounce", b.debounced)
	b.clearPress = dispatch.NewOneShot(b.loop, 2*b.debounce, "clear-to-pressed", func() {
		b.toPressed.Store(false)
	})
	b.clearRel = dispatch.NewOneShot(b.loop, 2*b.debounce, "clear-to-released", func() {
		b.toReleased.Store(false)
	})
	if err := b.pin.Watch(digital.BothEdges, b.isr); err != nil {
		return err
	}
	b.agentOn.Store(true)
	b.loop.Go("irq-agent", b.agent)
	b.active = true
	return nil
}

// Deactivate disarms the interrupt first so no new edges arrive, then
// winds down the agent and timers. Idempotent.
func (b *InterruptDriven) Deactivate() {
	if !b.active {
		b.logger.Debug("deactivate on inactive button")
		return
	}
	if err := b.pin.Unwatch(); err != nil {
		b.logger.Warnf("failed to disarm pin watch: %v", err)
	}
	b.agentOn.Store(false)
	b.timer.Stop()
	b.clearPress.Stop()
	b.clearRel.Stop()
	b.active = false
}

// isr runs in interrupt context: record the edge, mark the state unknown,
// flag the agent. Nothing here may block.
func (b *InterruptDriven) isr() {
	b.lastEdge.Store(b.clock.Now().UnixNano())
	b.state.Store(int32(Bouncing))
	b.irq.Store(true)
}

// agent services interrupt flags. The debounce deadline is anchored at the
// last edge, not at the wakeup that noticed it, so agent latency does not
// stretch the silence window.
func (b *InterruptDriven) agent() {
	for b.agentOn.Load() && !b.loop.Stopped() {
		if b.irq.CompareAndSwap(true, false) {
			edge := time.Unix(0, b.lastEdge.Load())
			remaining := b.debounce - b.clock.Now().Sub(edge)
			if remaining < 0 {
				remaining = 0
			}
			b.timer.RestartIn(remaining)
		}
		b.loop.Sleep(b.agentDly)
	}
}

// debounced runs when the line has been silent for the debounce interval:
// sample once and commit. A sample matching neither polarity means the
// button is misconfigured; stay Bouncing, rearm, complain.
func (b *InterruptDriven) debounced() {
	var s State
	switch b.pin.Read() {
	case b.pressed:
		s = Pressed
	case b.released:
		s = Released
	default:
		s = Bouncing
	}
	if s == Bouncing {
		b.logger.Warn("ambiguous sample after debounce, rearming")
		b.timer.Restart()
		return
	}
	b.state.Store(int32(s))
	if s == b.lastStable {
		return
	}
	b.lastStable = s
	now := b.clock.Now()
	if s == Pressed {
		b.pressStart = now
		b.toPressed.Store(true)
		b.clearPress.Restart()
	} else {
		if !b.pressStart.IsZero() {
			b.lastPressDur.Store(int64(now.Sub(b.pressStart)))
		}
		b.toReleased.Store(true)
		b.clearRel.Restart()
	}
	b.logger.Debugf("committed %v", s)
}

func (b *InterruptDriven) State() State {
	return State(b.state.Load())
}

func (b *InterruptDriven) IsPressed() bool  { return b.State() == Pressed }
func (b *InterruptDriven) IsReleased() bool { return b.State() == Released }

// IsToPressed consumes the to-pressed flag: at most one true per committed
// press, no matter how many callers poll.
func (b *InterruptDriven) IsToPressed() bool {
	return b.toPressed.CompareAndSwap(true, false)
}

func (b *InterruptDriven) IsToReleased() bool {
	return b.toReleased.CompareAndSwap(true, false)
}

// State is already debounced when committed, so the stable queries are the
// plain ones.

func (b *InterruptDriven) IsStablyPressed() bool    { return b.IsPressed() }
func (b *InterruptDriven) IsStablyReleased() bool   { return b.IsReleased() }
func (b *InterruptDriven) IsToStablyPressed() bool  { return b.IsToPressed() }
func (b *InterruptDriven) IsToStablyReleased() bool { return b.IsToReleased() }

func (b *InterruptDriven) Interval() time.Duration { return b.agentDly }

// LastPressDuration is how long the most recent completed press was held,
// zero before the first full press/release cycle.
func (b *InterruptDriven) LastPressDuration() time.Duration {
	return time.Duration(b.lastPressDur.Load())
}
