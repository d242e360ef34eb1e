package dispatch

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"dkeller.net/pinwatch/digital"
)

// Detector is what a binding polls. Poll reports true exactly once per
// detected occurrence; Kind names the occurrence for the handler context.
type Detector interface {
	Poll() bool
	Kind() string
}

// Binding ties one detector to one handler and owns the poll loop between
// them. The same binding runs under either regime: StartThread gives it a
// goroutine with blocking sleeps, StartTask schedules it on a cooperative
// Loop with yielding sleeps.
type Binding struct {
	source  string
	det     Detector
	handler Handler
	period  time.Duration
	clock   clockwork.Clock
	logger  *zap.SugaredLogger

	enabled atomic.Bool
	active  atomic.Bool
}

func NewBinding(source string, det Detector, h Handler, period time.Duration,
	clock clockwork.Clock, logger *zap.SugaredLogger) *Binding {
	return &Binding{
		source:  source,
		det:     det,
		handler: h,
		period:  period,
		clock:   clock,
		logger:  logger.Named("binding").With("source", source, "kind", det.Kind()),
	}
}

// StartThread runs the poll loop on its own goroutine.
func (b *Binding) StartThread() {
	if !b.enabled.CompareAndSwap(false, true) {
		b.logger.Warn("already started")
		return
	}
	b.active.Store(true)
	go b.run(b.clock, func() bool { return false })
}

// StartTask schedules the poll loop as a task on loop. Detectors polled
// under this regime must have been built with the loop as their sleeper,
// otherwise their waits would stall the whole loop.
func (b *Binding) StartTask(loop *Loop) {
	if !b.enabled.CompareAndSwap(false, true) {
		b.logger.Warn("already started")
		return
	}
	b.active.Store(true)
	loop.Go(b.source+"/"+b.det.Kind(), func() {
		b.run(loop, loop.Stopped)
	})
}

// Stop requests the poll loop to exit. It does not wait: the loop observes
// the flag at the top of its next iteration. Stopping twice is the same as
// stopping once.
func (b *Binding) Stop() {
	if !b.enabled.CompareAndSwap(true, false) {
		b.logger.Debug("already stopped")
		return
	}
	b.logger.Info("stopping")
}

// Active reports whether the poll loop is still running; callers that need
// a synchronous shutdown poll this after Stop.
func (b *Binding) Active() bool {
	return b.active.Load()
}

func (b *Binding) run(sleep digital.Sleeper, halted func() bool) {
	defer b.active.Store(false)
	b.logger.Info("watching")
	for b.enabled.Load() && !halted() {
		if b.det.Poll() {
			b.dispatch(Context{Source: b.source, Kind: b.det.Kind(), At: b.clock.Now()})
		}
		sleep.Sleep(b.period)
	}
	b.logger.Info("stopped")
}

func (b *Binding) dispatch(ctx Context) {
	if _, ok := b.handler.(*concurrentHandler); ok {
		go b.invoke(ctx)
		return
	}
	b.invoke(ctx)
}

// invoke is the isolation boundary: a misbehaving handler is logged and
// dropped, never allowed to take the poll loop down with it.
func (b *Binding) invoke(ctx Context) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf("handler %s panicked: %v", b.handler.Name(), r)
		}
	}()
	b.handler.Handle(ctx)
}
