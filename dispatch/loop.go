// Package dispatch connects event detectors to handlers and runs the poll
// loops, either as dedicated goroutines or as cooperative tasks on a Loop.
package dispatch

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Loop is a cooperative single-threaded executor. Exactly one task runs at
// a time: tasks are goroutines serialized by a run token, and the only
// points where a task gives the token up are Sleep and Yield. Code between
// suspension points therefore never races with another task, the property
// interrupt-driven buttons rely on when their timer callbacks and agent
// share state.
type Loop struct {
	clock  clockwork.Clock
	logger *zap.SugaredLogger

	token   chan struct{}
	quit    chan struct{}
	wg      sync.WaitGroup
	stopped atomic.Bool
}

func NewLoop(clock clockwork.Clock, logger *zap.SugaredLogger) *Loop {
	l := &Loop{
		clock:  clock,
		logger: logger.Named("loop"),
		token:  make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
	l.token <- struct{}{}
	return l
}

// Go schedules fn as a task. It starts once the token frees up and runs to
// completion, pausing only at its own Sleep/Yield calls. Task panics are
// contained and logged; the loop keeps running.
func (l *Loop) Go(name string, fn func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		select {
		case <-l.token:
		case <-l.quit:
			return
		}
		defer l.release()
		defer func() {
			if r := recover(); r != nil {
				l.logger.Errorf("task %s panicked: %v", name, r)
			}
		}()
		fn()
	}()
}

// Sleep suspends the calling task for d, letting other tasks run. Only call
// it from inside a task. After Stop it returns immediately.
func (l *Loop) Sleep(d time.Duration) {
	l.release()
	select {
	case <-l.clock.After(d):
	case <-l.quit:
	}
	l.acquire()
}

// Yield gives other runnable tasks a turn without a time delay.
func (l *Loop) Yield() {
	l.Sleep(0)
}

// sleepInterruptible is Sleep with an extra wake channel; reports whether
// the full duration elapsed.
func (l *Loop) sleepInterruptible(d time.Duration, wake <-chan struct{}) bool {
	l.release()
	full := false
	select {
	case <-l.clock.After(d):
		full = true
	case <-wake:
	case <-l.quit:
	}
	l.acquire()
	return full && !l.Stopped()
}

func (l *Loop) acquire() {
	select {
	case <-l.token:
	case <-l.quit:
	}
}

func (l *Loop) release() {
	select {
	case l.token <- struct{}{}:
	default:
	}
}

// Stop wakes every sleeping task so it can observe shutdown and exit.
// Idempotent. Serialization is no longer guaranteed for the final
// iterations; tasks must only exit on wake after Stop.
func (l *Loop) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.quit)
	}
}

func (l *Loop) Stopped() bool {
	return l.stopped.Load()
}

// Wait blocks until every scheduled task has returned.
func (l *Loop) Wait() {
	l.wg.Wait()
}
