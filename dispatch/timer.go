package dispatch

import (
	"sync"
	"time"
)

// OneShot is a restartable one-shot timer scheduled as a Loop task. Restart
// abandons any pending expiry and arms a fresh one; only the most recent
// arm ever fires. The callback runs as a task, so it holds the run token.
type OneShot struct {
	loop *Loop
	d    time.Duration
	name string
	fn   func()

	mu     sync.Mutex
	cancel chan struct{}
}

func NewOneShot(loop *Loop, d time.Duration, name string, fn func()) *OneShot {
	return &OneShot{loop: loop, d: d, name: name, fn: fn}
}

// Restart arms the timer for its configured duration.
func (t *OneShot) Restart() {
	t.RestartIn(t.d)
}

// RestartIn arms the timer for an explicit duration, superseding any
// pending expiry. Used when the deadline is anchored to an earlier instant
// than the call.
func (t *OneShot) RestartIn(d time.Duration) {
	t.mu.Lock()
	if t.cancel != nil {
		close(t.cancel)
	}
	c := make(chan struct{})
	t.cancel = c
	t.mu.Unlock()

	t.loop.Go(t.name, func() {
		if !t.loop.sleepInterruptible(d, c) {
			return
		}
		t.mu.Lock()
		live := t.cancel == c
		if live {
			t.cancel = nil
		}
		t.mu.Unlock()
		if live {
			t.fn()
		}
	})
}

// Stop abandons any pending expiry. Safe to call whether or not the timer
// is armed, from any goroutine.
func (t *OneShot) Stop() {
	t.mu.Lock()
	if t.cancel != nil {
		close(t.cancel)
		t.cancel = nil
	}
	t.mu.Unlock()
}
