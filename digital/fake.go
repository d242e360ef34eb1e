package digital

import "sync"

// FakePin is an in-memory pin for tests and sim mode. Reads come from a
// scripted queue when one is loaded, falling back to the resting level.
// Trigger injects a hardware edge into whatever watch is armed.
type FakePin struct {
	mu      sync.Mutex
	level   Signal
	script  []Signal
	reads   int
	edge    Edge
	watcher func()
}

func NewFakePin(level Signal) *FakePin {
	return &FakePin{level: level}
}

func (p *FakePin) Read() Signal {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reads++
	if len(p.script) > 0 {
		s := p.script[0]
		p.script = p.script[1:]
		p.level = s
		return s
	}
	return p.level
}

// Set changes the resting level without firing a watch.
func (p *FakePin) Set(level Signal) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

// Script queues levels returned by the next Reads, ahead of the resting
// level. The last scripted level becomes the new resting level.
func (p *FakePin) Script(levels ...Signal) {
	p.mu.Lock()
	p.script = append(p.script, levels...)
	p.mu.Unlock()
}

// Reads reports how many times the pin has been sampled.
func (p *FakePin) Reads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reads
}

func (p *FakePin) Watch(edge Edge, fn func()) error {
	p.mu.Lock()
	p.edge = edge
	p.watcher = fn
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Unwatch() error {
	p.mu.Lock()
	p.edge = 0
	p.watcher = nil
	p.mu.Unlock()
	return nil
}

// Trigger simulates a hardware edge of the given direction, invoking the
// armed watcher on the caller's goroutine the way an ISR would.
func (p *FakePin) Trigger(edge Edge) {
	p.mu.Lock()
	fn := p.watcher
	armed := p.edge
	p.mu.Unlock()
	if fn == nil {
		return
	}
	if armed == BothEdges || armed == edge {
		fn()
	}
}
