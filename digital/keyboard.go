package digital

import (
	"sync"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Keyboard simulates pins with termbox key toggles: each mapped key flips
// its pin between the idle level and its inverse, firing any armed watch on
// the flip. Lets the whole stack run on a dev box with no GPIO.
type Keyboard struct {
	logger *zap.SugaredLogger

	mu   sync.Mutex
	pins map[rune]*KeyPin
	done chan struct{}
}

func NewKeyboard(logger *zap.SugaredLogger) (*Keyboard, error) {
	if err := termbox.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to init termbox")
	}
	termbox.SetInputMode(termbox.InputEsc)
	kb := &Keyboard{
		logger: logger.Named("keyboard"),
		pins:   make(map[rune]*KeyPin),
		done:   make(chan struct{}),
	}
	go kb.poll()
	return kb, nil
}

// Pin maps a key to a simulated pin resting at idle. Repeated calls for the
// same key return the same pin.
func (kb *Keyboard) Pin(key rune, idle Signal) *KeyPin {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if p, ok := kb.pins[key]; ok {
		return p
	}
	p := &KeyPin{level: idle}
	kb.pins[key] = p
	return p
}

func (kb *Keyboard) poll() {
	defer close(kb.done)
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			kb.mu.Lock()
			p := kb.pins[ev.Ch]
			kb.mu.Unlock()
			if p != nil {
				p.toggle()
			} else {
				kb.logger.Debugf("unmapped key: %c", ev.Ch)
			}
		case termbox.EventInterrupt:
			return
		case termbox.EventError:
			kb.logger.Warnf("termbox error: %v", ev.Err)
			return
		}
	}
}

func (kb *Keyboard) Close() {
	termbox.Interrupt()
	<-kb.done
	termbox.Close()
}

// KeyPin is a single keyboard-backed pin.
type KeyPin struct {
	mu      sync.Mutex
	level   Signal
	edge    Edge
	watcher func()
}

func (p *KeyPin) Read() Signal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *KeyPin) Watch(edge Edge, fn func()) error {
	p.mu.Lock()
	p.edge = edge
	p.watcher = fn
	p.mu.Unlock()
	return nil
}

func (p *KeyPin) Unwatch() error {
	p.mu.Lock()
	p.edge = 0
	p.watcher = nil
	p.mu.Unlock()
	return nil
}

func (p *KeyPin) toggle() {
	p.mu.Lock()
	p.level = p.level.Inverse()
	edge := FallingEdge
	if p.level == High {
		edge = RisingEdge
	}
	fn := p.watcher
	armed := p.edge
	p.mu.Unlock()
	if fn != nil && (armed == BothEdges || armed == edge) {
		fn()
	}
}
