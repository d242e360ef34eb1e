package digital

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
	"go.uber.org/zap"
)

// OpenRPIO maps the BCM2835 GPIO registers. Call once before building
// RPIOPins; pair with CloseRPIO on shutdown.
func OpenRPIO() error {
	return errors.Wrap(rpio.Open(), "failed to open rpio")
}

func CloseRPIO() error {
	return errors.Wrap(rpio.Close(), "failed to close rpio")
}

// RPIOPin reads a GPIO line through go-rpio. The chip's edge detection is a
// latched status bit, not a callback, so Watch runs a poller goroutine that
// checks the latch and fires the handler from poller context.
type RPIOPin struct {
	pin    rpio.Pin
	clock  clockwork.Clock
	poll   time.Duration
	logger *zap.SugaredLogger

	mu      sync.Mutex
	quit    chan struct{}
	watcher func()
}

// NewRPIOPin configures the BCM pin as an input with the internal pull
// resistor matching the idle level (pull-up for an active-low button).
func NewRPIOPin(bcm int, pullUp bool, clock clockwork.Clock, logger *zap.SugaredLogger) *RPIOPin {
	pin := rpio.Pin(bcm)
	pin.Input()
	if pullUp {
		pin.PullUp()
	} else {
		pin.PullDown()
	}
	return &RPIOPin{
		pin:    pin,
		clock:  clock,
		poll:   2 * time.Millisecond,
		logger: logger.Named("rpio"),
	}
}

func (p *RPIOPin) Read() Signal {
	if p.pin.Read() == rpio.High {
		return High
	}
	return Low
}

func (p *RPIOPin) Watch(edge Edge, fn func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.quit != nil {
		return errors.New("pin watch already armed")
	}
	switch edge {
	case RisingEdge:
		p.pin.Detect(rpio.RiseEdge)
	case FallingEdge:
		p.pin.Detect(rpio.FallEdge)
	case BothEdges:
		p.pin.Detect(rpio.AnyEdge)
	default:
		return errors.Errorf("bad edge selector: %d", edge)
	}
	p.watcher = fn
	p.quit = make(chan struct{})
	go p.watch(p.quit)
	return nil
}

func (p *RPIOPin) watch(quit chan struct{}) {
	for {
		select {
		case <-quit:
			return
		case <-p.clock.After(p.poll):
		}
		if p.pin.EdgeDetected() {
			p.mu.Lock()
			fn := p.watcher
			p.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

func (p *RPIOPin) Unwatch() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.quit == nil {
		p.logger.Debug("unwatch on unarmed pin")
		return nil
	}
	p.pin.Detect(rpio.NoEdge)
	close(p.quit)
	p.quit = nil
	p.watcher = nil
	return nil
}
