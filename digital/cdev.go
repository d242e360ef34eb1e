//go:build linux

package digital

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"
	"go.uber.org/zap"
)

// CdevPin reads a GPIO line through the Linux character device. Unlike the
// rpio backend the kernel delivers real edge events, so Watch re-requests
// the line with an event handler instead of polling.
type CdevPin struct {
	chip   string
	offset int
	pullUp bool
	logger *zap.SugaredLogger

	mu      sync.Mutex
	line    *gpiocdev.Line
	watcher func()
	last    Signal
}

func NewCdevPin(chip string, offset int, pullUp bool, logger *zap.SugaredLogger) (*CdevPin, error) {
	p := &CdevPin{
		chip:   chip,
		offset: offset,
		pullUp: pullUp,
		logger: logger.Named("cdev"),
	}
	if err := p.request(nil, 0); err != nil {
		return nil, err
	}
	if p.pullUp {
		p.last = High
	}
	return p, nil
}

func (p *CdevPin) request(fn func(), edge Edge) error {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	if p.pullUp {
		opts = append(opts, gpiocdev.WithPullUp)
	} else {
		opts = append(opts, gpiocdev.WithPullDown)
	}
	if fn != nil {
		handler := func(evt gpiocdev.LineEvent) {
			p.mu.Lock()
			switch evt.Type {
			case gpiocdev.LineEventRisingEdge:
				p.last = High
			case gpiocdev.LineEventFallingEdge:
				p.last = Low
			}
			cb := p.watcher
			p.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
		opts = append(opts, gpiocdev.WithEventHandler(handler))
		switch edge {
		case RisingEdge:
			opts = append(opts, gpiocdev.WithRisingEdge)
		case FallingEdge:
			opts = append(opts, gpiocdev.WithFallingEdge)
		case BothEdges:
			opts = append(opts, gpiocdev.WithBothEdges)
		default:
			return errors.Errorf("bad edge selector: %d", edge)
		}
	}
	line, err := gpiocdev.RequestLine(p.chip, p.offset, opts...)
	if err != nil {
		return errors.Wrapf(err, "failed to request %s line %d", p.chip, p.offset)
	}
	p.line = line
	return nil
}

func (p *CdevPin) Read() Signal {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, err := p.line.Value()
	if err != nil {
		// Line read failures are transient on this driver; report the
		// last known level rather than inventing an edge.
		p.logger.Warnf("line %d read failed: %v", p.offset, err)
		return p.last
	}
	if v != 0 {
		p.last = High
	} else {
		p.last = Low
	}
	return p.last
}

func (p *CdevPin) Watch(edge Edge, fn func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watcher != nil {
		return errors.New("pin watch already armed")
	}
	if err := p.line.Close(); err != nil {
		return errors.Wrap(err, "failed to release line for rearm")
	}
	p.watcher = fn
	if err := p.request(fn, edge); err != nil {
		p.watcher = nil
		return err
	}
	return nil
}

func (p *CdevPin) Unwatch() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watcher == nil {
		p.logger.Debugf("unwatch on unarmed line %d", p.offset)
		return nil
	}
	p.watcher = nil
	if err := p.line.Close(); err != nil {
		return errors.Wrap(err, "failed to release watched line")
	}
	return p.request(nil, 0)
}

func (p *CdevPin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watcher = nil
	return errors.Wrap(p.line.Close(), "failed to close line")
}
