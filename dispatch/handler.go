package dispatch

import "time"

// Context carries what a handler may know about the occurrence that
// triggered it.
type Context struct {
	// Source names the binding that fired, usually the button name.
	Source string
	// Kind is the detector kind, e.g. "press" or "longPress".
	Kind string
	// At is when the detector reported the occurrence.
	At time.Time
}

// Handler consumes detected occurrences. Handle runs on the binding's poll
// loop unless the handler is wrapped with Concurrent.
type Handler interface {
	Name() string
	Handle(Context)
}

type funcHandler struct {
	name string
	fn   func(Context)
}

func (h *funcHandler) Name() string     { return h.name }
func (h *funcHandler) Handle(c Context) { h.fn(c) }

// HandlerFunc adapts a bare function to the Handler interface.
func HandlerFunc(name string, fn func(Context)) Handler {
	return &funcHandler{name: name, fn: fn}
}

type concurrentHandler struct {
	Handler
}

// Concurrent marks a handler to run detached from the poll loop, so a slow
// handler cannot delay detection. Ordering across invocations is not
// preserved.
func Concurrent(h Handler) Handler {
	return &concurrentHandler{Handler: h}
}
