// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"github.com/gogama/typicode/request"
)

// A HandlerGroup holds one handler chain per Event and is installed in
// a Client through its Handlers field.
//
// When an event fires the Client calls the handlers of that event in
// the order they were pushed, on the goroutine running the request.
// Handlers may read the execution and may store values in it with
// SetValue for later events of the same execution to pick up.
//
// Build the group before installing it in a Client; it is not safe to
// add handlers while requests are running. One group may be shared by
// several clients.
type HandlerGroup struct {
	handlers [numEvents][]Handler
}

// PushBack adds h to the back of the chain for evt. It panics if h is
// nil or evt is not one of the events returned by Events.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("typicode: nil handler")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic("typicode: unknown event")
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

// Len returns the number of handlers installed for evt.
func (g *HandlerGroup) Len(evt Event) int {
	return len(g.handlers[evt])
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	for _, h := range g.handlers[evt] {
		h.Handle(evt, e)
	}
}

// A Handler reacts to an event during a plan execution.
//
// Handlers run synchronously inside the attempt loop, so a slow handler
// slows the request down. Event-specific guarantees, such as which
// execution fields are set, are documented on each Event.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with the right
// signature, HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
