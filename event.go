// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

// An Event names a point in a plan execution where the Client calls
// the handlers installed for it.
//
// Events sit below interceptors: a request interceptor runs once per
// Client.Request, while BeforeAttempt fires on every attempt, retries
// included.
type Event int

const (
	// BeforeExecutionStart fires before the execution starts. Only the
	// execution's Plan is set.
	BeforeExecutionStart Event = iota
	// BeforeAttempt fires before each attempt. The execution's Request
	// is the request about to be sent, and handlers may change it.
	// Its URL and Header are shared with the plan, so clone them before
	// modifying.
	BeforeAttempt
	// BeforeReadBody fires once an attempt has produced a response and
	// before its body is read, whatever the status code.
	BeforeReadBody
	// AfterAttemptTimeout fires when an attempt timed out, after the
	// execution's AttemptTimeouts has been incremented.
	AfterAttemptTimeout
	// AfterAttempt fires after every attempt, before the retry policy is
	// consulted. At least one of Response and Err is set; both are set
	// when reading the body failed.
	AfterAttempt
	// AfterPlanTimeout fires when the plan context deadline passed,
	// either during an attempt or while waiting to retry. It always
	// follows AfterAttempt.
	AfterPlanTimeout
	// AfterExecutionEnd fires once the execution has ended and End is
	// set.
	AfterExecutionEnd

	numEvents = int(AfterExecutionEnd) + 1
)

var eventNames = [numEvents]string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"AfterPlanTimeout",
	"AfterExecutionEnd",
}

// Events returns every event in the order they can occur.
func Events() []Event {
	evts := make([]Event, numEvents)
	for i := range evts {
		evts[i] = Event(i)
	}
	return evts
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[evt]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
