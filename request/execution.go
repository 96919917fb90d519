// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/typicode/transient"
)

// An Execution is the state of one run of a Plan.
//
// The client creates the Execution when it starts running a plan,
// updates it as attempts are made, and returns it once the plan is
// done. Policies and event handlers receive it along the way.
//
// Handlers may keep their own data on an Execution with SetValue and
// Value. The exported fields belong to the client and should be treated
// as read-only, with two exceptions: a BeforeAttempt handler may adjust
// the outgoing Request (to sign it, say), and a handler may rewrite Body
// once it has been read (to decompress it, say).
type Execution struct {
	// Plan is the plan being run. Never nil.
	Plan *Plan

	// Start is when the run began. Zero until then.
	Start time.Time

	// End is when the run finished. Zero until then.
	End time.Time

	// Attempt is the zero-based number of the current attempt. After
	// the run it is the number of the last attempt, so an initial
	// attempt plus two retries leaves it at 2.
	Attempt int

	// AttemptTimeouts counts the attempts that ended in a timeout.
	// Plan deadlines do not count unless they coincide with an attempt
	// timeout.
	AttemptTimeouts int

	// Request is the request for the current or most recent attempt.
	Request *http.Request

	// Response is the response to the most recent attempt. Nil if that
	// attempt failed, is still underway, or has not started.
	Response *http.Response

	// Err is the error from the most recent attempt, always a
	// *url.Error when set. Once the run has ended Err equals the error
	// the client returned.
	Err error

	// Body is the buffered response body of the most recent attempt.
	// Body and Err can both be set when the body was only partly read;
	// treat Body as invalid unless Err is nil.
	Body []byte

	data context.Context
}

// StatusCode returns the status code of the most recent response, or 0
// when there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the headers of the most recent response, or a nil
// header when there is none. A nil header is safe to read.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}

	return e.Response.Header
}

// Duration returns how long the run has taken so far: zero before it
// starts, End minus Start after it ends, and the time since Start in
// between.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return 0
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started reports whether the run has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended reports whether the run has ended. Nothing changes on an ended
// Execution.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout reports whether Err is a timeout, either of the last attempt
// or of the plan as a whole.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// Canceled reports whether Err is the result of the plan context being
// cancelled.
func (e *Execution) Canceled() bool {
	return transient.Categorize(e.Err) == transient.Canceled
}

// SetValue stores a handler value on the Execution. Keys follow the
// rules of context.WithValue: comparable, non-nil, and of an unexported
// type so that handlers do not trample each other.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the value stored for key, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	if e.data == nil {
		return nil
	}

	return e.data.Value(key)
}
