// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"time"

	"github.com/gogama/typicode/request"
	"github.com/gogama/typicode/transient"
)

// A Decider decides whether to retry after an attempt.
//
// Implementations must be safe for concurrent use.
type Decider interface {
	Decide(e *request.Execution) bool
}

// DeciderFunc adapts an ordinary function to Decider and adds the And
// and Or combinators.
type DeciderFunc func(e *request.Execution) bool

// DefaultTimes is the number of retries DefaultDecider allows.
const DefaultTimes = 5

// DefaultDecider retries an idempotent request up to DefaultTimes
// times when the attempt hit a transient error or got back 429, 502,
// 503 or 504. POST and PATCH are never retried, since the placeholder
// API, like most, treats them as non-idempotent.
var DefaultDecider = Times(DefaultTimes).
	And(Idempotent).
	And(StatusCode(http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout).Or(TransientErr))

// TransientErr retries when the attempt error is transient according to
// transient.Categorize. It never fires on a response.
var TransientErr DeciderFunc = func(e *request.Execution) bool {
	return transient.Categorize(e.Err).Transient()
}

// Idempotent retries only plans whose method is idempotent under
// RFC 7231 section 4.2.2.
var Idempotent DeciderFunc = func(e *request.Execution) bool {
	switch e.Plan.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions,
		http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// Decide calls f(e).
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And returns a decider that retries only when f and g both do. g is
// not consulted when f says no.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or returns a decider that retries when either f or g does. g is not
// consulted when f says yes.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// Times allows at most n retries.
func Times(n int) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Attempt < n
	}
}

// Before allows retries only while the execution is younger than d.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// StatusCode retries when the response status is one of codes.
func StatusCode(codes ...int) DeciderFunc {
	set := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return func(e *request.Execution) bool {
		_, ok := set[e.StatusCode()]
		return ok && e.Response != nil
	}
}
