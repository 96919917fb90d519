// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/typicode/request"
)

// A Policy controls retries within one request. After every attempt a
// typicode.Client asks the policy whether to try again and, if so, how
// long to wait before the next attempt. The wait is cut short if the
// request's context ends, in which case the request fails with the
// context's error.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
//
// A Policy is just a Decider and a Waiter. Most callers never implement
// it directly: they take DefaultPolicy or Never, or build one with
// NewPolicy from the deciders and waiters in this package, combined
// with DeciderFunc.And and DeciderFunc.Or.
type Policy interface {
	Decider
	Waiter
}

// DefaultPolicy is the retry policy a Client uses when its RetryPolicy
// is nil. It decides with DefaultDecider, so only idempotent requests
// that failed transiently are retried, and waits with DefaultWaiter,
// which honors Retry-After.
var DefaultPolicy Policy = NewPolicy(DefaultDecider, DefaultWaiter)

// Never is a policy that never retries. Use it to keep the rest of the
// client's behavior, timeouts and event handlers included, while
// sending every request exactly once.
var Never Policy = NewPolicy(Times(0), NewFixedWaiter(0))

// NewPolicy composes a Decider and a Waiter into a Policy. The Decider
// has the last word on whether to retry; the Waiter is only asked once
// the answer is yes. Neither may be nil.
func NewPolicy(d Decider, w Waiter) Policy {
	if d == nil {
		panic("typicode/retry: nil decider")
	}
	if w == nil {
		panic("typicode/retry: nil waiter")
	}
	return policy{decider: d, waiter: w}
}

type policy struct {
	decider Decider
	waiter  Waiter
}

func (p policy) Decide(e *request.Execution) bool {
	return p.decider.Decide(e)
}

func (p policy) Wait(e *request.Execution) time.Duration {
	return p.waiter.Wait(e)
}
