// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/typicode/request"
)

// A Policy sets the timeout of each attempt a typicode.Client makes
// while running a plan: the first attempt and every retry the retry
// policy asks for.
//
// The attempt timeout is separate from Config.Timeout, which bounds the
// whole request with all its retries. An attempt ends at whichever
// comes first.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines, since one Client serves many requests at once.
type Policy interface {
	// Timeout returns the timeout to put on the next attempt.
	//
	// Parameter e is the execution so far. Before the first attempt
	// e.Attempt is zero and e.Timeout reports false; before a retry
	// e describes the attempt that just ended, including whether it
	// timed out and how many attempts of the execution have.
	Timeout(e *request.Execution) time.Duration
}

// DefaultPolicy is the timeout policy a Client uses when its
// TimeoutPolicy is nil. It gives every attempt 5 seconds.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Infinite never times an attempt out. Requests still end when their
// context does, so Infinite pairs well with Config.Timeout when only
// the overall deadline matters.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed returns a policy that puts the same timeout d on every attempt.
//
// This is the behavior most HTTP clients offer, and the right choice
// unless the remote service is known to have bursts of slow answers.
func Fixed(d time.Duration) Policy {
	return policy{d}
}

// Adaptive returns a policy that stretches the timeout after an attempt
// times out.
//
// Adaptive suits a service that is usually quick but now and then
// stalls on one request. A short usual timeout cuts the stalled
// attempt off and the retry mostly comes back fast. When the whole
// service slows down, though, every short attempt would time out and
// the retries would only add load; the longer after values let the
// request through instead.
//
// The usual timeout applies to the first attempt and to any attempt
// whose predecessor did not time out. After the first timeout of the
// execution after[0] applies, after the second after[1], and so on,
// with the last element repeating. For example
//
//	timeout.Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// tries 200ms, then 1s after a timeout, then 10s after any further
// timeout.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make(policy, 1, 1+len(after))
	p[0] = usual
	return append(p, after...)
}

type policy []time.Duration

func (p policy) Timeout(e *request.Execution) time.Duration {
	if !e.Timeout() {
		return p[0]
	}

	i := e.AttemptTimeouts
	if i > len(p)-1 {
		i = len(p) - 1
	}

	return p[i]
}
