// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry decides whether a failed attempt should be retried and
// how long to wait first.
//
// A Policy is a Decider plus a Waiter. Both come with constructors for
// the usual cases, and deciders compose with And and Or:
//
//	decider := retry.Times(3).
//		And(retry.Idempotent).
//		And(retry.StatusCode(500).Or(retry.TransientErr))
//	waiter := retry.RetryAfter(retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now()), 10*time.Second)
//	policy := retry.NewPolicy(decider, waiter)
package retry
