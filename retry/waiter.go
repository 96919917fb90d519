// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gogama/typicode/request"
)

// A Waiter returns how long to sleep before the next attempt. The
// client only asks after the Decider has agreed to retry.
//
// Implementations must be safe for concurrent use.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// DefaultWaiter honours Retry-After up to 5 seconds and otherwise backs
// off exponentially from 50ms to 1s with full jitter.
var DefaultWaiter = RetryAfter(NewExpWaiter(50*time.Millisecond, time.Second, time.Now()), 5*time.Second)

// NewFixedWaiter returns a waiter that always waits d.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter returns a waiter with exponential backoff and optional
// "full jitter" (see
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter).
//
// The ceiling for attempt n is base * 2^n capped at max. With a nil
// jitter the ceiling itself is returned; otherwise a uniformly random
// duration below the ceiling is. Jitter may be a seed (time.Time, int
// or int64), a rand.Source, or a *rand.Rand.
//
// Base must be positive and max at least base.
func NewExpWaiter(base, max time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("typicode/retry: base must be positive")
	}
	if max < base {
		panic("typicode/retry: max must be at least base")
	}
	return &expWaiter{
		base: base,
		max:  max,
		rand: jitterRand(jitter),
	}
}

type expWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (w *expWaiter) Wait(e *request.Execution) time.Duration {
	ceil := w.max
	if e.Attempt < 63 && w.base <= w.max>>uint(e.Attempt) {
		ceil = w.base << uint(e.Attempt)
	}

	if w.rand == nil {
		return ceil
	}

	w.lock.Lock()
	defer w.lock.Unlock()
	return time.Duration(w.rand.Int63n(int64(ceil)))
}

func jitterRand(jitter interface{}) *rand.Rand {
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		return rand.New(rand.NewSource(j.UnixNano()))
	case int:
		return rand.New(rand.NewSource(int64(j)))
	case int64:
		return rand.New(rand.NewSource(j))
	case *rand.Rand:
		if j == nil {
			panic("typicode/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		return rand.New(j)
	default:
		panic("typicode/retry: invalid jitter type")
	}
}

// RetryAfter returns a waiter that obeys a Retry-After response header,
// given either as delay seconds or as an HTTP date, as long as it asks
// for no more than max. Without a usable header it defers to fallback.
func RetryAfter(fallback Waiter, max time.Duration) Waiter {
	if fallback == nil {
		panic("typicode/retry: nil fallback waiter")
	}
	return retryAfterWaiter{fallback: fallback, max: max}
}

type retryAfterWaiter struct {
	fallback Waiter
	max      time.Duration
}

func (w retryAfterWaiter) Wait(e *request.Execution) time.Duration {
	if d, ok := retryAfter(e.Header().Get("Retry-After"), time.Now()); ok && d <= w.max {
		return d
	}
	return w.fallback.Wait(e)
}

func retryAfter(v string, now time.Time) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return 0, false
	}
	d := t.Sub(now)
	if d < 0 {
		d = 0
	}
	return d, true
}
