// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/gogama/typicode/request"
	"github.com/stretchr/testify/assert"
)

func TestNewFixedWaiter(t *testing.T) {
	w := NewFixedWaiter(3 * time.Second)
	assert.Equal(t, 3*time.Second, w.Wait(&request.Execution{}))
	assert.Equal(t, 3*time.Second, w.Wait(&request.Execution{Attempt: 9}))
}

func TestNewExpWaiter(t *testing.T) {
	t.Run("bad args", func(t *testing.T) {
		assert.PanicsWithValue(t, "typicode/retry: base must be positive", func() { NewExpWaiter(0, time.Second, nil) })
		assert.PanicsWithValue(t, "typicode/retry: max must be at least base", func() { NewExpWaiter(time.Second, time.Millisecond, nil) })
		assert.PanicsWithValue(t, "typicode/retry: invalid jitter type", func() { NewExpWaiter(1, 1, "seed") })
		var r *rand.Rand
		assert.PanicsWithValue(t, "typicode/retry: jitter may not be a typed nil", func() { NewExpWaiter(1, 1, r) })
	})
	t.Run("no jitter", func(t *testing.T) {
		w := NewExpWaiter(10*time.Millisecond, 100*time.Millisecond, nil)
		want := []time.Duration{10, 20, 40, 80, 100, 100}
		for i, d := range want {
			assert.Equal(t, d*time.Millisecond, w.Wait(&request.Execution{Attempt: i}), "attempt %d", i)
		}
		assert.Equal(t, 100*time.Millisecond, w.Wait(&request.Execution{Attempt: 200}))
	})
	t.Run("jitter", func(t *testing.T) {
		for _, jitter := range []interface{}{time.Now(), 1, int64(2), rand.NewSource(3), rand.New(rand.NewSource(4))} {
			w := NewExpWaiter(10*time.Millisecond, 100*time.Millisecond, jitter)
			for i := 0; i < 8; i++ {
				d := w.Wait(&request.Execution{Attempt: i})
				assert.GreaterOrEqual(t, d, time.Duration(0))
				assert.Less(t, d, 100*time.Millisecond)
			}
		}
	})
}

func TestRetryAfter(t *testing.T) {
	fallback := NewFixedWaiter(time.Millisecond)
	w := RetryAfter(fallback, 10*time.Second)
	withHeader := func(v string) *request.Execution {
		return &request.Execution{Response: &http.Response{Header: http.Header{"Retry-After": []string{v}}}}
	}

	assert.PanicsWithValue(t, "typicode/retry: nil fallback waiter", func() { RetryAfter(nil, 0) })
	assert.Equal(t, time.Millisecond, w.Wait(&request.Execution{}))
	assert.Equal(t, 3*time.Second, w.Wait(withHeader("3")))
	assert.Equal(t, time.Millisecond, w.Wait(withHeader("30")))
	assert.Equal(t, time.Millisecond, w.Wait(withHeader("-1")))
	assert.Equal(t, time.Millisecond, w.Wait(withHeader("soon")))
	assert.Equal(t, time.Duration(0), w.Wait(withHeader("Mon, 02 Jan 2006 15:04:05 GMT")))
}

func TestRetryAfterDate(t *testing.T) {
	now := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	d, ok := retryAfter(now.Add(4*time.Second).Format(http.TimeFormat), now)
	assert.True(t, ok)
	assert.Equal(t, 4*time.Second, d)
}
