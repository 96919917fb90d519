// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/typicode/request"
	"github.com/stretchr/testify/assert"
)

var (
	getPlan  = &request.Plan{Method: http.MethodGet}
	postPlan = &request.Plan{Method: http.MethodPost}
)

func TestDefaultDecider(t *testing.T) {
	t.Run("retryable status codes", func(t *testing.T) {
		for _, code := range []int{429, 502, 503, 504} {
			t.Run(fmt.Sprint(code), func(t *testing.T) {
				e := request.Execution{Plan: getPlan, Response: &http.Response{StatusCode: code}}
				for j := 0; j < DefaultTimes; j++ {
					e.Attempt = j
					assert.True(t, DefaultDecider(&e), "attempt %d", j)
				}
				e.Attempt = DefaultTimes
				assert.False(t, DefaultDecider(&e))
			})
		}
	})
	t.Run("non-retryable status codes", func(t *testing.T) {
		for _, code := range []int{200, 201, 204, 400, 401, 404, 500} {
			e := request.Execution{Plan: getPlan, Response: &http.Response{StatusCode: code}}
			assert.False(t, DefaultDecider(&e), "code %d", code)
		}
	})
	t.Run("transient errors", func(t *testing.T) {
		for i, err := range transientErrs {
			e := request.Execution{Plan: getPlan, Err: err}
			assert.True(t, DefaultDecider(&e), "transientErrs[%d]", i)
		}
	})
	t.Run("non-transient errors", func(t *testing.T) {
		for i, err := range nonTransientErrs {
			e := request.Execution{Plan: getPlan, Err: err}
			assert.False(t, DefaultDecider(&e), "nonTransientErrs[%d]", i)
		}
	})
	t.Run("POST never retried", func(t *testing.T) {
		e := request.Execution{Plan: postPlan, Response: &http.Response{StatusCode: 503}}
		assert.False(t, DefaultDecider(&e))
		e = request.Execution{Plan: postPlan, Err: syscall.ECONNRESET}
		assert.False(t, DefaultDecider(&e))
	})
}

func TestTransientErr(t *testing.T) {
	for i, err := range transientErrs {
		assert.True(t, TransientErr(&request.Execution{Err: err}), "transientErrs[%d]", i)
		assert.True(t, TransientErr(&request.Execution{Err: &url.Error{Err: err}}), "transientErrs[%d] wrapped", i)
	}
	for i, err := range nonTransientErrs {
		assert.False(t, TransientErr(&request.Execution{Err: err}), "nonTransientErrs[%d]", i)
	}
}

func TestIdempotent(t *testing.T) {
	for _, m := range []string{"GET", "HEAD", "OPTIONS", "TRACE", "PUT", "DELETE"} {
		assert.True(t, Idempotent(&request.Execution{Plan: &request.Plan{Method: m}}), m)
	}
	for _, m := range []string{"POST", "PATCH", "CONNECT"} {
		assert.False(t, Idempotent(&request.Execution{Plan: &request.Plan{Method: m}}), m)
	}
}

func TestDeciderAndOr(t *testing.T) {
	yes := DeciderFunc(func(_ *request.Execution) bool { return true })
	no := DeciderFunc(func(_ *request.Execution) bool { return false })
	e := &request.Execution{}

	assert.True(t, yes.And(yes)(e))
	assert.False(t, yes.And(no)(e))
	assert.False(t, no.And(yes)(e))
	assert.True(t, yes.Or(no)(e))
	assert.True(t, no.Or(yes)(e))
	assert.False(t, no.Or(no)(e))
	assert.True(t, yes.Decide(e))
}

func TestTimes(t *testing.T) {
	assert.False(t, Times(0)(&request.Execution{}))
	assert.True(t, Times(1)(&request.Execution{}))
	assert.False(t, Times(1)(&request.Execution{Attempt: 1}))
	assert.True(t, Times(2)(&request.Execution{Attempt: 1}))
}

func TestBefore(t *testing.T) {
	e := request.Execution{Start: time.Now()}
	before := Before(time.Minute)
	assert.True(t, before(&e))
	e.End = e.Start.Add(2 * time.Minute)
	assert.False(t, before(&e))
}

func TestStatusCode(t *testing.T) {
	empty := StatusCode()
	one := StatusCode(429)
	assert.False(t, empty(&request.Execution{}))
	assert.False(t, one(&request.Execution{}))

	r := &http.Response{StatusCode: 200}
	e := &request.Execution{Response: r}
	assert.False(t, one(e))
	r.StatusCode = 429
	assert.True(t, one(e))
	assert.False(t, StatusCode(0)(&request.Execution{}))
}

var (
	transientErrs = []error{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.ETIMEDOUT,
		context.DeadlineExceeded,
	}
	nonTransientErrs = []error{
		nil,
		errors.New("ain't transient"),
		syscall.EHOSTUNREACH,
		context.Canceled,
	}
)
