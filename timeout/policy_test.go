// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"errors"
	"math"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/typicode/request"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	assert.Equal(t, 5*time.Second, DefaultPolicy.Timeout(&request.Execution{}))
	assert.Equal(t, 5*time.Second, DefaultPolicy.Timeout(&request.Execution{AttemptTimeouts: 3, Err: syscall.ETIMEDOUT}))
}

func TestInfinite(t *testing.T) {
	assert.Equal(t, time.Duration(math.MaxInt64), Infinite.Timeout(&request.Execution{}))
	assert.Equal(t, time.Duration(math.MaxInt64), Infinite.Timeout(&request.Execution{AttemptTimeouts: 10, Err: syscall.ETIMEDOUT}))
}

func TestFixed(t *testing.T) {
	p := Fixed(33 * time.Hour)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 33*time.Hour, p.Timeout(&request.Execution{Attempt: i, AttemptTimeouts: i, Err: syscall.ETIMEDOUT}))
	}
}

func TestAdaptive(t *testing.T) {
	p := Adaptive(5*time.Millisecond, 10*time.Millisecond, 100*time.Millisecond)
	x := &request.Execution{}
	assert.Equal(t, 5*time.Millisecond, p.Timeout(x))

	x.AttemptTimeouts = 1
	x.Err = syscall.ETIMEDOUT
	assert.Equal(t, 10*time.Millisecond, p.Timeout(x))

	x.Attempt = 1
	x.Err = errors.New("just a routine problem")
	assert.Equal(t, 5*time.Millisecond, p.Timeout(x))

	x.Attempt = 2
	x.AttemptTimeouts = 2
	x.Err = syscall.ETIMEDOUT
	assert.Equal(t, 100*time.Millisecond, p.Timeout(x))

	x.Attempt = 5
	x.AttemptTimeouts = 5
	assert.Equal(t, 100*time.Millisecond, p.Timeout(x))
}

func TestAdaptiveUsualOnly(t *testing.T) {
	p := Adaptive(time.Second)
	assert.Equal(t, time.Second, p.Timeout(&request.Execution{AttemptTimeouts: 4, Err: syscall.ETIMEDOUT}))
}
