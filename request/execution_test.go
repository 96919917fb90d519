// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecution_StatusCode(t *testing.T) {
	e := &Execution{}
	require.Nil(t, e.Response)
	assert.Equal(t, 0, e.StatusCode())
	e.Response = &http.Response{StatusCode: 201}
	assert.Equal(t, 201, e.StatusCode())
}

func TestExecution_Header(t *testing.T) {
	e := &Execution{}
	assert.Nil(t, e.Header())
	assert.Empty(t, e.Header().Get("Content-Type"))

	h := http.Header{"Content-Type": []string{"application/json; charset=utf-8"}}
	e.Response = &http.Response{Header: h}
	assert.Equal(t, h, e.Header())
}

func TestExecution_TimeMethods(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		e := &Execution{}
		assert.False(t, e.Started())
		assert.False(t, e.Ended())
		assert.Equal(t, time.Duration(0), e.Duration())
	})
	t.Run("in flight", func(t *testing.T) {
		e := &Execution{Start: time.Now().Add(-time.Second)}
		assert.True(t, e.Started())
		assert.False(t, e.Ended())
		assert.GreaterOrEqual(t, e.Duration(), time.Second)
	})
	t.Run("ended", func(t *testing.T) {
		start := time.Now()
		e := &Execution{Start: start, End: start.Add(3 * time.Millisecond)}
		assert.True(t, e.Ended())
		assert.Equal(t, 3*time.Millisecond, e.Duration())
	})
}

func TestExecution_Timeout(t *testing.T) {
	e := &Execution{}
	assert.False(t, e.Timeout())
	e.Err = &url.Error{Op: "Get", URL: "/todos", Err: syscall.ETIMEDOUT}
	assert.True(t, e.Timeout())
	e.Err = &url.Error{Op: "Get", URL: "/todos", Err: context.DeadlineExceeded}
	assert.True(t, e.Timeout())
	e.Err = errors.New("other")
	assert.False(t, e.Timeout())
}

func TestExecution_Canceled(t *testing.T) {
	e := &Execution{}
	assert.False(t, e.Canceled())
	e.Err = &url.Error{Op: "Get", URL: "/todos", Err: context.Canceled}
	assert.True(t, e.Canceled())
	assert.False(t, e.Timeout())
}

func TestExecution_Value(t *testing.T) {
	type k1 struct{}
	type k2 struct{}
	e := &Execution{}
	assert.Nil(t, e.Value(k1{}))
	e.SetValue(k1{}, "foo")
	e.SetValue(k2{}, 2)
	assert.Equal(t, "foo", e.Value(k1{}))
	assert.Equal(t, 2, e.Value(k2{}))
	e.SetValue(k1{}, "bar")
	assert.Equal(t, "bar", e.Value(k1{}))
}
