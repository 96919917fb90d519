// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterceptorManager(t *testing.T) {
	appendTo := func(s string) func(string) (string, error) {
		return func(v string) (string, error) {
			return v + s, nil
		}
	}

	t.Run("nil", func(t *testing.T) {
		var m InterceptorManager[string]
		assert.PanicsWithValue(t, "typicode: nil interceptor", func() { m.Use(nil, nil) })
	})
	t.Run("order", func(t *testing.T) {
		var m InterceptorManager[string]
		m.Use(appendTo("a"), nil)
		m.Use(appendTo("b"), nil)
		m.Use(appendTo("c"), nil)
		v, err := m.run(false, "", nil)
		assert.NoError(t, err)
		assert.Equal(t, "abc", v)
		v, err = m.run(true, "", nil)
		assert.NoError(t, err)
		assert.Equal(t, "cba", v)
	})
	t.Run("eject and clear", func(t *testing.T) {
		var m InterceptorManager[string]
		a := m.Use(appendTo("a"), nil)
		b := m.Use(appendTo("b"), nil)
		assert.NotEqual(t, a, b)
		m.Eject(a)
		m.Eject(a)
		m.Eject(12345)
		assert.Equal(t, 1, m.Len())
		v, _ := m.run(false, "", nil)
		assert.Equal(t, "b", v)
		m.Clear()
		assert.Equal(t, 0, m.Len())
		c := m.Use(appendTo("c"), nil)
		assert.NotEqual(t, b, c, "ids are not reused")
	})
	t.Run("reject and recover", func(t *testing.T) {
		var m InterceptorManager[string]
		boom := errors.New("boom")
		var calls []string
		m.Use(func(string) (string, error) {
			calls = append(calls, "fail")
			return "", boom
		}, nil)
		m.Use(func(v string) (string, error) {
			calls = append(calls, "skipped")
			return v, nil
		}, nil)
		m.Use(nil, func(err error) (string, error) {
			calls = append(calls, "recover:"+err.Error())
			return "recovered", nil
		})
		m.Use(appendTo("!"), func(err error) (string, error) {
			calls = append(calls, "not called")
			return "", err
		})
		v, err := m.run(false, "", nil)
		assert.NoError(t, err)
		assert.Equal(t, "recovered!", v)
		assert.Equal(t, []string{"fail", "recover:boom"}, calls)
	})
	t.Run("starts rejected", func(t *testing.T) {
		var m InterceptorManager[string]
		m.Use(appendTo("x"), nil)
		v, err := m.run(false, "v", errors.New("early"))
		assert.EqualError(t, err, "early")
		assert.Equal(t, "v", v)
	})
	t.Run("concurrent", func(t *testing.T) {
		var m InterceptorManager[string]
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				m.Eject(m.Use(appendTo("x"), nil))
			}()
			go func() {
				defer wg.Done()
				_, _ = m.run(false, "", nil)
			}()
		}
		wg.Wait()
		assert.Equal(t, 0, m.Len())
	})
}

func TestInterceptorsNil(t *testing.T) {
	var i *Interceptors
	c := &Config{}
	got, err := i.runRequest(c)
	assert.NoError(t, err)
	assert.Same(t, c, got)
	boom := errors.New("boom")
	resp, err := i.runResponse(nil, boom)
	assert.Nil(t, resp)
	assert.Same(t, boom, err)
}
