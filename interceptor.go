// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"sync"
)

// Interceptors hold the request and response interceptor chains of a
// Client.
//
// Request interceptors run once per Client.Request, before the request
// is built, with the most recently added running first. Response
// interceptors run once the response is built and validated, or once
// the request has failed, in the order they were added.
//
// Interceptors may be added and ejected while the Client is in use.
type Interceptors struct {
	Request  InterceptorManager[*Config]
	Response InterceptorManager[*Response]
}

// NewInterceptors returns empty interceptor chains.
func NewInterceptors() *Interceptors {
	return &Interceptors{}
}

// An InterceptorManager is one chain of interceptors over values of
// type T.
//
// Each interceptor has a fulfilled and a rejected function, either of
// which may be nil. While the chain carries a value, each fulfilled
// function receives it and returns the value to pass on, or an error.
// Once the chain carries an error, each rejected function receives it
// and may recover by returning a value and a nil error, or pass an
// error on.
type InterceptorManager[T any] struct {
	lock    sync.RWMutex
	nextID  int
	entries []interceptor[T]
}

type interceptor[T any] struct {
	id        int
	fulfilled func(T) (T, error)
	rejected  func(error) (T, error)
}

// Use adds an interceptor and returns an id for Eject.
func (m *InterceptorManager[T]) Use(fulfilled func(T) (T, error), rejected func(error) (T, error)) int {
	if fulfilled == nil && rejected == nil {
		panic("typicode: nil interceptor")
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	id := m.nextID
	m.nextID++
	m.entries = append(m.entries, interceptor[T]{id: id, fulfilled: fulfilled, rejected: rejected})
	return id
}

// Eject removes the interceptor with the given id. Unknown ids are
// ignored.
func (m *InterceptorManager[T]) Eject(id int) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for i := range m.entries {
		if m.entries[i].id == id {
			m.entries = append(m.entries[:i:i], m.entries[i+1:]...)
			return
		}
	}
}

// Clear removes every interceptor.
func (m *InterceptorManager[T]) Clear() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.entries = nil
}

// Len returns the number of interceptors.
func (m *InterceptorManager[T]) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.entries)
}

func (m *InterceptorManager[T]) snapshot(reverse bool) []interceptor[T] {
	m.lock.RLock()
	defer m.lock.RUnlock()
	out := make([]interceptor[T], len(m.entries))
	for i, e := range m.entries {
		if reverse {
			out[len(out)-1-i] = e
		} else {
			out[i] = e
		}
	}
	return out
}

func (m *InterceptorManager[T]) run(reverse bool, v T, err error) (T, error) {
	for _, e := range m.snapshot(reverse) {
		if err == nil {
			if e.fulfilled != nil {
				v, err = e.fulfilled(v)
			}
		} else if e.rejected != nil {
			v, err = e.rejected(err)
		}
	}
	return v, err
}

func (i *Interceptors) runRequest(config *Config) (*Config, error) {
	if i == nil {
		return config, nil
	}
	return i.Request.run(true, config, nil)
}

func (i *Interceptors) runResponse(resp *Response, err error) (*Response, error) {
	if i == nil {
		return resp, err
	}
	return i.Response.run(false, resp, err)
}
