// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"context"
	"net/http"

	"github.com/gogama/typicode/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes an HTTP request plan and returns the final execution
// state (and error, if any). Client implements the Doer interface.
type Doer interface {
	Do(p *request.Plan) (*request.Execution, error)
}

// Requester is the interface that wraps the basic Request method.
//
// Request sends the request described by a Config and returns the
// Response, or an *Error. Client implements the Requester interface,
// and any other Requester implementation must behave substantially the
// same as Client.Request.
//
// Any Requester can be converted into an Executor via the Inflate
// function.
type Requester interface {
	Request(ctx context.Context, config *Config) (*Response, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Any Requester can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(ctx context.Context, url string, opts ...Option) (*Response, error)
}

// Header is the interface that wraps the basic Head method.
//
// Any Requester can be used to emulate a Header via the Head function.
type Header interface {
	Head(ctx context.Context, url string, opts ...Option) (*Response, error)
}

// Deleter is the interface that wraps the basic Delete method.
//
// Any Requester can be used to emulate a Deleter via the Delete
// function.
type Deleter interface {
	Delete(ctx context.Context, url string, opts ...Option) (*Response, error)
}

// Poster is the interface that wraps the basic Post method.
//
// The data parameter goes through the request transformers, so with the
// defaults it may be nil, a string, a []byte, an io.Reader, url.Values,
// or any value encoding/json can marshal.
//
// Any Requester can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(ctx context.Context, url string, data interface{}, opts ...Option) (*Response, error)
}

// Putter is the interface that wraps the basic Put method.
//
// Any Requester can be used to emulate a Putter via the Put function.
type Putter interface {
	Put(ctx context.Context, url string, data interface{}, opts ...Option) (*Response, error)
}

// Patcher is the interface that wraps the basic Patch method.
//
// Any Requester can be used to emulate a Patcher via the Patch function.
type Patcher interface {
	Patch(ctx context.Context, url string, data interface{}, opts ...Option) (*Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
//
// If the underlying implementation does not support this ability,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups Request with the per-method
// shorthands and CloseIdleConnections.
//
// Any Requester can be converted into an Executor via the Inflate
// function.
type Executor interface {
	Requester
	Getter
	Header
	Deleter
	Poster
	Putter
	Patcher
	IdleCloser
}

// Get uses r to send a GET to url.
func Get(ctx context.Context, r Requester, url string, opts ...Option) (*Response, error) {
	return send(ctx, r, http.MethodGet, url, nil, opts)
}

// Head uses r to send a HEAD to url.
func Head(ctx context.Context, r Requester, url string, opts ...Option) (*Response, error) {
	return send(ctx, r, http.MethodHead, url, nil, opts)
}

// Delete uses r to send a DELETE to url.
func Delete(ctx context.Context, r Requester, url string, opts ...Option) (*Response, error) {
	return send(ctx, r, http.MethodDelete, url, nil, opts)
}

// Post uses r to send a POST to url with data as the body.
func Post(ctx context.Context, r Requester, url string, data interface{}, opts ...Option) (*Response, error) {
	return send(ctx, r, http.MethodPost, url, data, opts)
}

// Put uses r to send a PUT to url with data as the body.
func Put(ctx context.Context, r Requester, url string, data interface{}, opts ...Option) (*Response, error) {
	return send(ctx, r, http.MethodPut, url, data, opts)
}

// Patch uses r to send a PATCH to url with data as the body.
func Patch(ctx context.Context, r Requester, url string, data interface{}, opts ...Option) (*Response, error) {
	return send(ctx, r, http.MethodPatch, url, data, opts)
}

func send(ctx context.Context, r Requester, method, url string, data interface{}, opts []Option) (*Response, error) {
	config := &Config{
		Method: method,
		URL:    url,
		Data:   data,
	}
	config.Apply(opts...)
	return r.Request(ctx, config)
}

// Inflate converts any non-nil Requester into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Requester needs to call a function that requires an
// Executor.
func Inflate(r Requester) Executor {
	if r == nil {
		panic("typicode: nil requester")
	}

	if e, ok := r.(Executor); ok {
		return e
	}

	return inflated{r}
}

type inflated struct {
	r Requester
}

func (i inflated) Request(ctx context.Context, config *Config) (*Response, error) {
	return i.r.Request(ctx, config)
}

func (i inflated) Get(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return Get(ctx, i.r, url, opts...)
}

func (i inflated) Head(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return Head(ctx, i.r, url, opts...)
}

func (i inflated) Delete(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return Delete(ctx, i.r, url, opts...)
}

func (i inflated) Post(ctx context.Context, url string, data interface{}, opts ...Option) (*Response, error) {
	return Post(ctx, i.r, url, data, opts...)
}

func (i inflated) Put(ctx context.Context, url string, data interface{}, opts ...Option) (*Response, error) {
	return Put(ctx, i.r, url, data, opts...)
}

func (i inflated) Patch(ctx context.Context, url string, data interface{}, opts ...Option) (*Response, error) {
	return Patch(ctx, i.r, url, data, opts...)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.r.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
