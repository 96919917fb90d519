// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"context"
	"errors"
)

// Canceled is the reason a request was cancelled.
type Canceled struct {
	Message string
}

func (c *Canceled) Error() string {
	if c.Message == "" {
		return "canceled"
	}
	return c.Message
}

// A CancelSource owns a CancelToken and is the only way to cancel it.
//
//	source := typicode.NewCancelSource()
//	go func() {
//		_, err := client.Get(ctx, "/todos", typicode.WithCancelToken(source.Token))
//		if typicode.IsCancel(err) { ... }
//	}()
//	source.Cancel("Request canceled")
type CancelSource struct {
	Token  *CancelToken
	cancel context.CancelCauseFunc
}

// NewCancelSource returns a source with a fresh token.
func NewCancelSource() *CancelSource {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &CancelSource{
		Token:  &CancelToken{ctx: ctx},
		cancel: cancel,
	}
}

// Cancel cancels the token with message. Only the first call has an
// effect. Requests not yet sent with the token fail without being sent;
// requests in flight are aborted.
func (s *CancelSource) Cancel(message string) {
	s.cancel(&Canceled{Message: message})
}

// A CancelToken is passed with a request so the request can be
// cancelled later through its CancelSource. A token cancels once and
// stays cancelled; use a new source for each request that needs one.
//
// The nil token is never cancelled.
type CancelToken struct {
	ctx context.Context
}

// Done returns a channel closed when the token is cancelled.
func (t *CancelToken) Done() <-chan struct{} {
	if t == nil {
		return nil
	}
	return t.ctx.Done()
}

// Reason returns why the token was cancelled, or nil if it has not
// been.
func (t *CancelToken) Reason() *Canceled {
	if t == nil || t.ctx.Err() == nil {
		return nil
	}
	var c *Canceled
	if errors.As(context.Cause(t.ctx), &c) {
		return c
	}
	return &Canceled{}
}

// ThrowIfRequested returns the cancellation reason as an error, or nil.
func (t *CancelToken) ThrowIfRequested() error {
	if r := t.Reason(); r != nil {
		return r
	}
	return nil
}

// bind returns a child of parent that is cancelled when the token is.
// The stop function must be called once the request is over.
func (t *CancelToken) bind(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	if t == nil {
		return ctx, func() { cancel(nil) }
	}
	stop := context.AfterFunc(t.ctx, func() {
		cancel(t.Reason())
	})
	return ctx, func() {
		stop()
		cancel(nil)
	}
}
