// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/typicode/request"
	"github.com/gogama/typicode/retry"
	"github.com/gogama/typicode/timeout"
)

// An HTTPDoer sends a single HTTP request the way http.Client does.
type HTTPDoer interface {
	// Do sends r and returns the response, following the contract of
	// http.Client.Do.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = &HandlerGroup{}

// A Client sends requests to a REST API and hands back buffered,
// decoded responses. Its zero value is ready to use.
//
// The zero Client uses http.DefaultClient to send requests,
// timeout.DefaultPolicy for attempt timeouts, retry.DefaultPolicy for
// retries, no event handlers, no interceptors and empty defaults.
//
// A Client works at two levels:
//
// • Request (and Get, Post, Patch, Put, Delete, Head) is the high
// level. It merges the client Defaults into a Config, runs interceptors
// and transformers, classifies failures into *Error values, and returns
// a *Response with the decoded body.
//
// • Do is the low level. It runs a request.Plan through the attempt and
// retry loop, firing events to Handlers, and returns the raw
// request.Execution. Request is built on Do.
//
// Configure a Client fully before sharing it; after that it is safe for
// concurrent use. Reuse clients rather than creating one per request, as
// the HTTPDoer caches connections.
type Client struct {
	// HTTPDoer sends the individual attempts. Nil means
	// http.DefaultClient.
	HTTPDoer HTTPDoer
	// RetryPolicy decides whether and when failed attempts are retried.
	// Nil means retry.DefaultPolicy.
	RetryPolicy retry.Policy
	// TimeoutPolicy sets the timeout of each attempt. Nil means
	// timeout.DefaultPolicy.
	TimeoutPolicy timeout.Policy
	// Handlers are called at the events of every plan execution. Nil
	// means none.
	Handlers *HandlerGroup
	// Interceptors run once per Request, before the request is sent and
	// after the response is built. Nil means none.
	Interceptors *Interceptors
	// Defaults are merged into the Config of every Request. Header
	// values set here are sent with every request unless the request
	// sets the same header.
	Defaults Config
}

// Do runs a plan and returns the final execution state.
//
// Each attempt gets a timeout from the timeout policy. After each
// attempt the retry policy decides whether to go again, and how long to
// wait first. The plan context bounds the whole run.
//
// The error, if any, is the error of the final attempt and is always a
// *url.Error. A non-2xx status is not an error at this level.
//
// The returned Execution is never nil. On success both Response and
// Body are set. If the final attempt failed before a response arrived
// both are nil; if it failed reading the body Response is set and Body
// must not be trusted.
func (c *Client) Do(p *request.Plan) (*request.Execution, error) {
	e := request.Execution{
		Plan: p,
	}

	doer := c.doer()

	timeoutPolicy := c.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}

	retryPolicy := c.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.DefaultPolicy
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = emptyHandlers
	}
	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()

RetryLoop:
	for {
		sendAndReceive(p, &e, doer, handlers, timeoutPolicy)
		if e.Timeout() {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, &e)
		}
		handlers.run(AfterAttempt, &e)
		planCtxErr := p.Context().Err()
		if planCtxErr == context.DeadlineExceeded {
			if e.Err == nil {
				e.Err = urlErrorWrap(p, planCtxErr)
			}
			handlers.run(AfterPlanTimeout, &e)
			break
		} else if planCtxErr != nil {
			e.Err = urlErrorWrap(p, planCtxErr)
			break
		} else if !retryPolicy.Decide(&e) {
			break
		}

		timer := time.NewTimer(retryPolicy.Wait(&e))
		select {
		case <-timer.C:
		case <-p.Context().Done():
			timer.Stop()
			err := p.Context().Err()
			e.Err = urlErrorWrap(p, err)
			if err == context.DeadlineExceeded {
				handlers.run(AfterPlanTimeout, &e)
			}
			break RetryLoop
		}
		e.Response = nil
		e.Err = nil
		e.Body = nil
		e.Attempt++
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return &e, e.Err
}

func sendAndReceive(p *request.Plan, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, timeoutPolicy timeout.Policy) {
	ctx, cancel := context.WithTimeout(p.Context(), timeoutPolicy.Timeout(e))
	defer cancel()
	e.Request = p.ToRequest(ctx)
	handlers.run(BeforeAttempt, e)
	var err error
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
		return
	}
	readBody(p, e, handlers)
}

func readBody(p *request.Plan, e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
	}
}

// CloseIdleConnections closes idle keep-alive connections held by the
// HTTPDoer, if it supports that. In-use connections are left alone.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp matches the Op that net/http puts in its own *url.Error.
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
