// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gogama/typicode/request"
	"github.com/gogama/typicode/transient"
)

// New returns a Client whose Defaults are a copy of defaults, which may
// be nil, with empty interceptor chains.
func New(defaults *Config) *Client {
	c := &Client{
		Interceptors: NewInterceptors(),
	}
	if defaults != nil {
		c.Defaults = *defaults.Clone()
	}
	if c.Defaults.Header == nil {
		c.Defaults.Header = http.Header{}
	}
	return c
}

// Create returns a new Client sharing c's HTTPDoer, policies and
// handlers, with c's Defaults overlaid by defaults. The new Client gets
// its own, empty, interceptor chains.
func (c *Client) Create(defaults *Config) *Client {
	merged := c.Defaults.Clone()
	if defaults != nil {
		if defaults.BaseURL != "" {
			merged.BaseURL = defaults.BaseURL
		}
		if merged.Header == nil {
			merged.Header = http.Header{}
		}
		for key, values := range defaults.Header {
			merged.Header[key] = append([]string(nil), values...)
		}
		if defaults.Timeout != 0 {
			merged.Timeout = defaults.Timeout
		}
		if defaults.ValidateStatus != nil {
			merged.ValidateStatus = defaults.ValidateStatus
		}
		if defaults.TransformRequest != nil {
			merged.TransformRequest = defaults.TransformRequest
		}
		if defaults.TransformResponse != nil {
			merged.TransformResponse = defaults.TransformResponse
		}
		if defaults.Params != nil {
			merged.Params = defaults.Params
		}
	}
	c2 := New(merged)
	c2.HTTPDoer = c.HTTPDoer
	c2.RetryPolicy = c.RetryPolicy
	c2.TimeoutPolicy = c.TimeoutPolicy
	c2.Handlers = c.Handlers
	return c2
}

// Request sends the request described by config.
//
// The steps are: merge config over the client Defaults; run the request
// interceptors; refuse early if the cancel token has already fired;
// transform Data into a body; send the plan through Do; transform the
// body into Data; check the status with ValidateStatus; run the
// response interceptors.
//
// Any failure comes back as an *Error saying how far the request got.
// On a ResponseError the *Error still carries the full Response.
func (c *Client) Request(ctx context.Context, config *Config) (*Response, error) {
	if config == nil {
		config = &Config{}
	}
	defaulted := config.merge(&c.Defaults)

	merged, err := c.Interceptors.runRequest(defaulted)
	if err == nil && merged == nil {
		err = setupError(defaulted, errors.New("typicode: request interceptor returned nil config"))
	}

	var resp *Response
	if err == nil {
		resp, err = c.dispatch(ctx, merged)
	}

	return c.Interceptors.runResponse(resp, err)
}

func (c *Client) dispatch(ctx context.Context, config *Config) (*Response, error) {
	if reason := config.CancelToken.Reason(); reason != nil {
		return nil, canceledError(config, nil, reason)
	}

	body, err := transformRequest(config)
	if err != nil {
		return nil, setupError(config, err)
	}

	u, err := config.FullURL()
	if err != nil {
		return nil, setupError(config, err)
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}
	ctx, stop := config.CancelToken.bind(ctx)
	defer stop()

	p, err := request.NewPlanWithContext(ctx, config.Method, u, body)
	if err != nil {
		return nil, setupError(config, err)
	}
	for key, values := range config.Header {
		p.Header[key] = values
	}

	e, err := c.Do(p)
	if err != nil {
		return nil, requestError(ctx, config, e, err)
	}

	resp := &Response{
		Status:     e.StatusCode(),
		StatusText: http.StatusText(e.StatusCode()),
		Header:     e.Header(),
		Config:     config,
		Request:    e.Request,
		Execution:  e,
	}

	resp.Data, err = transformResponse(config.TransformResponse, e.Body, resp.Header)
	if err != nil {
		resp.Data = string(e.Body)
		return nil, &Error{
			Kind:     TransformError,
			Code:     CodeBadResponse,
			Message:  "response transform failed",
			Config:   config,
			Request:  e.Request,
			Response: resp,
			Err:      err,
		}
	}

	if !config.validStatus(resp.Status) {
		return nil, responseError(resp)
	}

	return resp, nil
}

func requestError(ctx context.Context, config *Config, e *request.Execution, err error) *Error {
	var reason *Canceled
	if errors.As(context.Cause(ctx), &reason) {
		return canceledError(config, e.Request, reason)
	}

	switch transient.Categorize(err) {
	case transient.Canceled:
		return canceledError(config, e.Request, &Canceled{Message: "canceled"})
	case transient.Timeout:
		msg := "timeout exceeded"
		if config.Timeout > 0 {
			msg = fmt.Sprintf("timeout of %dms exceeded", config.Timeout.Milliseconds())
		}
		return &Error{
			Kind:    RequestError,
			Code:    CodeAborted,
			Message: msg,
			Config:  config,
			Request: e.Request,
			Err:     err,
		}
	default:
		return &Error{
			Kind:    RequestError,
			Code:    CodeNetwork,
			Message: "no response received",
			Config:  config,
			Request: e.Request,
			Err:     err,
		}
	}
}

// Call returns a Call that sends config through c, for use with All.
func (c *Client) Call(config *Config) Call {
	return func(ctx context.Context) (*Response, error) {
		return c.Request(ctx, config)
	}
}

// Get sends a GET to url.
func (c *Client) Get(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return Get(ctx, c, url, opts...)
}

// Head sends a HEAD to url.
func (c *Client) Head(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return Head(ctx, c, url, opts...)
}

// Delete sends a DELETE to url.
func (c *Client) Delete(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return Delete(ctx, c, url, opts...)
}

// Post sends a POST to url with data as the body.
func (c *Client) Post(ctx context.Context, url string, data interface{}, opts ...Option) (*Response, error) {
	return Post(ctx, c, url, data, opts...)
}

// Put sends a PUT to url with data as the body.
func (c *Client) Put(ctx context.Context, url string, data interface{}, opts ...Option) (*Response, error) {
	return Put(ctx, c, url, data, opts...)
}

// Patch sends a PATCH to url with data as the body.
func (c *Client) Patch(ctx context.Context, url string, data interface{}, opts ...Option) (*Response, error) {
	return Patch(ctx, c, url, data, opts...)
}
