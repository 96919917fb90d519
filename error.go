// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gogama/typicode/transient"
)

// An ErrorKind says how far a failed request got.
type ErrorKind int

const (
	// SetupError means the request was never sent because it could not
	// be built: a bad URL, method or body.
	SetupError ErrorKind = iota
	// RequestError means the request was sent but no response arrived:
	// a network failure or a timeout.
	RequestError
	// ResponseError means the server answered with a status the
	// request's ValidateStatus rejected.
	ResponseError
	// TransformError means a response arrived but a response
	// transformer failed on it.
	TransformError
	// CancelError means the request was cancelled through its cancel
	// token or its context.
	CancelError
)

var kindNames = []string{
	"SetupError",
	"RequestError",
	"ResponseError",
	"TransformError",
	"CancelError",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

// Error codes carried in Error.Code.
const (
	CodeBadOption   = "ERR_BAD_OPTION"
	CodeNetwork     = "ERR_NETWORK"
	CodeAborted     = "ECONNABORTED"
	CodeBadRequest  = "ERR_BAD_REQUEST"
	CodeBadResponse = "ERR_BAD_RESPONSE"
	CodeCanceled    = "ERR_CANCELED"
)

// An Error is a failed Request.
//
// Which fields are set depends on Kind. Response is set for
// ResponseError and TransformError. Request is set when the request was
// sent, so for everything but SetupError and an early CancelError.
// Config is always set.
type Error struct {
	Kind     ErrorKind
	Code     string
	Message  string
	Config   *Config
	Request  *http.Request
	Response *Response
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil || e.Kind == ResponseError || e.Kind == CancelError {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request failed because it ran out of
// time.
func (e *Error) Timeout() bool {
	return e.Kind == RequestError && transient.Categorize(e.Err) == transient.Timeout
}

// AsError finds the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsCancel reports whether err is a cancelled request.
func IsCancel(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == CancelError
}

// IsTimeout reports whether err is a request that timed out.
func IsTimeout(err error) bool {
	e, ok := AsError(err)
	return ok && e.Timeout()
}

func setupError(config *Config, err error) *Error {
	return &Error{
		Kind:    SetupError,
		Code:    CodeBadOption,
		Message: "invalid request",
		Config:  config,
		Err:     err,
	}
}

func responseError(resp *Response) *Error {
	code := CodeBadRequest
	if resp.Status >= 500 {
		code = CodeBadResponse
	}
	return &Error{
		Kind:     ResponseError,
		Code:     code,
		Message:  fmt.Sprintf("Request failed with status code %d", resp.Status),
		Config:   resp.Config,
		Request:  resp.Request,
		Response: resp,
	}
}

func canceledError(config *Config, r *http.Request, reason *Canceled) *Error {
	return &Error{
		Kind:    CancelError,
		Code:    CodeCanceled,
		Message: reason.Error(),
		Config:  config,
		Request: r,
		Err:     reason,
	}
}
