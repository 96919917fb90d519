// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the bucket Categorize puts an error into.
//
// Not means a retry is very unlikely to do better. Canceled means the
// caller gave up on the request, so a retry is never wanted. Every other
// category is transient: the same request sent again has a fair chance
// of succeeding.
type Category int

const (
	// Not is any error that is neither transient nor a cancellation,
	// and also the category of a nil error.
	Not Category = iota
	// Timeout is a client-side timeout. An error is a Timeout if it, or
	// any error it wraps, has a Timeout method returning true, or is
	// context.DeadlineExceeded.
	Timeout
	// ConnRefused is syscall.ECONNREFUSED anywhere in the chain. A
	// server that is restarting refuses connections for a moment, so
	// this counts as transient.
	ConnRefused
	// ConnReset is syscall.ECONNRESET anywhere in the chain, typically
	// a load balancer or a server going down mid-response.
	ConnReset
	// Canceled is context.Canceled anywhere in the chain.
	Canceled
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"Canceled",
}

// String returns the name of the category.
func (cat Category) String() string {
	if cat < 0 || int(cat) >= len(categoryNames) {
		return "Category(?)"
	}
	return categoryNames[cat]
}

// Transient reports whether the category is one a retry can cure.
func (cat Category) Transient() bool {
	return cat == Timeout || cat == ConnRefused || cat == ConnReset
}

// Categorize returns the category of err, looking through wrapped
// errors as well as err itself. Timeout wins over the connection
// categories when an error is both, and Canceled wins over everything
// because once the caller has cancelled nothing else matters.
//
// Categorize deliberately ignores Temporary methods.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var t timeouter
	if errors.As(err, &t) && t.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	return Not
}

type timeouter interface {
	Timeout() bool
}
