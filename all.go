// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// A Call is one request waiting to be sent. Client.Call makes one from
// a Config.
type Call func(ctx context.Context) (*Response, error)

// All sends every call concurrently and waits for them all.
//
// On success the responses are in the same order as calls. If any call
// fails, All returns the first error and cancels the context handed to
// the calls still running. The responses are then not returned.
func All(ctx context.Context, calls ...Call) ([]*Response, error) {
	responses := make([]*Response, len(calls))
	g, ctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		if call == nil {
			panic("typicode: nil call")
		}
		i, call := i, call
		g.Go(func() error {
			resp, err := call(ctx)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}

// Spread2 adapts a two-argument function to the result of All.
//
// It panics if responses does not hold exactly two elements.
func Spread2[R any](f func(a, b *Response) R) func(responses []*Response) R {
	return func(responses []*Response) R {
		if len(responses) != 2 {
			panic("typicode: Spread2 needs exactly two responses")
		}
		return f(responses[0], responses[1])
	}
}
