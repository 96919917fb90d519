// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
)

var errBodyType = errors.New("typicode/request: invalid body type (use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)")

// BodyBytes buffers a loosely typed body into a byte slice.
//
// A nil body yields a nil slice. Strings and byte slices are converted
// directly. Readers are read to the end, and closed if they are also
// Closers; a read or close failure is returned with a nil slice. Any
// other type is an error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			_ = x.Close()
			return nil, err
		}
		if err = x.Close(); err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return io.ReadAll(x)
	default:
		return nil, errBodyType
	}
}
