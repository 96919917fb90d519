// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// NewHTTPClient returns an http.Client suitable as a Client's HTTPDoer.
//
// The transport is a clone of http.DefaultTransport. If h2 is true, the
// transport is configured for HTTP/2 through golang.org/x/net/http2
// rather than the bundled copy in net/http, which gives the x/net
// connection pool and its settings.
func NewHTTPClient(h2 bool) (*http.Client, error) {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	if h2 {
		if err := http2.ConfigureTransport(t); err != nil {
			return nil, err
		}
	}
	return &http.Client{Transport: t}, nil
}
