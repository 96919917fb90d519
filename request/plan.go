// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const nilCtxMsg = "typicode/request: nil context"

// A Plan describes one logical HTTP request. The client turns it into
// as many http.Request attempts as its retry policy allows.
//
// Fields follow the names and meaning of their http.Request
// counterparts. Body is the exception: it is always fully buffered, so
// streaming uploads are not supported.
type Plan struct {
	// Method is the HTTP method. An empty string means GET.
	Method string

	// URL is the absolute URL to request.
	URL *urlpkg.URL

	// Header holds the request header fields. It is shared with every
	// http.Request built from the plan.
	Header http.Header

	// Body is the request body. Nil or empty means no body is sent.
	Body []byte

	// Close asks for the connection to be closed after each attempt.
	Close bool

	// Host overrides the Host header. When empty URL.Host is used.
	Host string

	ctx context.Context
}

// NewPlan is NewPlanWithContext with the background context.
func NewPlan(method, url string, body interface{}) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, body)
}

// NewPlanWithContext returns a new Plan for the given method and URL.
//
// The body may be anything BodyBytes accepts. Readers are drained into
// the plan immediately.
func NewPlanWithContext(ctx context.Context, method, url string, body interface{}) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("typicode/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	// RFC 3986 section 6.2.3: an empty port is the same as no port.
	u.Host = strings.TrimSuffix(u.Host, ":")
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// Context returns the plan context, or the background context if none
// was set.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p using ctx, which must not be
// nil.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// Clone returns a deep copy of p with its context changed to ctx. The
// URL, header and body of the copy can be changed without affecting p.
func (p *Plan) Clone(ctx context.Context) *Plan {
	p2 := p.WithContext(ctx)
	if p.URL != nil {
		u := *p.URL
		if p.URL.User != nil {
			u.User = new(urlpkg.Userinfo)
			*u.User = *p.URL.User
		}
		p2.URL = &u
	}
	p2.Header = p.Header.Clone()
	if p.Body != nil {
		p2.Body = append([]byte(nil), p.Body...)
	}
	return p2
}

// AddCookie adds a cookie to the plan. All cookies share one Cookie
// header, per RFC 6265 section 5.4.
func (p *Plan) AddCookie(c *http.Cookie) {
	s := (&http.Cookie{Name: c.Name, Value: c.Value}).String()
	if h := p.Header.Get("Cookie"); h != "" {
		p.Header.Set("Cookie", h+"; "+s)
	} else {
		p.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the Authorization header for HTTP Basic
// Authentication. The credentials are not encrypted.
func (p *Plan) SetBasicAuth(username, password string) {
	r := http.Request{Header: p.Header}
	r.SetBasicAuth(username, password)
}

// SetBearerToken sets the Authorization header to a bearer token.
func (p *Plan) SetBearerToken(token string) {
	p.Header.Set("Authorization", "Bearer "+token)
}

// ToRequest builds the http.Request for one attempt at the plan, using
// ctx as the request context. The header map is shared with the plan.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := &http.Request{
		Method:     p.Method,
		URL:        p.URL,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     p.Header,
		Close:      p.Close,
		Host:       p.Host,
	}
	if len(p.Body) > 0 {
		body := p.Body
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		r.ContentLength = int64(len(body))
	}
	return r.WithContext(ctx)
}

func validMethod(method string) bool {
	for _, r := range method {
		if !httpguts.IsTokenRune(r) {
			return false
		}
	}
	return true
}
