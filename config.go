// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// A Config describes one request made through Client.Request. The same
// type holds a Client's Defaults.
//
// The Config that was actually sent, after defaults and interceptors,
// is echoed back on Response.Config and on *Error.
type Config struct {
	// Method is the HTTP method. Empty means GET.
	Method string
	// URL is the request URL. A relative URL is resolved against
	// BaseURL.
	URL string
	// BaseURL is prepended to a relative URL.
	BaseURL string
	// Params are encoded into the query string, after any query already
	// present in URL.
	Params url.Values
	// Header is sent with the request. Keys should be in canonical
	// form; use Header.Set rather than indexing.
	Header http.Header
	// Data is the request body before transformation. With the default
	// request transformer a struct or map is sent as JSON.
	Data interface{}
	// Timeout bounds the whole request, retries included. Zero means no
	// bound beyond the per-attempt timeout policy.
	Timeout time.Duration

	// ValidateStatus reports whether a status code counts as success.
	// Nil means 2xx.
	ValidateStatus func(status int) bool
	// TransformRequest turns Data into the request body. Nil means
	// DefaultTransformRequest.
	TransformRequest []RequestTransformer
	// TransformResponse turns the response body into Response.Data.
	// Nil means DefaultTransformResponse.
	TransformResponse []ResponseTransformer
	// CancelToken, when set and cancelled, aborts the request.
	CancelToken *CancelToken
}

// An Option adjusts a Config. The verb helpers accept Options so that
// simple calls need no Config literal.
type Option func(*Config)

// WithParam adds a query parameter.
func WithParam(key, value string) Option {
	return func(c *Config) {
		if c.Params == nil {
			c.Params = url.Values{}
		}
		c.Params.Add(key, value)
	}
}

// WithParams adds every query parameter in v.
func WithParams(v url.Values) Option {
	return func(c *Config) {
		if c.Params == nil {
			c.Params = url.Values{}
		}
		for key, values := range v {
			c.Params[key] = append(c.Params[key], values...)
		}
	}
}

// WithHeader sets a request header, replacing any default of the same
// name.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Header == nil {
			c.Header = http.Header{}
		}
		c.Header.Set(key, value)
	}
}

// WithTimeout bounds the whole request.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithCancelToken lets the request be aborted through t.
func WithCancelToken(t *CancelToken) Option {
	return func(c *Config) {
		c.CancelToken = t
	}
}

// WithTransformResponse replaces the response transformer chain. To
// extend the default chain, pass append(DefaultTransformResponse(), ...).
func WithTransformResponse(ts ...ResponseTransformer) Option {
	return func(c *Config) {
		c.TransformResponse = ts
	}
}

// WithValidateStatus decides which status codes count as success.
func WithValidateStatus(f func(status int) bool) Option {
	return func(c *Config) {
		c.ValidateStatus = f
	}
}

// WithBaseURL resolves a relative request URL against u.
func WithBaseURL(u string) Option {
	return func(c *Config) {
		c.BaseURL = u
	}
}

// Apply runs opts against c.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// FullURL returns the URL the request is sent to: URL resolved against
// BaseURL with Params appended to the query string.
func (c *Config) FullURL() (string, error) {
	raw := c.URL
	if c.BaseURL != "" && !isAbsoluteURL(raw) {
		raw = joinURL(c.BaseURL, raw)
	}
	if len(c.Params) == 0 {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.RawQuery == "" {
		u.RawQuery = c.Params.Encode()
	} else {
		u.RawQuery += "&" + c.Params.Encode()
	}
	return u.String(), nil
}

// Clone returns a copy of c whose Params, Header and transformer slices
// can be changed without affecting c. Data is not copied.
func (c *Config) Clone() *Config {
	c2 := *c
	c2.Header = c.Header.Clone()
	if c.Params != nil {
		c2.Params = make(url.Values, len(c.Params))
		for key, values := range c.Params {
			c2.Params[key] = append([]string(nil), values...)
		}
	}
	if c.TransformRequest != nil {
		c2.TransformRequest = append([]RequestTransformer(nil), c.TransformRequest...)
	}
	if c.TransformResponse != nil {
		c2.TransformResponse = append([]ResponseTransformer(nil), c.TransformResponse...)
	}
	return &c2
}

// merge layers c over defaults. Scalar fields in c win when set; header
// fields in c replace same-named default headers.
func (c *Config) merge(defaults *Config) *Config {
	out := defaults.Clone()
	if c.Method != "" {
		out.Method = c.Method
	}
	if out.Method == "" {
		out.Method = http.MethodGet
	}
	out.Method = strings.ToUpper(out.Method)
	out.URL = c.URL
	if c.BaseURL != "" {
		out.BaseURL = c.BaseURL
	}
	if out.Header == nil {
		out.Header = http.Header{}
	}
	for key, values := range c.Header {
		out.Header[key] = append([]string(nil), values...)
	}
	if c.Params != nil {
		if out.Params == nil {
			out.Params = url.Values{}
		}
		for key, values := range c.Params {
			out.Params[key] = append([]string(nil), values...)
		}
	}
	out.Data = c.Data
	if c.Timeout != 0 {
		out.Timeout = c.Timeout
	}
	if c.ValidateStatus != nil {
		out.ValidateStatus = c.ValidateStatus
	}
	if c.TransformRequest != nil {
		out.TransformRequest = c.TransformRequest
	}
	if out.TransformRequest == nil {
		out.TransformRequest = DefaultTransformRequest()
	}
	if c.TransformResponse != nil {
		out.TransformResponse = c.TransformResponse
	}
	if out.TransformResponse == nil {
		out.TransformResponse = DefaultTransformResponse()
	}
	if c.CancelToken != nil {
		out.CancelToken = c.CancelToken
	}
	return out
}

func (c *Config) validStatus(status int) bool {
	if c.ValidateStatus != nil {
		return c.ValidateStatus(status)
	}
	return status >= 200 && status < 300
}

type configJSON struct {
	Method  string      `json:"method"`
	URL     string      `json:"url"`
	BaseURL string      `json:"baseURL,omitempty"`
	Params  url.Values  `json:"params,omitempty"`
	Header  http.Header `json:"headers"`
	Data    interface{} `json:"data,omitempty"`
	Timeout int64       `json:"timeout"`
}

// MarshalJSON renders the serialisable part of the Config, with Timeout
// in milliseconds. Functions and the cancel token are left out.
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(configJSON{
		Method:  strings.ToLower(c.Method),
		URL:     c.URL,
		BaseURL: c.BaseURL,
		Params:  c.Params,
		Header:  c.Header,
		Data:    c.Data,
		Timeout: c.Timeout.Milliseconds(),
	})
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func joinURL(base, rel string) string {
	if rel == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}
