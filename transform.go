// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/gogama/typicode/request"
)

// A RequestTransformer turns request data into something closer to a
// body, and may set headers on the way. The chain runs in order and its
// final result must be something request.BodyBytes accepts.
type RequestTransformer func(data interface{}, header http.Header) (interface{}, error)

// A ResponseTransformer turns response data into something more
// useful. The first transformer in the chain receives the raw body as a
// []byte.
type ResponseTransformer func(data interface{}, header http.Header) (interface{}, error)

// DefaultTransformRequest returns a new slice holding the default
// request chain, EncodeBody.
func DefaultTransformRequest() []RequestTransformer {
	return []RequestTransformer{EncodeBody}
}

// DefaultTransformResponse returns a new slice holding the default
// response chain, ParseJSON. The slice is fresh, so appending to it is
// the way to add a transformer after the default ones.
func DefaultTransformResponse() []ResponseTransformer {
	return []ResponseTransformer{ParseJSON}
}

// EncodeBody passes strings, byte slices and readers through untouched,
// form-encodes url.Values, and encodes anything else as JSON. It sets
// Content-Type to match unless the request already has one.
func EncodeBody(data interface{}, header http.Header) (interface{}, error) {
	switch d := data.(type) {
	case nil, string, []byte, io.Reader:
		return data, nil
	case url.Values:
		setDefault(header, "Content-Type", "application/x-www-form-urlencoded")
		return d.Encode(), nil
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		setDefault(header, "Content-Type", "application/json")
		return b, nil
	}
}

// ParseJSON decodes a JSON body. A body is treated as JSON when the
// Content-Type says so or, failing a Content-Type, when it starts like a
// JSON object or array. An empty body becomes "", and anything else a
// string. Data that is no longer a byte slice passes through untouched.
func ParseJSON(data interface{}, header http.Header) (interface{}, error) {
	b, ok := data.([]byte)
	if !ok {
		return data, nil
	}
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return "", nil
	}
	if !looksJSON(header.Get("Content-Type"), trimmed) {
		return string(b), nil
	}
	var v interface{}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func looksJSON(contentType string, b []byte) bool {
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			return mt == "application/json" || strings.HasSuffix(mt, "+json")
		}
	}
	return b[0] == '{' || b[0] == '['
}

func setDefault(header http.Header, key, value string) {
	if header.Get(key) == "" {
		header.Set(key, value)
	}
}

func transformRequest(config *Config) ([]byte, error) {
	data := config.Data
	for _, t := range config.TransformRequest {
		var err error
		if data, err = t(data, config.Header); err != nil {
			return nil, err
		}
	}
	return request.BodyBytes(data)
}

func transformResponse(ts []ResponseTransformer, body []byte, header http.Header) (interface{}, error) {
	var data interface{} = body
	for _, t := range ts {
		var err error
		if data, err = t(data, header); err != nil {
			return nil, err
		}
	}
	return data, nil
}
