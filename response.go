// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"encoding/json"
	"net/http"

	"github.com/gogama/typicode/request"
)

// A Response is the outcome of a successful Request.
type Response struct {
	// Status is the HTTP status code.
	Status int `json:"status"`
	// StatusText is the standard text for Status.
	StatusText string `json:"statusText"`
	// Header holds the response headers.
	Header http.Header `json:"headers"`
	// Data is the response body after the response transformers ran.
	// With the default transformers a JSON body becomes
	// map[string]interface{}, []interface{} and so on, and anything else
	// a string.
	Data interface{} `json:"data"`
	// Config is the configuration the request was sent with.
	Config *Config `json:"config"`
	// Request is the last request attempt sent.
	Request *http.Request `json:"-"`
	// Execution is the low level record of the run.
	Execution *request.Execution `json:"-"`
}

// Bind copies Data into v, which must be a pointer, by way of JSON.
// Transformed data is what gets bound, not the raw body.
func (r *Response) Bind(v interface{}) error {
	b, err := json.Marshal(r.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Body returns the raw response body.
func (r *Response) Body() []byte {
	if r.Execution == nil {
		return nil
	}
	return r.Execution.Body
}
