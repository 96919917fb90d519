// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gogama/typicode/internal/placeholder"
	"github.com/gogama/typicode/retry"
)

// testServer serves the placeholder API plus a few routes under /_test
// for driving failure cases.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	mux := http.NewServeMux()
	mux.Handle("/", placeholder.NewHandler(placeholder.NewStore(), placeholder.Options{}))
	mux.HandleFunc("/_test/status/{code}", statusHandler)
	mux.HandleFunc("/_test/slow", slowHandler)
	mux.HandleFunc("/_test/echo", echoHandler)
	mux.HandleFunc("/_test/text", textHandler)
	mux.HandleFunc("/_test/flaky/{key}", flakyHandler)
	testServer = httptest.NewServer(mux)
	code := m.Run()
	testServer.Close()
	os.Exit(code)
}

// newTestClient returns a client for testServer that never retries.
func newTestClient() *Client {
	c := New(&Config{BaseURL: testServer.URL})
	c.HTTPDoer = testServer.Client()
	c.RetryPolicy = retry.Never
	return c
}

func statusHandler(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(r.PathValue("code"))
	if err != nil {
		code = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, `{"status":`+strconv.Itoa(code)+`}`)
}

// slowHandler waits ms milliseconds, or until the client goes away.
func slowHandler(w http.ResponseWriter, r *http.Request) {
	ms, _ := strconv.Atoi(r.URL.Query().Get("ms"))
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
		_, _ = io.WriteString(w, "slow")
	case <-r.Context().Done():
	}
}

type echo struct {
	Method string      `json:"method"`
	Query  string      `json:"query"`
	Header http.Header `json:"header"`
	Body   string      `json:"body"`
}

func echoHandler(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(echo{
		Method: r.Method,
		Query:  r.URL.RawQuery,
		Header: r.Header,
		Body:   string(b),
	})
}

func textHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = io.WriteString(w, "hello")
}

var flaky struct {
	sync.Mutex
	calls map[string]int
}

// flakyHandler fails with 503 the first two times it sees a key.
func flakyHandler(w http.ResponseWriter, r *http.Request) {
	flaky.Lock()
	if flaky.calls == nil {
		flaky.calls = map[string]int{}
	}
	key := r.PathValue("key")
	flaky.calls[key]++
	n := flaky.calls[key]
	flaky.Unlock()
	if n <= 2 {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"ok":true}`)
}
