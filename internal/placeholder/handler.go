// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package placeholder

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Options tune a Handler.
type Options struct {
	// Delay holds every response back. The wait ends early if the
	// client goes away.
	Delay time.Duration
	// Logger logs one line per request. Nil means no logging.
	Logger *zap.Logger
}

// NewHandler returns the API handler for s.
func NewHandler(s *Store, opts Options) http.Handler {
	h := &handler{store: s}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{resource}", h.list)
	mux.HandleFunc("POST /{resource}", h.create)
	mux.HandleFunc("GET /{resource}/{id}", h.get)
	mux.HandleFunc("PUT /{resource}/{id}", h.replace)
	mux.HandleFunc("PATCH /{resource}/{id}", h.update)
	mux.HandleFunc("DELETE /{resource}/{id}", h.remove)

	var out http.Handler = mux
	if opts.Delay > 0 {
		out = delay(opts.Delay, out)
	}
	if opts.Logger != nil {
		out = logRequests(opts.Logger, out)
	}
	return headers(out)
}

type handler struct {
	store *Store
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	if !h.store.Has(resource) {
		notFound(w)
		return
	}
	q := Query{Filter: map[string][]string{}}
	for key, values := range r.URL.Query() {
		switch key {
		case "_limit":
			q.Limit, _ = strconv.Atoi(values[0])
		case "_start":
			q.Start, _ = strconv.Atoi(values[0])
		default:
			q.Filter[key] = values
		}
	}
	writeJSON(w, http.StatusOK, h.store.List(resource, q))
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(r)
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	if !h.store.Has(resource) {
		notFound(w)
		return
	}
	body, err := readRecord(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Record{})
		return
	}
	body["id"] = h.store.Count(resource) + 1
	writeJSON(w, http.StatusCreated, body)
}

func (h *handler) replace(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(r)
	if !ok {
		notFound(w)
		return
	}
	body, err := readRecord(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Record{})
		return
	}
	body["id"] = rec.ID()
	writeJSON(w, http.StatusOK, body)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(r)
	if !ok {
		notFound(w)
		return
	}
	body, err := readRecord(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Record{})
		return
	}
	for k, v := range body {
		if k != "id" {
			rec[k] = v
		}
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handler) remove(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.lookup(r); !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, Record{})
}

func (h *handler) lookup(r *http.Request) (Record, bool) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		return nil, false
	}
	return h.store.Get(r.PathValue("resource"), id)
}

// readRecord decodes a JSON or form body. An empty body is an empty
// record.
func readRecord(r *http.Request) (Record, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		rec := Record{}
		for k, v := range r.PostForm {
			rec[k] = v[0]
		}
		return rec, nil
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	rec := Record{}
	if len(b) == 0 {
		return rec, nil
	}
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, Record{})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func headers(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if id := r.Header.Get("X-Request-Id"); id != "" {
			w.Header().Set("X-Request-Id", id)
		}
		next.ServeHTTP(w, r)
	})
}

func delay(d time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			next.ServeHTTP(w, r)
		case <-r.Context().Done():
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
