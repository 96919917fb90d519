// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package demo holds one action per feature of the typicode client,
// each sending one or two requests to the placeholder API and rendering
// the outcome.
package demo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gogama/typicode"
	"github.com/gogama/typicode/render"
	"github.com/gogama/typicode/schema"
)

// DefaultBaseURL is the public placeholder API.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// DefaultLimit is how many items list actions ask for.
const DefaultLimit = 5

// CancelMessage is the reason the cancel action gives.
const CancelMessage = "Request canceled"

// A Demo runs actions against the placeholder API.
type Demo struct {
	// Client sends the requests. Its defaults, interceptors and
	// handlers apply to every action.
	Client *typicode.Client
	// Renderer writes the results.
	Renderer *render.Renderer
	// BaseURL is where the placeholder API lives. Empty means
	// DefaultBaseURL. Actions other than Instance send absolute URLs
	// built from it.
	BaseURL string
	// Schema, if set, validates every response body.
	Schema *schema.Schema
	// Logger logs each action. Nil means no logging.
	Logger *zap.Logger
	// Limit is the _limit parameter of list actions. Zero means
	// DefaultLimit.
	Limit int
}

// An Action is one named demo.
type Action struct {
	Name  string
	Usage string
	Run   func(d *Demo, ctx context.Context) error
}

// Actions returns every action in the order the all action runs them.
func Actions() []Action {
	return []Action{
		{"get", "GET todos", func(d *Demo, ctx context.Context) error { return d.Get(ctx, 0) }},
		{"post", "POST a new todo", (*Demo).Post},
		{"update", "PATCH a todo", (*Demo).Update},
		{"put", "PUT a whole todo", (*Demo).Put},
		{"delete", "DELETE a todo", (*Demo).Delete},
		{"sim", "GET todos and posts concurrently", (*Demo).Sim},
		{"headers", "POST with custom headers", (*Demo).Headers},
		{"transform", "POST and transform the response", (*Demo).Transform},
		{"error", "GET a missing resource and handle the error", func(d *Demo, ctx context.Context) error { return d.Error(ctx, 0) }},
		{"cancel", "GET and cancel the request", (*Demo).Cancel},
		{"instance", "GET comments through a derived client", (*Demo).Instance},
	}
}

// All runs every action in order, stopping at the first failure.
func (d *Demo) All(ctx context.Context) error {
	for _, a := range Actions() {
		d.log().Info("running action", zap.String("action", a.Name))
		if err := d.Renderer.Message("== %s ==", a.Name); err != nil {
			return err
		}
		if err := a.Run(d, ctx); err != nil {
			return fmt.Errorf("%s: %w", a.Name, err)
		}
	}
	return nil
}

// Get fetches the first todos. A non-zero timeout bounds the request.
func (d *Demo) Get(ctx context.Context, timeout time.Duration) error {
	opts := []typicode.Option{d.limit(), d.validate(schema.Todos)}
	if timeout > 0 {
		opts = append(opts, typicode.WithTimeout(timeout))
	}
	return d.show(d.Client.Get(ctx, d.url("/todos"), opts...))
}

// Post creates a todo.
func (d *Demo) Post(ctx context.Context) error {
	return d.show(d.Client.Post(ctx, d.url("/todos"), Todo{Title: "new todo"}, d.validate(schema.Todo)))
}

// Update patches some fields of todo 1.
func (d *Demo) Update(ctx context.Context) error {
	return d.show(d.Client.Patch(ctx, d.url("/todos/1"), Todo{Title: "updated todo", Completed: true}, d.validate(schema.Todo)))
}

// Put replaces todo 1 as a whole.
func (d *Demo) Put(ctx context.Context) error {
	return d.show(d.Client.Put(ctx, d.url("/todos/1"), Todo{UserID: 1, Title: "replaced todo", Completed: true}, d.validate(schema.Todo)))
}

// Delete removes todo 1.
func (d *Demo) Delete(ctx context.Context) error {
	return d.show(d.Client.Delete(ctx, d.url("/todos/1")))
}

// Sim fetches todos and posts concurrently and shows the posts.
func (d *Demo) Sim(ctx context.Context) error {
	rs, err := typicode.All(ctx,
		d.Client.Call(d.listConfig(d.url("/todos"), schema.Todos)),
		d.Client.Call(d.listConfig(d.url("/posts"), schema.Posts)),
	)
	if err != nil {
		return d.show(nil, err)
	}
	posts := typicode.Spread2(func(_, posts *typicode.Response) *typicode.Response {
		return posts
	})(rs)
	return d.show(posts, nil)
}

// Headers creates a todo sending its own Content-Type and
// Authorization headers.
func (d *Demo) Headers(ctx context.Context) error {
	return d.show(d.Client.Post(ctx, d.url("/todos"), Todo{Title: "new todo"},
		typicode.WithHeader("Content-Type", "application/json"),
		typicode.WithHeader("Authorization", "sometoken"),
		d.validate(schema.Todo),
	))
}

// Transform creates a todo and upper-cases the title of the response
// after the default transformers have decoded it.
func (d *Demo) Transform(ctx context.Context) error {
	ts := append(d.transformers(schema.Todo), UpperTitle)
	return d.show(d.Client.Post(ctx, d.url("/todos"), map[string]string{"title": "hello world"},
		typicode.WithTransformResponse(ts...)))
}

// UpperTitle upper-cases the title of a decoded JSON object.
func UpperTitle(data interface{}, _ http.Header) (interface{}, error) {
	m, ok := data.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", data)
	}
	title, ok := m["title"].(string)
	if !ok {
		return nil, errors.New("object has no string title")
	}
	m["title"] = strings.ToUpper(title)
	return m, nil
}

// Error fetches a missing resource and shows how far the request got.
// A non-zero validateBelow accepts every status below it, so the 404
// then counts as success.
//
// A response with a failing status is the expected outcome and is not
// returned as an error.
func (d *Demo) Error(ctx context.Context, validateBelow int) error {
	opts := []typicode.Option{d.limit()}
	if validateBelow > 0 {
		opts = append(opts, typicode.WithValidateStatus(func(status int) bool {
			return status < validateBelow
		}))
	}
	resp, err := d.Client.Get(ctx, d.url("/todoss"), opts...)
	if err == nil {
		return d.Renderer.Response(resp)
	}
	if rerr := d.Renderer.Error(err); rerr != nil {
		return rerr
	}
	if e, ok := typicode.AsError(err); ok && e.Kind == typicode.ResponseError {
		d.log().Info("handled response error", zap.Int("status", e.Response.Status))
		return nil
	}
	return err
}

// Cancel sends a request and cancels it straight away. A cancelled
// request is the expected outcome and is not returned as an error.
func (d *Demo) Cancel(ctx context.Context) error {
	source := typicode.NewCancelSource()
	type result struct {
		resp *typicode.Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := d.Client.Get(ctx, d.url("/todos"), typicode.WithCancelToken(source.Token), d.limit())
		done <- result{resp, err}
	}()
	source.Cancel(CancelMessage)

	r := <-done
	if typicode.IsCancel(r.err) {
		return d.Renderer.Error(r.err)
	}
	return d.show(r.resp, r.err)
}

// Instance fetches comments through a client derived from the demo's
// own, with the base URL set on the derived client only. The derived
// client shares the parent's transport and default headers but none of
// its interceptors.
func (d *Demo) Instance(ctx context.Context) error {
	instance := d.Client.Create(&typicode.Config{
		BaseURL: d.baseURL(),
	})
	return d.show(instance.Get(ctx, "/comments", d.limit(), d.validate(schema.Comments)))
}

func (d *Demo) show(resp *typicode.Response, err error) error {
	if err != nil {
		if rerr := d.Renderer.Error(err); rerr != nil {
			return rerr
		}
		return err
	}
	return d.Renderer.Response(resp)
}

func (d *Demo) baseURL() string {
	if d.BaseURL == "" {
		return DefaultBaseURL
	}
	return d.BaseURL
}

func (d *Demo) url(path string) string {
	return strings.TrimRight(d.baseURL(), "/") + path
}

func (d *Demo) listConfig(url string, kind schema.Kind) *typicode.Config {
	c := &typicode.Config{URL: url}
	c.Apply(d.limit(), d.validate(kind))
	return c
}

func (d *Demo) limit() typicode.Option {
	n := d.Limit
	if n <= 0 {
		n = DefaultLimit
	}
	return typicode.WithParam("_limit", strconv.Itoa(n))
}

func (d *Demo) transformers(kind schema.Kind) []typicode.ResponseTransformer {
	ts := typicode.DefaultTransformResponse()
	if d.Schema != nil {
		ts = append(ts, d.Schema.ResponseTransformer(kind))
	}
	return ts
}

func (d *Demo) validate(kind schema.Kind) typicode.Option {
	return typicode.WithTransformResponse(d.transformers(kind)...)
}

func (d *Demo) log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
