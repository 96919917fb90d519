// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"io"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gogama/typicode"
	"github.com/gogama/typicode/config"
	"github.com/gogama/typicode/demo"
	"github.com/gogama/typicode/internal/logging"
	"github.com/gogama/typicode/internal/placeholder"
	"github.com/gogama/typicode/render"
	"github.com/gogama/typicode/retry"
	"github.com/gogama/typicode/schema"
)

// AuthTokenHeader carries the configured auth token.
const AuthTokenHeader = "X-Auth-Token"

var clientModule = fx.Module(
	"client",
	logging.DecorateLogger("client"),
	fx.Provide(
		newHTTPClient,
		newClient,
		newRenderer,
		schema.New,
		newDemo,
	),
)

func placeholderModule(serverConfig placeholder.ServerConfig) fx.Option {
	return fx.Module(
		"placeholder",
		logging.DecorateLogger("placeholder"),
		fx.Supply(serverConfig),
		fx.Provide(placeholder.NewLifecycleServer),
	)
}

func newHTTPClient(cfg config.Config) (*http.Client, error) {
	return typicode.NewHTTPClient(cfg.HTTP2)
}

func newClient(cfg config.Config, httpClient *http.Client, log *zap.Logger) *typicode.Client {
	client := typicode.New(&typicode.Config{
		Timeout: cfg.Timeout,
	})
	client.HTTPDoer = httpClient
	client.RetryPolicy = retryPolicy(cfg.Retries)
	if cfg.AuthToken != "" {
		client.Defaults.Header.Set(AuthTokenHeader, cfg.AuthToken)
	}
	client.Interceptors.Request.Use(typicode.RequestID(), nil)
	client.Interceptors.Request.Use(typicode.LogRequests(log), nil)

	handlers := &typicode.HandlerGroup{}
	logHandler := typicode.LogHandler(log)
	for _, evt := range typicode.Events() {
		handlers.PushBack(evt, logHandler)
	}
	client.Handlers = handlers

	return client
}

// retryPolicy retries transient failures of idempotent requests up to
// n times. Zero means never.
func retryPolicy(n int) retry.Policy {
	if n <= 0 {
		return retry.Never
	}
	decider := retry.Times(n).
		And(retry.Idempotent).
		And(retry.StatusCode(http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout).Or(retry.TransientErr))
	return retry.NewPolicy(decider, retry.DefaultWaiter)
}

func newRenderer(cfg config.Config, w io.Writer) *render.Renderer {
	return render.New(w, cfg.NoColor)
}

type demoParams struct {
	fx.In

	Config   config.Config
	Client   *typicode.Client
	Renderer *render.Renderer
	Schema   *schema.Schema
	Logger   *zap.Logger
}

func newDemo(params demoParams) *demo.Demo {
	d := &demo.Demo{
		Client:   params.Client,
		Renderer: params.Renderer,
		BaseURL:  params.Config.BaseURL,
		Logger:   params.Logger,
		Limit:    params.Config.Limit,
	}
	if params.Config.ValidateSchema {
		d.Schema = params.Schema
	}
	return d
}
