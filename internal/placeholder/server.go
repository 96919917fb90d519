// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package placeholder

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ServerConfig says where and how a Server listens.
type ServerConfig struct {
	// Addr is the host:port to listen on. Port 0 picks a free port.
	Addr string
	// H2C serves cleartext HTTP/2 alongside HTTP/1.1.
	H2C bool
	// Handler tunes the API handler.
	Handler Options
}

// ServerParams are the fx dependencies of a Server.
type ServerParams struct {
	fx.In

	Config ServerConfig
	Logger *zap.Logger
}

// A Server serves the placeholder API over HTTP.
type Server struct {
	addr     string
	server   *http.Server
	log      *zap.Logger
	listener net.Listener
	ready    chan struct{}
}

// NewServer builds a Server; it does not listen until Serve.
func NewServer(params ServerParams) *Server {
	opts := params.Config.Handler
	if opts.Logger == nil {
		opts.Logger = params.Logger
	}
	handler := NewHandler(NewStore(), opts)
	if params.Config.H2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	return &Server{
		addr:   params.Config.Addr,
		server: &http.Server{Handler: handler},
		log:    params.Logger,
		ready:  make(chan struct{}),
	}
}

// NewLifecycleServer builds a Server that starts and stops with the fx
// application.
func NewLifecycleServer(params ServerParams, lc fx.Lifecycle) *Server {
	server := NewServer(params)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := server.Listen(ctx); err != nil {
				return err
			}
			go func() {
				_ = server.Serve()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
	return server
}

// Listen opens the listening socket.
func (s *Server) Listen(ctx context.Context) error {
	cfg := net.ListenConfig{}
	listener, err := cfg.Listen(ctx, "tcp", s.addr)
	if err != nil {
		s.log.With(zap.Error(err)).Error("failed to listen")
		return err
	}
	s.listener = listener
	close(s.ready)
	s.log.With(zap.String("address", listener.Addr().String())).Info("listening")
	return nil
}

// URL returns the base URL of the listening server. It blocks until
// Listen has succeeded.
func (s *Server) URL() string {
	<-s.ready
	return "http://" + s.listener.Addr().String()
}

// Serve accepts connections until Shutdown. Listen must have been
// called.
func (s *Server) Serve() error {
	if s.listener == nil {
		panic("typicode/placeholder: Serve before Listen")
	}
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.With(zap.Error(err)).Error("failed to serve")
		return err
	}
	return nil
}

// Shutdown stops the server, letting in-flight requests finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		s.log.With(zap.Error(err)).Error("failed to shutdown")
		return err
	}
	return nil
}
