// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"context"
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/gogama/typicode/config"
	"github.com/gogama/typicode/demo"
	"github.com/gogama/typicode/internal/placeholder"
)

// A shell builds and runs the fx application behind a subcommand.
type shell struct {
	log *zap.Logger
	cfg config.Config
	out io.Writer
}

func newShell(ctx *cli.Context) (*shell, error) {
	log, cfg, err := loggerAndConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &shell{
		log: log,
		cfg: cfg,
		out: ctx.App.Writer,
	}, nil
}

// runDemo starts the client graph, runs f on the demo and stops the
// graph again. With the offline setting the placeholder API is served
// in-process for the duration of f.
func (s *shell) runDemo(ctx context.Context, f func(d *demo.Demo, ctx context.Context) error) error {
	var d *demo.Demo
	var server *placeholder.Server

	options := []fx.Option{clientModule, fx.Populate(&d)}
	if s.cfg.Offline {
		serverConfig := placeholder.ServerConfig{
			Addr: "localhost:0",
			Handler: placeholder.Options{
				Delay: s.cfg.Server.Delay,
			},
		}
		options = append(options, placeholderModule(serverConfig), fx.Populate(&server))
	}

	return s.run(ctx, func(ctx context.Context, _ <-chan fx.ShutdownSignal) error {
		if server != nil {
			d.BaseURL = server.URL()
		}
		return f(d, ctx)
	}, options...)
}

// run starts an fx application built from options, calls f and stops
// the application. f receives the channel that signals OS interrupts
// and fx.Shutdowner calls.
func (s *shell) run(ctx context.Context, f func(ctx context.Context, done <-chan fx.ShutdownSignal) error, options ...fx.Option) error {
	// 1. create fx application
	fxApp := s.createFxApp(options...)
	if err := fxApp.Err(); err != nil {
		return err
	}

	// 2. create start context w/ timeout
	startCtx, cancelStart := context.WithTimeout(ctx, fxApp.StartTimeout())
	defer cancelStart()

	// 3. start the application, exit on error
	if err := fxApp.Start(startCtx); err != nil {
		return err
	}

	// 4. run the payload
	runErr := f(ctx, fxApp.Wait())

	// 5. create shutdown context, detached so a cancelled run still
	// shuts down gracefully
	stopCtx, cancelStop := context.WithTimeout(context.WithoutCancel(ctx), fxApp.StopTimeout())
	defer cancelStop()

	// 6. gracefully shutdown the app
	if err := fxApp.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}

	return runErr
}

func (s *shell) createFxApp(options ...fx.Option) *fx.App {
	return fx.New(
		// inject the logger and config
		fx.Supply(s.log),
		fx.Supply(s.cfg),

		// inject the output
		fx.Supply(fx.Annotate(s.out, fx.As(new(io.Writer)))),

		// use the logger also for fx' logs
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: s.log.Named("fx")}
		}),

		// provide subcommand options
		fx.Options(options...),
	)
}
