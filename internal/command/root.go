// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package command is the typicode command line: one subcommand per
// demo action, plus all and serve.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/gogama/typicode/config"
	"github.com/gogama/typicode/internal/conf"
	"github.com/gogama/typicode/internal/logging"
)

var (
	appName  = "typicode"
	appUsage = `A client for the JSONPlaceholder fake REST API, showing one
feature of the typicode HTTP client per subcommand.`
)

// NewApp returns the root command. Output goes to w.
func NewApp(w io.Writer) *cli.App {
	app := &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Writer:          w,
		ErrWriter:       w,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.PathFlag{
				Name:    "config",
				Usage:   "load settings from a JSON file.",
				Aliases: []string{"c"},
			},
			&cli.PathFlag{
				Name:  "env-file",
				Usage: "load TYPICODE_ settings from a .env file.",
				Value: ".env",
			},
			// client flags
			&cli.StringFlag{
				Name:     "base-url",
				Usage:    "the placeholder API to call.",
				Aliases:  []string{"u"},
				Category: "client",
			},
			&cli.StringFlag{
				Name:     "auth-token",
				Usage:    "the X-Auth-Token sent with every request.",
				Category: "client",
			},
			&cli.DurationFlag{
				Name:     "timeout",
				Usage:    "bound every request. 0 means no timeout.",
				Aliases:  []string{"t"},
				Category: "client",
			},
			&cli.IntFlag{
				Name:     "retries",
				Usage:    "retry failed idempotent requests up to this many times.",
				Aliases:  []string{"r"},
				Category: "client",
			},
			&cli.BoolFlag{
				Name:     "http2",
				Usage:    "negotiate HTTP/2 over TLS.",
				Category: "client",
			},
			&cli.IntFlag{
				Name:     "limit",
				Usage:    "how many items list requests ask for.",
				Aliases:  []string{"n"},
				Category: "client",
			},
			&cli.BoolFlag{
				Name:     "offline",
				Usage:    "serve the placeholder API in-process instead of calling base-url.",
				Category: "client",
			},
			// output flags
			&cli.BoolFlag{
				Name:     "validate-schema",
				Usage:    "check every response body against its JSON schema.",
				Category: "output",
			},
			&cli.BoolFlag{
				Name:     "no-color",
				Usage:    "disable colored output.",
				Category: "output",
				EnvVars:  []string{"NO_COLOR"},
			},
		},
		Before: before,
		After:  after,
	}
	app.Commands = append(actionCommands(), serveCommand())
	return app
}

func before(ctx *cli.Context) error {
	// create the logger
	level := logging.Level(ctx.String("log-level"))
	log, err := logging.New(logging.Options{
		Level:  level,
		Format: ctx.String("log-format"),
		App:    appName,
	})
	if err != nil {
		return err
	}

	// inject logger into cli context
	ctx.Context = logging.ContextWithLogger(ctx.Context, log)

	// parse config using defaults, files, env and flags
	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Cli:         ctx,
		Defaults:    config.DefaultConfig,
		EnvPrefix:   config.EnvPrefix,
		EnvFileName: optionalFile(ctx.Path("env-file")),
		FileName:    ctx.Path("config"),
		Log:         log,
	})
	if err != nil {
		return err
	}

	// the config may lower or raise the level the flags chose
	level.SetLevel(logging.Level(cfg.LogLevel).Level())

	// inject the config into the cli context
	ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

	return nil
}

func after(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	_ = log.Sync()

	return nil
}

// optionalFile returns name if the file exists, so a missing default
// .env file is not reported as an error.
func optionalFile(name string) string {
	if name == "" {
		return ""
	}
	if _, err := os.Stat(name); err != nil {
		return ""
	}
	return name
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

// Execute runs the command line and returns the exit code.
func Execute(params ExecuteParams) int {
	app := NewApp(os.Stdout)
	app.Version = params.Version
	app.Compiled = params.Compiled

	return run(context.Background(), app, os.Args)
}

func run(ctx context.Context, app *cli.App, args []string) int {
	err := app.RunContext(ctx, args)

	// if app exited without error, return
	if err == nil {
		return 0
	}

	// report to sentry, a no-op unless it was set up
	sentry.CaptureException(err)

	fmt.Fprintf(app.ErrWriter, "exit error: %s\n", err.Error())

	return 1
}

func loggerAndConfig(ctx *cli.Context) (*zap.Logger, config.Config, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, config.Config{}, err
	}

	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, config.Config{}, err
	}

	return log, cfg, nil
}
