// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/gogama/typicode/internal/placeholder"
)

var serveCmdDescription = `The serve command starts an in-memory copy of the placeholder
API, seeded with todos, posts and comments, and blocks until
interrupted. Point --base-url at it to run the actions offline.`

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Usage:       "Serve the placeholder API locally.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "addr",
				Aliases:  []string{"a"},
				Usage:    "The host:port to listen on.",
				Category: "http",
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Category: "http",
			},
			&cli.DurationFlag{
				Name:     "delay",
				Usage:    "Hold every response back this long.",
				Category: "http",
			},
		},
	}
}

func serveAction(ctx *cli.Context) error {
	shell, err := newShell(ctx)
	if err != nil {
		return err
	}

	serverConfig := placeholder.ServerConfig{
		Addr: shell.cfg.Server.Addr,
		H2C:  shell.cfg.Server.H2C,
		Handler: placeholder.Options{
			Delay: shell.cfg.Server.Delay,
		},
	}
	if ctx.IsSet("addr") {
		serverConfig.Addr = ctx.String("addr")
	}
	if ctx.IsSet("h2c") {
		serverConfig.H2C = ctx.Bool("h2c")
	}
	if ctx.IsSet("delay") {
		serverConfig.Handler.Delay = ctx.Duration("delay")
	}

	var server *placeholder.Server

	return shell.run(ctx.Context, func(ctx context.Context, done <-chan fx.ShutdownSignal) error {
		fmt.Fprintf(shell.out, "Serving the placeholder API at %s\n", server.URL())

		// wait for done signal by OS or the caller
		select {
		case sig := <-done:
			if sig.ExitCode != 0 {
				return fmt.Errorf("shutdown with exit code %d", sig.ExitCode)
			}
		case <-ctx.Done():
		}
		return nil
	},
		placeholderModule(serverConfig),
		fx.Populate(&server),
	)
}
