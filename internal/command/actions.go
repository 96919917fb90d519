// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/gogama/typicode/demo"
)

// actionFlags returns the extra flags of the actions that take
// arguments.
func actionFlags() map[string][]cli.Flag {
	return map[string][]cli.Flag{
		"get": {
			&cli.DurationFlag{
				Name:  "request-timeout",
				Usage: "bound this request only. 0 means the --timeout setting.",
			},
		},
		"error": {
			&cli.IntFlag{
				Name:  "validate-below",
				Usage: "accept every status below this one, so the 404 succeeds. 0 means the 2xx default.",
			},
		},
	}
}

func actionCommands() []*cli.Command {
	flags := actionFlags()
	var commands []*cli.Command
	for _, a := range demo.Actions() {
		commands = append(commands, actionCommand(a, flags[a.Name]))
	}

	return append(commands, &cli.Command{
		Name:     "all",
		Usage:    "Run every action in order.",
		Category: "actions",
		Action: func(ctx *cli.Context) error {
			return runAction(ctx, (*demo.Demo).All)
		},
	})
}

func actionCommand(a demo.Action, flags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:     a.Name,
		Usage:    a.Usage + ".",
		Category: "actions",
		Flags:    flags,
		Action: func(ctx *cli.Context) error {
			return runAction(ctx, bind(ctx, a))
		},
	}
}

// bind feeds the action's own flags to actions that take arguments.
func bind(ctx *cli.Context, a demo.Action) func(d *demo.Demo, ctx context.Context) error {
	switch a.Name {
	case "get":
		timeout := ctx.Duration("request-timeout")
		return func(d *demo.Demo, ctx context.Context) error {
			return d.Get(ctx, timeout)
		}
	case "error":
		below := ctx.Int("validate-below")
		return func(d *demo.Demo, ctx context.Context) error {
			return d.Error(ctx, below)
		}
	default:
		return a.Run
	}
}

func runAction(ctx *cli.Context, f func(d *demo.Demo, ctx context.Context) error) error {
	shell, err := newShell(ctx)
	if err != nil {
		return err
	}

	return shell.runDemo(ctx.Context, f)
}
