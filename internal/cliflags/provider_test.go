// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cliflags

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func readFlags(t *testing.T, args []string, cb func(string) string) map[string]any {
	var mp map[string]any
	app := &cli.App{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Aliases: []string{"u"}},
			&cli.IntFlag{Name: "retries", Value: 2},
			&cli.BoolFlag{Name: "http2"},
			&cli.DurationFlag{Name: "timeout"},
			&cli.StringSliceFlag{Name: "header"},
		},
		Action: func(ctx *cli.Context) error {
			var err error
			mp, err = Provider(ctx, ".", cb).Read()
			return err
		},
	}
	require.NoError(t, app.Run(append([]string{"test"}, args...)))
	return mp
}

func TestProvider(t *testing.T) {
	t.Run("only set flags", func(t *testing.T) {
		mp := readFlags(t, []string{"--base-url", "http://x", "--timeout", "2s"}, nil)
		assert.Equal(t, map[string]any{
			"base-url": "http://x",
			"timeout":  2 * time.Second,
		}, mp)
	})
	t.Run("alias", func(t *testing.T) {
		mp := readFlags(t, []string{"-u", "http://y"}, nil)
		assert.Equal(t, "http://y", mp["base-url"])
	})
	t.Run("types", func(t *testing.T) {
		mp := readFlags(t, []string{"--retries", "5", "--http2", "--header", "a", "--header", "b"}, nil)
		assert.Equal(t, 5, mp["retries"])
		assert.Equal(t, true, mp["http2"])
		assert.Equal(t, []string{"a", "b"}, mp["header"])
	})
	t.Run("nested by callback", func(t *testing.T) {
		mp := readFlags(t, []string{"--base-url", "http://z"}, func(s string) string {
			return "client." + strings.ReplaceAll(s, "-", "_")
		})
		assert.Equal(t, map[string]any{
			"client": map[string]any{"base_url": "http://z"},
		}, mp)
	})
}

func TestReadBytes(t *testing.T) {
	_, err := (&CLIFlags{}).ReadBytes()
	assert.Error(t, err)
}
