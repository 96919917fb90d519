// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging builds the command's zap logger and carries it
// through contexts and fx modules.
package logging

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// FormatProduction logs JSON lines.
	FormatProduction = "production"
	// FormatDevelopment logs human readable lines.
	FormatDevelopment = "development"
)

// Options tune New.
type Options struct {
	// Level is the level of the logger, which may be changed after New
	// returns. The zero value means info.
	Level zap.AtomicLevel
	// Format is FormatProduction or FormatDevelopment. Empty means
	// FormatProduction.
	Format string
	// App is logged as the app field of every entry.
	App string
	// OutputPaths overrides where logs go. Nil means stderr.
	OutputPaths []string
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	var config zap.Config
	if Format(opts.Format) == FormatProduction {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	if opts.App != "" {
		config.InitialFields = map[string]any{
			"app": opts.App,
		}
	}

	if opts.OutputPaths != nil {
		config.OutputPaths = opts.OutputPaths
	}

	if opts.Level == (zap.AtomicLevel{}) {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config.Level = opts.Level
	}

	return config.Build()
}

// Format normalizes a log format name.
func Format(format string) string {
	if format == FormatDevelopment {
		return FormatDevelopment
	}

	return FormatProduction
}

// Level parses a level name, falling back to info.
func Level(lvl string) zap.AtomicLevel {
	if atom, err := zap.ParseAtomicLevel(lvl); err == nil && lvl != "" {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}

type loggerKey struct{}

// ErrNoLoggerInContext is returned by LoggerFromContext when the
// context carries no logger.
var ErrNoLoggerInContext = errors.New("logging: no logger in context")

// ContextWithLogger returns a copy of ctx carrying logger. The command
// stores its logger this way before any subcommand runs.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger stored by ContextWithLogger.
func LoggerFromContext(ctx context.Context) (*zap.Logger, error) {
	logger, ok := ctx.Value(loggerKey{}).(*zap.Logger)
	if !ok || logger == nil {
		return nil, ErrNoLoggerInContext
	}
	return logger, nil
}

// DecorateLogger replaces the *zap.Logger seen inside an fx module with
// a child logger called name, so entries from the client graph and the
// placeholder server can be told apart.
func DecorateLogger(name string) fx.Option {
	return fx.Decorate(func(log *zap.Logger) *zap.Logger {
		return log.Named(name)
	})
}
