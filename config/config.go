// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config holds the settings of the typicode command.
package config

import (
	"time"

	"github.com/gogama/typicode/demo"
	"github.com/gogama/typicode/internal/conf"
)

// EnvPrefix prefixes the env vars that set config keys. Nested keys
// use a double underscore, as in TYPICODE_SERVER__ADDR.
const EnvPrefix = "TYPICODE_"

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// BaseURL is where the placeholder API lives
	BaseURL string `conf:"base_url"`

	// AuthToken is sent as X-Auth-Token with every request
	AuthToken string `conf:"auth_token"`

	// Timeout bounds every request. Zero means no timeout.
	Timeout time.Duration `conf:"timeout"`

	// Retries is how many times a failed idempotent request is retried
	Retries int `conf:"retries"`

	// HTTP2 negotiates HTTP/2 over TLS
	HTTP2 bool `conf:"http2"`

	// ValidateSchema checks every response body against its JSON schema
	ValidateSchema bool `conf:"validate_schema"`

	// NoColor disables colored output
	NoColor bool `conf:"no_color"`

	// Limit is the _limit parameter of list requests
	Limit int `conf:"limit"`

	// Offline serves the placeholder API in-process instead of
	// calling BaseURL
	Offline bool `conf:"offline"`

	// Server is the placeholder server configuration
	Server ServerConfig `conf:"server"`
}

type ServerConfig struct {
	// Addr is the host:port to listen on
	Addr string `conf:"addr"`

	// H2C serves cleartext HTTP/2
	H2C bool `conf:"h2c"`

	// Delay is added before every response
	Delay time.Duration `conf:"delay"`
}

var DefaultConfig = conf.DefaultConfig{
	"log_level":       "info",
	"log_format":      "production",
	"base_url":        demo.DefaultBaseURL,
	"auth_token":      "sometoken",
	"timeout":         "0s",
	"retries":         0,
	"http2":           false,
	"validate_schema": false,
	"no_color":        false,
	"limit":           demo.DefaultLimit,
	"offline":         false,
	"server.addr":     "localhost:3000",
	"server.h2c":      false,
	"server.delay":    "0s",
}
