// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/typicode/demo"
	"github.com/gogama/typicode/internal/conf"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := conf.Parse[Config](conf.ParseOptions{
		Defaults:  DefaultConfig,
		EnvPrefix: "TYPICODE_TEST_UNUSED_",
	})
	require.NoError(t, err)

	assert.Equal(t, Config{
		LogLevel:  "info",
		LogFormat: "production",
		BaseURL:   demo.DefaultBaseURL,
		AuthToken: "sometoken",
		Limit:     demo.DefaultLimit,
		Server: ServerConfig{
			Addr: "localhost:3000",
		},
	}, cfg)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TYPICODE_BASE_URL", "http://localhost:1234")
	t.Setenv("TYPICODE_TIMEOUT", "250ms")
	t.Setenv("TYPICODE_RETRIES", "3")
	t.Setenv("TYPICODE_VALIDATE_SCHEMA", "true")
	t.Setenv("TYPICODE_SERVER__ADDR", ":0")
	t.Setenv("TYPICODE_SERVER__DELAY", "1s")

	cfg, err := conf.Parse[Config](conf.ParseOptions{
		Defaults:  DefaultConfig,
		EnvPrefix: EnvPrefix,
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:1234", cfg.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retries)
	assert.True(t, cfg.ValidateSchema)
	assert.Equal(t, ":0", cfg.Server.Addr)
	assert.Equal(t, time.Second, cfg.Server.Delay)
	assert.Equal(t, "sometoken", cfg.AuthToken)
}
