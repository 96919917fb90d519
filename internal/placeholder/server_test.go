// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package placeholder

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestServer(t *testing.T) {
	for _, h2c := range []bool{false, true} {
		s := NewServer(ServerParams{
			Config: ServerConfig{Addr: "127.0.0.1:0", H2C: h2c},
			Logger: zaptest.NewLogger(t),
		})
		ctx := context.Background()
		require.NoError(t, s.Listen(ctx))
		done := make(chan error, 1)
		go func() {
			done <- s.Serve()
		}()

		resp, err := http.Get(s.URL() + "/todos/1")
		require.NoError(t, err)
		b, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, string(b), `"title": "todo 1"`)

		require.NoError(t, s.Shutdown(ctx))
		assert.NoError(t, <-done)
	}
}

func TestServerServeBeforeListen(t *testing.T) {
	s := NewServer(ServerParams{Logger: zaptest.NewLogger(t)})
	assert.PanicsWithValue(t, "typicode/placeholder: Serve before Listen", func() { _ = s.Serve() })
}
