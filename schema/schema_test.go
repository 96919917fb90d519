// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package schema

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/typicode"
	"github.com/gogama/typicode/internal/placeholder"
	"github.com/gogama/typicode/retry"
)

func decode(t *testing.T, s string) interface{} {
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestNew(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	for _, kind := range Kinds() {
		_, err := s.Get(kind)
		assert.NoError(t, err, string(kind))
	}
	_, err = s.Get("users")
	assert.EqualError(t, err, `schema not found: "users"`)
}

func TestSchema_Validate(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	testCases := []struct {
		name  string
		kind  Kind
		data  string
		valid bool
	}{
		{"todo", Todo, `{"userId":1,"id":1,"title":"t","completed":false}`, true},
		{"created todo", Todo, `{"id":201,"title":"new todo","completed":false}`, true},
		{"todo missing title", Todo, `{"id":1}`, false},
		{"todo bad completed", Todo, `{"id":1,"title":"t","completed":"no"}`, false},
		{"todos", Todos, `[{"userId":1,"id":1,"title":"t","completed":true}]`, true},
		{"todos empty", Todos, `[]`, true},
		{"todos not array", Todos, `{}`, false},
		{"todo fraction id", Todo, `{"id":1.5,"title":"t"}`, false},
		{"post", Post, `{"userId":1,"id":1,"title":"t","body":"b"}`, true},
		{"posts missing body", Posts, `[{"userId":1,"id":1,"title":"t"}]`, false},
		{"comments", Comments, `[{"postId":1,"id":1,"name":"n","email":"a@b.c","body":"b"}]`, true},
		{"comments bad email", Comments, `[{"postId":1,"id":1,"name":"n","email":"nope","body":"b"}]`, false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := s.Validate(testCase.kind, decode(t, testCase.data))
			if testCase.valid {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, testCase.kind, verr.Kind)
			assert.Contains(t, err.Error(), "invalid "+string(testCase.kind)+": ")
		})
	}
	t.Run("unknown kind", func(t *testing.T) {
		err := s.Validate("users", decode(t, `[]`))
		assert.Error(t, err)
		var verr *ValidationError
		assert.False(t, errors.As(err, &verr))
	})
}

func TestSchema_ResponseTransformer(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	server := httptest.NewServer(placeholder.NewHandler(placeholder.NewStore(), placeholder.Options{}))
	defer server.Close()
	c := typicode.New(&typicode.Config{BaseURL: server.URL})
	c.HTTPDoer = server.Client()
	c.RetryPolicy = retry.Never
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		resp, err := c.Get(ctx, "/todos", typicode.WithParam("_limit", "5"),
			typicode.WithTransformResponse(append(typicode.DefaultTransformResponse(), s.ResponseTransformer(Todos))...))
		require.NoError(t, err)
		assert.Len(t, resp.Data, 5)
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := c.Get(ctx, "/todos", typicode.WithParam("_limit", "5"),
			typicode.WithTransformResponse(append(typicode.DefaultTransformResponse(), s.ResponseTransformer(Posts))...))
		e, ok := typicode.AsError(err)
		require.True(t, ok)
		assert.Equal(t, typicode.TransformError, e.Kind)
		require.NotNil(t, e.Response)
		assert.Equal(t, 200, e.Response.Status)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
