// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package schema validates placeholder API payloads against embedded
// JSON schemas, and plugs that validation into a typicode response
// transformer chain.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/gogama/typicode"
)

// Kind names a payload shape.
type Kind string

const (
	Todo     Kind = "todo"
	Todos    Kind = "todos"
	Post     Kind = "post"
	Posts    Kind = "posts"
	Comments Kind = "comments"
)

var (
	//go:embed todo.json
	todoSchema json.RawMessage
	//go:embed todos.json
	todosSchema json.RawMessage
	//go:embed post.json
	postSchema json.RawMessage
	//go:embed posts.json
	postsSchema json.RawMessage
	//go:embed comments.json
	commentsSchema json.RawMessage
)

var sources = map[Kind]json.RawMessage{
	Todo:     todoSchema,
	Todos:    todosSchema,
	Post:     postSchema,
	Posts:    postsSchema,
	Comments: commentsSchema,
}

// Kinds returns every known kind.
func Kinds() []Kind {
	return []Kind{Todo, Todos, Post, Posts, Comments}
}

// A Schema holds the compiled schema of every Kind.
type Schema struct {
	schemas map[Kind]*gojsonschema.Schema
}

// New compiles the embedded schemas.
func New() (*Schema, error) {
	s := &Schema{schemas: make(map[Kind]*gojsonschema.Schema, len(sources))}
	for kind, src := range sources {
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(src))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", kind, err)
		}
		s.schemas[kind] = compiled
	}
	return s, nil
}

// Get returns the compiled schema for kind.
func (s *Schema) Get(kind Kind) (*gojsonschema.Schema, error) {
	schema, ok := s.schemas[kind]
	if !ok {
		return nil, fmt.Errorf("schema not found: %q", kind)
	}
	return schema, nil
}

// Validate checks data, a decoded JSON value, against kind. It returns
// a *ValidationError when data does not match.
func (s *Schema) Validate(kind Kind, data interface{}) error {
	schema, err := s.Get(kind)
	if err != nil {
		return err
	}

	res, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	return &ValidationError{Kind: kind, Result: res}
}

// ResponseTransformer returns a transformer that validates response
// data against kind and passes it on unchanged. Put it after
// typicode.ParseJSON in the chain.
func (s *Schema) ResponseTransformer(kind Kind) typicode.ResponseTransformer {
	return func(data interface{}, _ http.Header) (interface{}, error) {
		if err := s.Validate(kind, data); err != nil {
			return nil, err
		}
		return data, nil
	}
}

// A ValidationError lists how data failed its schema.
type ValidationError struct {
	Kind   Kind
	Result *gojsonschema.Result
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Result.Errors()))
	for _, re := range e.Result.Errors() {
		msgs = append(msgs, re.String())
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(msgs, "; "))
}
