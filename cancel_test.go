// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelSource(t *testing.T) {
	source := NewCancelSource()
	tok := source.Token
	assert.Nil(t, tok.Reason())
	assert.NoError(t, tok.ThrowIfRequested())
	select {
	case <-tok.Done():
		t.Fatal("token done before cancel")
	default:
	}

	source.Cancel("first")
	source.Cancel("second")

	<-tok.Done()
	require.NotNil(t, tok.Reason())
	assert.Equal(t, "first", tok.Reason().Message)
	err := tok.ThrowIfRequested()
	assert.EqualError(t, err, "first")
	var reason *Canceled
	assert.True(t, errors.As(err, &reason))
}

func TestCanceled_Error(t *testing.T) {
	assert.Equal(t, "canceled", (&Canceled{}).Error())
	assert.Equal(t, "why", (&Canceled{Message: "why"}).Error())
}

func TestCancelTokenNil(t *testing.T) {
	var tok *CancelToken
	assert.Nil(t, tok.Done())
	assert.Nil(t, tok.Reason())
	assert.NoError(t, tok.ThrowIfRequested())

	ctx, stop := tok.bind(context.Background())
	assert.NoError(t, ctx.Err())
	stop()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestCancelTokenBind(t *testing.T) {
	t.Run("token fires", func(t *testing.T) {
		source := NewCancelSource()
		ctx, stop := source.Token.bind(context.Background())
		defer stop()
		source.Cancel("stop it")
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("bound context not cancelled")
		}
		var reason *Canceled
		require.ErrorAs(t, context.Cause(ctx), &reason)
		assert.Equal(t, "stop it", reason.Message)
	})
	t.Run("stop detaches", func(t *testing.T) {
		source := NewCancelSource()
		ctx, stop := source.Token.bind(context.Background())
		stop()
		source.Cancel("late")
		assert.ErrorIs(t, context.Cause(ctx), context.Canceled)
	})
	t.Run("parent fires", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := NewCancelSource().Token.bind(parent)
		defer stop()
		cancel()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})
}
