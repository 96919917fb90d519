// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	events := Events()
	assert.Len(t, eventNames, numEvents)
	assert.Len(t, events, numEvents)
	for i, evt := range events {
		assert.Equal(t, Event(i), evt)
	}
}

func TestEvent_Name(t *testing.T) {
	testCases := map[Event]string{
		BeforeExecutionStart: "BeforeExecutionStart",
		BeforeAttempt:        "BeforeAttempt",
		BeforeReadBody:       "BeforeReadBody",
		AfterAttemptTimeout:  "AfterAttemptTimeout",
		AfterAttempt:         "AfterAttempt",
		AfterPlanTimeout:     "AfterPlanTimeout",
		AfterExecutionEnd:    "AfterExecutionEnd",
	}
	for evt, name := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, evt.Name())
			assert.Equal(t, name, evt.String())
		})
	}
}
