// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package typicode

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gogama/typicode/request"
)

// RequestIDHeader is the header RequestID sets.
const RequestIDHeader = "X-Request-Id"

// LogRequests returns a request interceptor that logs the method, full
// URL and send time of every request at info level.
func LogRequests(logger *zap.Logger) func(*Config) (*Config, error) {
	return func(config *Config) (*Config, error) {
		u, err := config.FullURL()
		if err != nil {
			u = config.URL
		}
		now := time.Now()
		logger.Info("request sent",
			zap.String("method", config.Method),
			zap.String("url", u),
			zap.Int64("at", now.UnixMilli()),
		)
		return config, nil
	}
}

// RequestID returns a request interceptor that sets a fresh random
// X-Request-Id header, unless the request already has one.
func RequestID() func(*Config) (*Config, error) {
	return func(config *Config) (*Config, error) {
		if config.Header.Get(RequestIDHeader) == "" {
			config.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return config, nil
	}
}

// LogHandler returns a Handler that logs execution events at debug
// level. Attempt timeouts and plan timeouts are logged at warn level.
func LogHandler(logger *zap.Logger) Handler {
	return HandlerFunc(func(evt Event, e *request.Execution) {
		fields := []zap.Field{
			zap.Stringer("event", evt),
			zap.String("method", e.Plan.Method),
			zap.String("url", e.Plan.URL.String()),
			zap.Int("attempt", e.Attempt),
		}
		switch evt {
		case AfterAttempt:
			fields = append(fields, zap.Int("status", e.StatusCode()))
			if e.Err != nil {
				fields = append(fields, zap.Error(e.Err))
			}
		case AfterExecutionEnd:
			fields = append(fields, zap.Duration("duration", e.Duration()))
		}
		switch evt {
		case AfterAttemptTimeout, AfterPlanTimeout:
			logger.Warn("timeout", fields...)
		default:
			logger.Debug("execution event", fields...)
		}
	})
}
