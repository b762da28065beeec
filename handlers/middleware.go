package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

type contextKey string

const LoggerKey contextKey = "logger"
const RequestIDKey contextKey = "requestID"

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// GetLogger extracts the request-scoped logger from the request context,
// falling back to fallback when the middleware did not run.
func GetLogger(r *http.Request, fallback *zap.Logger) *zap.Logger {
	if val, ok := r.Context().Value(LoggerKey).(*zap.Logger); ok {
		return val
	}
	if fallback == nil {
		return zap.NewNop()
	}
	return fallback
}

// GetRequestID extracts the request id from the request context.
func GetRequestID(r *http.Request) string {
	if val, ok := r.Context().Value(RequestIDKey).(string); ok {
		return val
	}
	return ""
}

// RequestLoggerMiddleware tags every request with an id, taken from the
// X-Request-ID header or generated, and stores a logger carrying that id in
// the request context so handlers log with it.
func RequestLoggerMiddleware(logger *zap.Logger) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		e.Response.Header().Set(RequestIDHeader, id)

		reqLogger := logger.With(
			zap.String("request_id", id),
			zap.String("method", e.Request.Method),
			zap.String("path", e.Request.URL.Path),
		)

		ctx := context.WithValue(e.Request.Context(), RequestIDKey, id)
		ctx = context.WithValue(ctx, LoggerKey, reqLogger)
		e.Request = e.Request.WithContext(ctx)

		start := time.Now()
		err := e.Next()
		if err != nil {
			reqLogger.Warn("http: request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		} else {
			reqLogger.Debug("http: request done", zap.Duration("elapsed", time.Since(start)))
		}
		return err
	}
}
