// ABOUTME: RoundTripper chaining and request logging with correlation IDs
// ABOUTME: Logs method, path, status and latency for every API call

package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RoundTripperFunc adapts a function to http.RoundTripper
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Middleware wraps a RoundTripper
type Middleware func(http.RoundTripper) http.RoundTripper

// Chain applies middleware to a transport in order.
// The first middleware in the list is the outermost (executes first).
// Example: Chain(base, logging, auth) applies as: logging(auth(base))
func Chain(rt http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		rt = middlewares[i](rt)
	}
	return rt
}

// RequestIDHeader carries the correlation id to the backend
const RequestIDHeader = "X-Request-ID"

// LogRequests logs API calls with timing and a correlation ID
func LogRequests(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			requestID := req.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
				req = req.Clone(req.Context())
				req.Header.Set(RequestIDHeader, requestID)
			}

			logger.Debug("Request started",
				"request_id", requestID,
				"method", req.Method,
				"path", req.URL.Path,
			)

			resp, err := next.RoundTrip(req)
			if err != nil {
				logger.Warn("Request failed",
					"request_id", requestID,
					"method", req.Method,
					"path", req.URL.Path,
					"error", err,
					"latency_ms", time.Since(start).Milliseconds(),
				)
				return nil, err
			}

			logger.Info("Request completed",
				"request_id", requestID,
				"method", req.Method,
				"path", req.URL.Path,
				"status", resp.StatusCode,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return resp, nil
		})
	}
}
