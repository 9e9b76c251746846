// ABOUTME: Error taxonomy for storefront API calls
// ABOUTME: Network failures, API error responses, missing credentials and invalid input

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// ErrAuthRequired is returned before dispatch when an operation needs a bearer
// credential and none is stored.
var ErrAuthRequired = errors.New("Authentication required. Please login again.") //nolint:staticcheck // user-facing message

// NetworkError is a transport failure. No response was received.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unauthorized reports whether the backend rejected the credential
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ValidationError lists invalid input fields. Nothing was sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, len(names))
	for i, name := range names {
		msgs[i] = e.Fields[name]
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// errorResponse covers the error shapes the API uses
type errorResponse struct {
	Success *bool               `json:"success,omitempty"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// handleRequestError converts transport errors into a NetworkError
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &NetworkError{Message: "request canceled", Err: err}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
		return &NetworkError{Message: "request timed out", Err: err}
	}
	return &NetworkError{
		Message: fmt.Sprintf("cannot connect to backend at %s: %v", c.baseURL, err),
		Err:     err,
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// handleErrorResponse parses an error response body into an APIError
func handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		if msg == "" && len(errResp.Errors) > 0 {
			msg = firstFieldError(errResp.Errors)
		}
		if msg != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: msg}
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("backend returned status %d", resp.StatusCode),
	}
}

func firstFieldError(fields map[string][]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if len(fields[name]) > 0 {
			return fields[name][0]
		}
	}
	return ""
}
