// ABOUTME: API reachability probe used by the health command and the TUI header
// ABOUTME: Lists categories, the cheapest public endpoint the API offers

package client

import (
	"context"
	"errors"
	"time"
)

// HealthStatus reports whether the API answered
type HealthStatus struct {
	URL        string `json:"url"`
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"status_code,omitempty"`
	Categories int    `json:"categories"`
	LatencyMS  int64  `json:"latency_ms"`
	Error      string `json:"error,omitempty"`
}

// Health probes the API. An APIError still means the API is reachable; only
// network failures are returned as errors.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	start := time.Now()
	status := &HealthStatus{URL: c.baseURL}

	cats, err := c.Categories(ctx)
	status.LatencyMS = time.Since(start).Milliseconds()

	var apiErr *APIError
	switch {
	case err == nil:
		status.Reachable = true
		status.StatusCode = 200
		status.Categories = len(cats)
	case errors.As(err, &apiErr):
		status.Reachable = true
		status.StatusCode = apiErr.StatusCode
		status.Error = apiErr.Message
	default:
		return nil, err
	}
	return status, nil
}
