// ABOUTME: Credential resolver for login responses
// ABOUTME: Tries an ordered list of extraction strategies and stops at the first match

package auth

import (
	"encoding/json"
	"net/http"
)

// Response is the part of an HTTP response the resolver inspects
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// object decodes the body as a JSON object. Non-object or invalid bodies yield nil.
func (r *Response) object() map[string]any {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(r.Body, &obj); err != nil {
		return nil
	}
	return obj
}

// Strategy extracts a credential from one location of a response.
// Implementations must be pure: no I/O and no mutation of the response.
type Strategy interface {
	Name() string
	Extract(resp *Response) (Credential, bool)
}

// DefaultStrategies returns the candidate sources in priority order
func DefaultStrategies() []Strategy {
	return []Strategy{
		BodyField{},
		HeaderScan{},
		SetCookieScan{},
		DeepSearch{},
	}
}

// Resolver locates a bearer token in an authentication response
type Resolver struct {
	strategies []Strategy
}

// NewResolver creates a resolver. With no strategies the defaults are used.
func NewResolver(strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Resolver{strategies: strategies}
}

// Resolve returns the first credential found. The boolean is false when no
// strategy matched; callers treat that as a cookie-only session, not an error.
func (r *Resolver) Resolve(resp *Response) (Credential, bool) {
	if resp == nil {
		return Credential{}, false
	}
	for _, s := range r.strategies {
		if cred, ok := s.Extract(resp); ok {
			return cred, true
		}
	}
	return Credential{}, false
}

// Strategies returns the names of the configured strategies in order
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}
