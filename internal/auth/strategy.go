// ABOUTME: Token extraction strategies used by the credential resolver
// ABOUTME: Body aliases, auth-ish headers, Set-Cookie directives and a bounded deep search

package auth

import (
	"net/http"
	"regexp"
	"sort"
	"strings"
)

// Body aliases checked at the top level and then under each container key
var (
	tokenAliases   = []string{"token", "access_token", "accessToken"}
	tokenContainer = []string{"data", "auth", "user"}
)

// bodyPath is a lookup location: alias under container, or top level when container is empty
type bodyPath struct {
	container string
	alias     string
}

// bodyPaths lists lookups in priority order. data.token is checked right after
// the top-level token, ahead of the other top-level aliases.
var bodyPaths = func() []bodyPath {
	paths := []bodyPath{{"", "token"}, {"data", "token"}}
	for _, alias := range tokenAliases[1:] {
		paths = append(paths, bodyPath{"", alias})
	}
	for _, key := range tokenContainer {
		for _, alias := range tokenAliases {
			if key == "data" && alias == "token" {
				continue
			}
			paths = append(paths, bodyPath{key, alias})
		}
	}
	return paths
}()

// BodyField looks for a token under a known alias, on the body itself or one
// level down under data, auth or user.
type BodyField struct{}

func (BodyField) Name() string { return "body-field" }

func (BodyField) Extract(resp *Response) (Credential, bool) {
	obj := resp.object()
	if obj == nil {
		return Credential{}, false
	}
	for _, p := range bodyPaths {
		if p.container == "" {
			if v, ok := nonEmptyString(obj[p.alias]); ok {
				return Credential{Value: v, Source: SourceBody}, true
			}
			continue
		}
		nested, ok := obj[p.container].(map[string]any)
		if !ok {
			continue
		}
		if v, ok := nonEmptyString(nested[p.alias]); ok {
			return Credential{Value: v, Source: SourceBody, Depth: 1}, true
		}
	}
	return Credential{}, false
}

// HeaderScan takes the first header whose name contains "token" or "auth".
// Headers are visited in sorted canonical order so the result is deterministic.
type HeaderScan struct{}

func (HeaderScan) Name() string { return "header" }

// challenge headers describe how to authenticate, they never carry a credential
var skippedHeaders = map[string]bool{
	"Set-Cookie":         true,
	"Www-Authenticate":   true,
	"Proxy-Authenticate": true,
}

func (HeaderScan) Extract(resp *Response) (Credential, bool) {
	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if skippedHeaders[http.CanonicalHeaderKey(name)] {
			continue
		}
		lower := strings.ToLower(name)
		if !strings.Contains(lower, "token") && !strings.Contains(lower, "auth") {
			continue
		}
		for _, raw := range resp.Header[name] {
			if v, ok := nonEmptyString(stripBearer(raw)); ok {
				return Credential{Value: v, Source: SourceHeader}, true
			}
		}
	}
	return Credential{}, false
}

func stripBearer(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
		return strings.TrimSpace(v[7:])
	}
	return v
}

// SetCookieScan reads a cookie named token out of Set-Cookie values
type SetCookieScan struct{}

func (SetCookieScan) Name() string { return "set-cookie" }

var tokenCookie = regexp.MustCompile(`(?:^|;\s*)token=([^;]+)`)

func (SetCookieScan) Extract(resp *Response) (Credential, bool) {
	for _, raw := range resp.Header.Values("Set-Cookie") {
		m := tokenCookie.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		if v, ok := nonEmptyString(m[1]); ok {
			return Credential{Value: v, Source: SourceCookie}, true
		}
	}
	return Credential{}, false
}

// Deep search limits
const (
	DefaultMaxDepth       = 5
	DefaultMinTokenLength = 21
)

// DeepSearch walks the decoded body looking for any field whose name contains
// "token" and whose value is a string long enough to be a credential.
// Zero values fall back to DefaultMaxDepth and DefaultMinTokenLength.
type DeepSearch struct {
	MaxDepth  int
	MinLength int
}

func (DeepSearch) Name() string { return "deep-search" }

func (d DeepSearch) Extract(resp *Response) (Credential, bool) {
	obj := resp.object()
	if obj == nil {
		return Credential{}, false
	}
	maxDepth := d.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	minLen := d.MinLength
	if minLen <= 0 {
		minLen = DefaultMinTokenLength
	}
	return d.walk(obj, 0, maxDepth, minLen)
}

func (d DeepSearch) walk(node any, depth, maxDepth, minLen int) (Credential, bool) {
	if depth > maxDepth {
		return Credential{}, false
	}

	switch n := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if s, ok := n[k].(string); ok && strings.Contains(strings.ToLower(k), "token") {
				if v, ok := nonEmptyString(s); ok && len(v) >= minLen {
					return Credential{Value: v, Source: SourceDeepSearch, Depth: depth}, true
				}
			}
			if cred, ok := d.walk(n[k], depth+1, maxDepth, minLen); ok {
				return cred, true
			}
		}

	case []any:
		for _, item := range n {
			if cred, ok := d.walk(item, depth+1, maxDepth, minLen); ok {
				return cred, true
			}
		}
	}

	return Credential{}, false
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
