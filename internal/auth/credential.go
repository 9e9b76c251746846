// ABOUTME: Bearer credential model returned by the resolver
// ABOUTME: Records where in an auth response the token was found

package auth

import "fmt"

// Source identifies the part of an authentication response a credential came from
type Source string

const (
	SourceBody       Source = "body"
	SourceHeader     Source = "header"
	SourceCookie     Source = "cookie"
	SourceDeepSearch Source = "deep-search"
)

// Credential is an opaque bearer token. It is never decoded or verified.
type Credential struct {
	Value  string
	Source Source
	// Depth is the nesting level of the body field the value was read from.
	// Header and cookie credentials are always depth 0.
	Depth int
}

// String hides the token value so credentials can be logged safely
func (c Credential) String() string {
	return fmt.Sprintf("%s credential (%d chars, depth %d)", c.Source, len(c.Value), c.Depth)
}
