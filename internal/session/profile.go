// ABOUTME: Cached user profile and read snapshot types
// ABOUTME: Profile drives admin vs customer branching in commands and the TUI

package session

import "strings"

// Profile is the user metadata returned by the login endpoint
type Profile struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// IsAdmin reports whether the profile carries the admin role
func (p *Profile) IsAdmin() bool {
	return p != nil && strings.EqualFold(strings.TrimSpace(p.Role), "admin")
}

// DisplayName returns the best available label for the user
func (p *Profile) DisplayName() string {
	switch {
	case p == nil:
		return ""
	case p.Name != "":
		return p.Name
	case p.Email != "":
		return p.Email
	default:
		return p.ID
	}
}

// Snapshot is a point-in-time view of the session
type Snapshot struct {
	Credential string   `json:"-"`
	LoggedIn   bool     `json:"logged_in"`
	Profile    *Profile `json:"user,omitempty"`
}

// HasCredential reports whether a bearer token is stored. A logged-in
// snapshot without one is a cookie-only session.
func (s Snapshot) HasCredential() bool {
	return s.Credential != ""
}
