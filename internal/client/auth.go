// ABOUTME: Register, login and logout against the storefront API
// ABOUTME: Drives the session state machine and caches the user profile

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/markalston/pickbazar/internal/auth"
	"github.com/markalston/pickbazar/internal/session"
)

// Register creates a customer account. It does not log in.
func (c *Client) Register(ctx context.Context, in Registration) (string, error) {
	if err := Validate(in); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, APIPrefix+"/register", in)
	if err != nil {
		return "", err
	}

	env, err := c.doEnvelope(ctx, req, nil)
	if err != nil {
		return "", err
	}
	if env.Message != "" {
		return env.Message, nil
	}
	return "Registration successful. Please login.", nil
}

// Login authenticates and establishes the session. Any previous session is
// discarded first. The transport stores the bearer credential when the
// response carries one; otherwise the session continues on the cookie alone.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if err := Validate(creds); err != nil {
		return nil, err
	}

	c.fire(auth.EventLoginSubmit)
	c.store.Clear()

	req, err := c.newRequest(ctx, http.MethodPost, APIPrefix+"/login", creds)
	if err != nil {
		c.loginFailed()
		return nil, err
	}

	var raw json.RawMessage
	if err := c.do(ctx, req, &raw); err != nil {
		c.loginFailed()
		return nil, err
	}
	env, err := parseEnvelope(raw)
	if err != nil {
		c.loginFailed()
		return nil, err
	}

	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	profile := extractProfile(body)
	c.store.Save("", profile)
	c.fire(auth.EventLoginSuccess)

	snap := c.store.Read()
	result := &LoginResult{
		Message:    env.Message,
		HasToken:   snap.HasCredential(),
		CookieOnly: !snap.HasCredential(),
	}
	if snap.Profile != nil {
		result.Role = snap.Profile.Role
		result.Name = snap.Profile.Name
		result.Email = snap.Profile.Email
		result.IsAdmin = snap.Profile.IsAdmin()
	}

	c.logger.Info("Logged in",
		"role", result.Role,
		"has_credential", result.HasToken,
	)
	return result, nil
}

func (c *Client) loginFailed() {
	c.store.Clear()
	c.fire(auth.EventLoginError)
}

// Logout ends the local session. It is safe to call when not logged in.
func (c *Client) Logout() {
	c.store.Clear()
	c.fire(auth.EventLogout)
	c.logger.Info("Logged out")
}

// extractProfile finds user metadata in a login body: user, data.user,
// data (when it carries a role), then a top-level role.
func extractProfile(body map[string]any) *session.Profile {
	if body == nil {
		return nil
	}
	if u, ok := body["user"].(map[string]any); ok {
		return profileFrom(u)
	}
	if data, ok := body["data"].(map[string]any); ok {
		if u, ok := data["user"].(map[string]any); ok {
			return profileFrom(u)
		}
		if _, ok := data["role"]; ok {
			return profileFrom(data)
		}
	}
	if role, ok := body["role"].(string); ok && role != "" {
		return &session.Profile{Role: role}
	}
	return nil
}

func profileFrom(m map[string]any) *session.Profile {
	p := &session.Profile{
		Name:  stringField(m, "name"),
		Email: stringField(m, "email"),
		Role:  stringField(m, "role"),
	}
	if id, ok := m["id"]; ok && id != nil {
		p.ID = fmt.Sprint(id)
	}
	return p
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
