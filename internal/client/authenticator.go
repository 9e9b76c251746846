// ABOUTME: RoundTripper that attaches the stored bearer credential to API calls
// ABOUTME: Also captures the credential from successful login responses

package client

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/markalston/pickbazar/internal/auth"
	"github.com/markalston/pickbazar/internal/session"
)

// Authenticator injects Authorization headers from the session store and
// feeds login responses to the credential resolver. Only requests to the API
// host carry the credential, so redirects to other hosts go out without it.
type Authenticator struct {
	apiHost  string
	store    *session.Store
	resolver *auth.Resolver
	logger   *slog.Logger
	next     http.RoundTripper
}

// NewAuthenticator creates an authenticator middleware for the API at baseURL.
// A nil resolver uses the default strategies.
func NewAuthenticator(baseURL string, store *session.Store, resolver *auth.Resolver, logger *slog.Logger) Middleware {
	if resolver == nil {
		resolver = auth.NewResolver()
	}
	if logger == nil {
		logger = slog.Default()
	}
	var apiHost string
	if u, err := url.Parse(baseURL); err == nil {
		apiHost = strings.ToLower(u.Host)
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return &Authenticator{apiHost: apiHost, store: store, resolver: resolver, logger: logger, next: next}
	}
}

// RoundTrip never rejects a request: without a credential the request is sent as is.
func (a *Authenticator) RoundTrip(req *http.Request) (*http.Response, error) {
	toAPI := a.isAPIHost(req.URL)
	if snap := a.store.Read(); toAPI && snap.HasCredential() {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+snap.Credential)
	}

	resp, err := a.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if toAPI && isLoginPath(req.URL.Path) && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		a.capture(resp)
	}
	return resp, nil
}

// capture buffers the body, restores it for the caller and saves any credential found
func (a *Authenticator) capture(resp *http.Response) {
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		a.logger.Warn("Failed to read login response", "error", err)
		return
	}

	cred, ok := a.resolver.Resolve(&auth.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	})
	if !ok {
		a.logger.Warn("No credential in login response, continuing with cookie session")
		return
	}

	a.store.Save(cred.Value, nil)
	a.logger.Debug("Stored credential from login response",
		"credential_source", string(cred.Source),
		"credential_depth", cred.Depth,
		"credential_length", len(cred.Value),
	)
}

func (a *Authenticator) isAPIHost(u *url.URL) bool {
	return a.apiHost != "" && strings.EqualFold(u.Host, a.apiHost)
}

func isLoginPath(path string) bool {
	return strings.HasSuffix(strings.TrimRight(path, "/"), "/login")
}
