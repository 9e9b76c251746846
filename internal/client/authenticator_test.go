// ABOUTME: Tests for the authenticating RoundTripper
// ABOUTME: Header injection, login response capture and body restoration

package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markalston/pickbazar/internal/session"
)

// stubTransport answers every request with a fixed response and keeps the last request
type stubTransport struct {
	status int
	header http.Header
	body   string
	last   *http.Request
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.last = req
	h := s.header
	if h == nil {
		h = http.Header{}
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Request:    req,
	}, nil
}

const testAPIBase = "http://api.test"

func newAuthTransport(store *session.Store, stub *stubTransport) http.RoundTripper {
	return NewAuthenticator(testAPIBase, store, nil, nil)(stub)
}

func TestAuthenticator_AddsBearer(t *testing.T) {
	store := session.NewStore(nil)
	store.Save("abc123", nil)
	stub := &stubTransport{status: 200, body: `{}`}

	req, _ := http.NewRequest(http.MethodGet, "http://api.test/api/v1/products", nil)
	_, err := newAuthTransport(store, stub).RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc123", stub.last.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Authorization"), "caller's request must not be mutated")
}

func TestAuthenticator_OverwritesExistingHeader(t *testing.T) {
	store := session.NewStore(nil)
	store.Save("fresh", nil)
	stub := &stubTransport{status: 200, body: `{}`}

	req, _ := http.NewRequest(http.MethodGet, "http://api.test/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer stale")
	_, err := newAuthTransport(store, stub).RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer fresh"}, stub.last.Header.Values("Authorization"))
}

func TestAuthenticator_NoCredentialNoHeader(t *testing.T) {
	store := session.NewStore(nil)
	store.Save("", nil) // flag only
	stub := &stubTransport{status: 200, body: `{}`}

	req, _ := http.NewRequest(http.MethodGet, "http://api.test/api/v1/products", nil)
	_, err := newAuthTransport(store, stub).RoundTrip(req)
	require.NoError(t, err)

	assert.Empty(t, stub.last.Header.Get("Authorization"))
}

func TestAuthenticator_CapturesLoginCredential(t *testing.T) {
	store := session.NewStore(nil)
	body := `{"success":true,"data":{"token":"XYZ","role":"admin"}}`
	stub := &stubTransport{status: 200, body: body}

	req, _ := http.NewRequest(http.MethodPost, "http://api.test/api/v1/login", nil)
	resp, err := newAuthTransport(store, stub).RoundTrip(req)
	require.NoError(t, err)

	restored, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(restored))

	snap := store.Read()
	assert.Equal(t, "XYZ", snap.Credential)
	assert.True(t, snap.LoggedIn)
}

func TestAuthenticator_CapturesHeaderCredential(t *testing.T) {
	store := session.NewStore(nil)
	stub := &stubTransport{
		status: 200,
		header: http.Header{"X-Auth-Token": {"hdr-token"}},
		body:   `{"success":true}`,
	}

	req, _ := http.NewRequest(http.MethodPost, "http://api.test/api/v1/login/", nil)
	_, err := newAuthTransport(store, stub).RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "hdr-token", store.Read().Credential)
}

func TestAuthenticator_IgnoresFailedLogin(t *testing.T) {
	store := session.NewStore(nil)
	stub := &stubTransport{status: 401, body: `{"token":"nope"}`}

	req, _ := http.NewRequest(http.MethodPost, "http://api.test/api/v1/login", nil)
	_, err := newAuthTransport(store, stub).RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, session.Snapshot{}, store.Read())
}

func TestAuthenticator_IgnoresOtherPaths(t *testing.T) {
	store := session.NewStore(nil)
	stub := &stubTransport{status: 200, body: `{"token":"not-a-login"}`}

	for _, path := range []string{"/api/v1/products", "/api/v1/login-history", "/api/v1/register"} {
		req, _ := http.NewRequest(http.MethodPost, "http://api.test"+path, nil)
		_, err := newAuthTransport(store, stub).RoundTrip(req)
		require.NoError(t, err)
	}
	assert.Equal(t, session.Snapshot{}, store.Read())
}

func TestAuthenticator_DoesNotRetryUnauthorized(t *testing.T) {
	store := session.NewStore(nil)
	store.Save("expired", nil)
	calls := 0
	next := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{StatusCode: 401, Header: http.Header{}, Body: io.NopCloser(strings.NewReader(`{}`))}, nil
	})

	req, _ := http.NewRequest(http.MethodGet, "http://api.test/api/v1/products", nil)
	resp, err := NewAuthenticator(testAPIBase, store, nil, nil)(next).RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "expired", store.Read().Credential, "401 does not end the session")
}

func TestAuthenticator_NoCredentialAcrossHostRedirect(t *testing.T) {
	var apiAuth, foreignAuth string
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer foreign.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiAuth = r.Header.Get("Authorization")
		http.Redirect(w, r, foreign.URL+"/cdn/products", http.StatusFound)
	}))
	defer api.Close()

	store := session.NewStore(nil)
	store.Save("secret-token", nil)
	c := New(api.URL, WithSessionStore(store))

	_, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", apiAuth)
	assert.Empty(t, foreignAuth, "credential must stay on the API host")
}

func TestAuthenticator_SkipsOtherHosts(t *testing.T) {
	store := session.NewStore(nil)
	store.Save("abc123", nil)
	stub := &stubTransport{status: 200, body: `{"token":"elsewhere"}`}

	req, _ := http.NewRequest(http.MethodGet, "http://cdn.test/images/1.png", nil)
	_, err := newAuthTransport(store, stub).RoundTrip(req)
	require.NoError(t, err)
	assert.Empty(t, stub.last.Header.Get("Authorization"))

	req, _ = http.NewRequest(http.MethodPost, "http://cdn.test/api/v1/login", nil)
	_, err = newAuthTransport(store, stub).RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", store.Read().Credential, "login responses from other hosts are not captured")
}
