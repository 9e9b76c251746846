// ABOUTME: Shared fixtures for command tests
// ABOUTME: Serves a minimal storefront API and builds clients with in-memory sessions

package cmd

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/markalston/pickbazar/internal/client"
	"github.com/markalston/pickbazar/internal/session"
)

const (
	testCategories = `{"success":true,"data":[{"id":1,"name":"Fruit"},{"id":2,"name":"Dairy","description":"Milk and cheese"}]}`
	testProducts   = `{"success":true,"data":[
		{"id":10,"name":"Apples","price":"2.50","stock":"40","category_id":1},
		{"id":11,"name":"Milk","price":1.2,"stock":3,"category":{"id":2,"name":"Dairy"}}
	]}`
)

// newStorefront serves the catalog endpoints. Login returns a token unless
// loginBody is overridden.
func newStorefront(t *testing.T, loginBody string) *httptest.Server {
	t.Helper()
	if loginBody == "" {
		loginBody = `{"success":true,"message":"Login successful","data":{"token":"abc.def.ghi","user":{"id":1,"name":"Ada","email":"ada@example.com","role":"admin"}}}`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		path := strings.TrimPrefix(r.URL.Path, client.APIPrefix)

		if r.Method != http.MethodGet && path != "/login" && path != "/register" &&
			r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Unauthenticated."}`)
			return
		}

		switch {
		case path == "/login":
			io.WriteString(w, loginBody)
		case path == "/register":
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"success":true,"message":"Registered"}`)
		case path == "/categories" && r.Method == http.MethodGet:
			io.WriteString(w, testCategories)
		case path == "/products" && r.Method == http.MethodGet:
			io.WriteString(w, testProducts)
		case r.Method == http.MethodDelete:
			io.WriteString(w, `{"success":true,"message":"Deleted"}`)
		case strings.HasPrefix(path, "/categories"):
			io.WriteString(w, `{"success":true,"data":{"id":7,"name":"Bakery"}}`)
		case strings.HasPrefix(path, "/products"):
			io.WriteString(w, `{"success":true,"data":{"id":12,"name":"Bread","price":"3.00","stock":"5"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"Not found"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newTestClient returns a client for url with a fresh in-memory session
func newTestClient(url string) *client.Client {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	return client.New(url,
		client.WithSessionStore(session.NewStore(nil, session.WithLogger(l))),
		client.WithLogger(l),
	)
}

// resetFlags restores global flag state after a test
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		apiURL = ""
		configDir = ""
		jsonOutput = false
		requireAdmin = false
	})
}
