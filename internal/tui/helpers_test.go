// ABOUTME: Shared fixtures for TUI tests
// ABOUTME: Serves a minimal storefront API and drives the app with commands run inline

package tui

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/pickbazar/internal/client"
	"github.com/markalston/pickbazar/internal/session"
	"github.com/markalston/pickbazar/internal/tui/recentimages"
)

const (
	adminLogin    = `{"success":true,"message":"Login successful","data":{"token":"abc.def.ghi","user":{"id":1,"name":"Ada","email":"ada@example.com","role":"admin"}}}`
	customerLogin = `{"success":true,"message":"Login successful","data":{"token":"abc.def.ghi","user":{"id":2,"name":"Bob","email":"bob@example.com","role":"customer"}}}`
)

// newStorefront serves the catalog endpoints. An empty loginBody rejects logins.
func newStorefront(t *testing.T, loginBody string) *httptest.Server {
	t.Helper()
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
		case path == "/login" && loginBody == "":
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"success":false,"message":"Invalid credentials"}`)
		case path == "/login":
			io.WriteString(w, loginBody)
		case path == "/register":
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"success":true,"message":"Registered"}`)
		case path == "/categories" && r.Method == http.MethodGet:
			io.WriteString(w, `{"success":true,"data":[{"id":1,"name":"Fruit"},{"id":2,"name":"Dairy"}]}`)
		case path == "/products" && r.Method == http.MethodGet:
			io.WriteString(w, `{"success":true,"data":[
				{"id":10,"name":"Apples","price":"2.50","stock":"40","category_id":1},
				{"id":11,"name":"Milk","price":1.2,"stock":3,"category":{"id":2,"name":"Dairy"}}
			]}`)
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

// newTestApp builds an app over url with an in-memory session and a
// recent-images list in a temp dir
func newTestApp(t *testing.T, url string) *App {
	t.Helper()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := client.New(url,
		client.WithSessionStore(session.NewStore(nil, session.WithLogger(l))),
		client.WithLogger(l),
	)
	app := New(c, recentimages.New(t.TempDir()), l)
	t.Cleanup(app.Close)

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

// run executes cmd and feeds its message back into the app, returning the
// follow-up command
func run(t *testing.T, app *App, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := app.Update(cmd())
	return next
}

// loginAsAdmin stores an admin session with a bearer credential
func loginAsAdmin(app *App) {
	app.client.Session().Save("abc.def.ghi", &session.Profile{ID: "1", Name: "Ada", Role: "admin"})
	app.snap = app.client.Session().Read()
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
