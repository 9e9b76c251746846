// ABOUTME: Fake storefront API used by client tests
// ABOUTME: Records requests and serves configurable login responses

package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type recordedRequest struct {
	Method      string
	Path        string
	Auth        string
	ContentType string
	RequestID   string
	Form        map[string]string
	FileName    string
	FileBody    string
	Body        string
}

type fakeAPI struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest

	// login response
	loginStatus  int
	loginBody    string
	loginHeaders http.Header

	// catalog
	products   string
	categories string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		t:            t,
		loginStatus:  http.StatusOK,
		loginBody:    `{"success":true,"data":{"token":"XYZ","role":"admin"}}`,
		loginHeaders: http.Header{},
		products:     `{"success":true,"data":[]}`,
		categories:   `{"success":true,"data":[]}`,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) URL() string {
	return f.server.URL
}

func (f *fakeAPI) record(r *http.Request) recordedRequest {
	rec := recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		Auth:        r.Header.Get("Authorization"),
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get(RequestIDHeader),
	}

	if strings.HasPrefix(rec.ContentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			f.t.Errorf("parsing multipart form: %v", err)
		} else {
			rec.Form = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				rec.Form[k] = v[0]
			}
			if fhs := r.MultipartForm.File["image"]; len(fhs) > 0 {
				rec.FileName = fhs[0].Filename
				if src, err := fhs[0].Open(); err == nil {
					data, _ := io.ReadAll(src)
					src.Close()
					rec.FileBody = string(data)
				}
			}
		}
	} else if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		rec.Body = string(data)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()
	return rec
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	rec := f.record(r)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case rec.Path == "/api/v1/login":
		for k, vs := range f.loginHeaders {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(f.loginStatus)
		io.WriteString(w, f.loginBody)

	case rec.Path == "/api/v1/register":
		var body map[string]string
		_ = json.Unmarshal([]byte(rec.Body), &body)
		if body["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"message":"The email has already been taken."}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"message":"User registered"}`)

	case rec.Path == "/api/v1/products" && r.Method == http.MethodGet:
		io.WriteString(w, f.products)

	case rec.Path == "/api/v1/categories" && r.Method == http.MethodGet:
		io.WriteString(w, f.categories)

	case strings.HasPrefix(rec.Path, "/api/v1/products") || strings.HasPrefix(rec.Path, "/api/v1/categories"):
		if rec.Auth == "" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Unauthenticated."}`)
			return
		}
		if r.Method == http.MethodDelete {
			io.WriteString(w, `{"success":true,"message":"deleted"}`)
			return
		}
		name := rec.Form["name"]
		if name == "" {
			var body map[string]string
			_ = json.Unmarshal([]byte(rec.Body), &body)
			name = body["name"]
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": 99, "name": name, "price": "12.50", "stock": "3"},
		})

	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Not Found"}`)
	}
}

func (f *fakeAPI) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeAPI) Last() recordedRequest {
	reqs := f.Requests()
	if len(reqs) == 0 {
		f.t.Fatal("no requests recorded")
	}
	return reqs[len(reqs)-1]
}
