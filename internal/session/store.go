// ABOUTME: Session store holding the bearer credential, login flag and profile
// ABOUTME: Persists through a Backend, degrades to memory on failure, notifies subscribers

package session

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
)

// Persisted keys
const (
	KeyToken      = "token"
	KeyIsLoggedIn = "isLoggedIn"
	KeyUser       = "user"
)

// CookieName is the server-set cookie that mirrors the credential
const CookieName = "token"

// Store is the single source of truth for session state. It never returns
// backend errors: after the first failure it switches to memory for the rest
// of the process.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	degraded bool
	logger   *slog.Logger

	jar     http.CookieJar
	jarURL  *url.URL
	subs    map[int]func(Snapshot)
	nextSub int
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for degrade warnings
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store over the given backend. A nil backend means memory only.
func NewStore(backend Backend, opts ...Option) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	s := &Store{
		backend: backend,
		logger:  slog.Default(),
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFileStore creates a store persisted to session.json in dir
func NewFileStore(dir string, opts ...Option) *Store {
	return NewStore(NewFileBackend(dir), opts...)
}

// AttachCookieJar registers the HTTP client's cookie jar so Clear can expire
// the token cookie for the API base URL.
func (s *Store) AttachCookieJar(jar http.CookieJar, base *url.URL) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jar = jar
	s.jarURL = base
}

// Degraded reports whether the store has fallen back to memory
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Save marks the session logged in and stores the credential and profile
// when provided. An empty credential or nil profile leaves the stored value alone.
func (s *Store) Save(credential string, profile *Profile) {
	var user string
	if profile != nil {
		data, err := json.Marshal(profile)
		if err != nil {
			s.logger.Warn("Failed to encode profile", "error", err)
		} else {
			user = string(data)
		}
	}

	s.mu.Lock()
	s.apply(func(b Backend) error {
		if err := b.Set(KeyIsLoggedIn, "true"); err != nil {
			return err
		}
		if credential != "" {
			if err := b.Set(KeyToken, credential); err != nil {
				return err
			}
		}
		if user != "" {
			if err := b.Set(KeyUser, user); err != nil {
				return err
			}
		}
		return nil
	})
	snap := s.readLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// Read returns the current session state
func (s *Store) Read() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// Clear removes the credential and profile, resets the flag and expires the
// token cookie.
func (s *Store) Clear() {
	s.mu.Lock()
	s.apply(func(b Backend) error {
		for _, key := range []string{KeyToken, KeyIsLoggedIn, KeyUser} {
			if err := b.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if s.jar != nil && s.jarURL != nil {
		s.jar.SetCookies(s.jarURL, []*http.Cookie{{
			Name:   CookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		}})
	}
	snap := s.readLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// Subscribe registers fn to receive a snapshot after every Save and Clear.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(snap Snapshot) {
	s.mu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// apply runs op against the backend, replaying it in memory if the backend fails.
// Caller must hold s.mu.
func (s *Store) apply(op func(Backend) error) {
	if err := op(s.backend); err != nil {
		s.degrade(err)
		_ = op(s.backend)
	}
}

// Caller must hold s.mu.
func (s *Store) degrade(err error) {
	if s.degraded {
		return
	}
	s.logger.Warn("Session storage unavailable, keeping session in memory", "error", err)

	mem := NewMemoryBackend()
	for _, key := range []string{KeyToken, KeyIsLoggedIn, KeyUser} {
		if v, ok, getErr := s.backend.Get(key); getErr == nil && ok {
			_ = mem.Set(key, v)
		}
	}
	s.backend = mem
	s.degraded = true
}

// Caller must hold s.mu.
func (s *Store) get(key string) string {
	v, ok, err := s.backend.Get(key)
	if err != nil {
		s.degrade(err)
		v, ok, _ = s.backend.Get(key)
	}
	if !ok {
		return ""
	}
	return v
}

// Caller must hold s.mu.
func (s *Store) readLocked() Snapshot {
	snap := Snapshot{
		Credential: s.get(KeyToken),
		LoggedIn:   s.get(KeyIsLoggedIn) == "true",
	}
	if raw := s.get(KeyUser); raw != "" {
		var p Profile
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			snap.Profile = &p
		}
	}
	return snap
}
