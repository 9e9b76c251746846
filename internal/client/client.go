// ABOUTME: HTTP client for the pickbazar storefront API
// ABOUTME: Owns the cookie jar and the authenticating transport chain

package client

import (
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/markalston/pickbazar/internal/auth"
	"github.com/markalston/pickbazar/internal/session"
)

// APIPrefix is prepended to every endpoint path
const APIPrefix = "/api/v1"

// DefaultTimeout bounds each API call
const DefaultTimeout = 30 * time.Second

// Client is the API client for the storefront backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
	tracker    *auth.Tracker
	resolver   *auth.Resolver
	logger     *slog.Logger
	timeout    time.Duration
	transport  http.RoundTripper
	catalogSF  singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithSessionStore sets the session store. Without one the session lives in memory.
func WithSessionStore(s *session.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithTracker sets the session state tracker
func WithTracker(t *auth.Tracker) Option {
	return func(c *Client) { c.tracker = t }
}

// WithResolver overrides the credential resolution strategies
func WithResolver(r *auth.Resolver) Option {
	return func(c *Client) { c.resolver = r }
}

// WithLogger sets the logger for request and session events
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTransport sets the base transport under the middleware chain
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = session.NewStore(nil, session.WithLogger(c.logger))
	}
	if c.tracker == nil {
		initial := auth.StateAnonymous
		if c.store.Read().LoggedIn {
			initial = auth.StateAuthenticated
		}
		c.tracker = auth.NewTracker(initial)
	}

	// cookiejar.New only fails on a bad PublicSuffixList option
	jar, _ := cookiejar.New(nil)
	if u, err := url.Parse(c.baseURL); err == nil {
		c.store.AttachCookieJar(jar, u)
	}

	c.httpClient = &http.Client{
		Timeout: c.timeout,
		Jar:     jar,
		Transport: Chain(c.transport,
			LogRequests(c.logger),
			NewAuthenticator(c.baseURL, c.store, c.resolver, c.logger),
		),
	}
	return c
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the session store the client authenticates with
func (c *Client) Session() *session.Store {
	return c.store
}

// State returns the current session state
func (c *Client) State() auth.State {
	return c.tracker.State()
}

func (c *Client) fire(e auth.Event) {
	if _, err := c.tracker.Fire(e); err != nil {
		c.logger.Debug("Ignoring session event", "error", err)
	}
}
