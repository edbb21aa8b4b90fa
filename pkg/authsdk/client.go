package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
)

const (
	// DefaultTrustWindow is how long a cached session is adopted without
	// asking the provider.
	DefaultTrustWindow = 6 * time.Hour

	// DefaultOfflineWindow is how long a cached session may still be adopted
	// when the provider cannot be reached.
	DefaultOfflineWindow = 24 * time.Hour

	// DevBrowserKey is the storage key of the development-instance token.
	DevBrowserKey = "__frontauth_dev_browser"

	defaultHTTPTimeout = 10 * time.Second
)

// Config configures an SDKClient. Either PublishableKey or Domain must be set.
type Config struct {
	// PublishableKey identifies the instance; its frontend API host is used
	// when Domain is empty
	PublishableKey string

	// Domain is the frontend API host, e.g. "clerk.example.com". A value with
	// a scheme ("http://127.0.0.1:8080") is used as the base URL verbatim.
	Domain string

	// Development forces development-instance behaviour. It is implied by a
	// pk_test_ key or a development domain.
	Development bool

	// Storage persists the session, tokens and dev-browser token.
	// Defaults to an in-memory store.
	Storage kvstore.Store

	// HTTPClient performs requests. A cookie jar is attached when it has none.
	HTTPClient *http.Client

	// Requester replaces the HTTP transport entirely
	Requester Requester

	Logger *slog.Logger

	// Now is the clock; defaults to time.Now
	Now func() time.Time

	TrustWindow       time.Duration
	OfflineWindow     time.Duration
	TokenSafetyMargin time.Duration
	RefreshInterval   time.Duration

	APIVersion    string
	ClientVersion string
}

// SDKClient is the entry point of the SDK. It owns the authentication state
// of one device: the current session, its user and active organization.
// All methods are safe for concurrent use.
type SDKClient struct {
	transport Requester
	http      *HTTPTransport
	store     kvstore.Store
	sessions  *SessionCache
	tokens    *TokenCache
	refresher *refresher
	events    Events
	logger    *slog.Logger
	now       func() time.Time

	development   bool
	trustWindow   time.Duration
	offlineWindow time.Duration

	mu       sync.RWMutex
	state    authState
	loaded   bool
	disposed bool
}

// New builds an SDKClient from cfg. It performs no I/O; call Load to restore
// a persisted session.
func New(cfg Config) (*SDKClient, error) {
	domain := cfg.Domain
	development := cfg.Development
	if cfg.PublishableKey != "" {
		pk, err := ParsePublishableKey(cfg.PublishableKey)
		if err != nil {
			return nil, err
		}
		if domain == "" {
			domain = pk.FrontendAPI
		}
		development = development || pk.Development
	}
	if domain == "" && cfg.Requester == nil {
		return nil, errors.New("authsdk: either PublishableKey or Domain is required")
	}
	development = development || IsDevelopmentDomain(domain)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "authsdk")

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	store := cfg.Storage
	if store == nil {
		store = kvstore.NewMemory()
	}

	c := &SDKClient{
		store:         store,
		logger:        logger,
		now:           now,
		development:   development,
		trustWindow:   durationOrDefault(cfg.TrustWindow, DefaultTrustWindow),
		offlineWindow: durationOrDefault(cfg.OfflineWindow, DefaultOfflineWindow),
	}
	c.sessions = NewSessionCache(store, now, logger)
	c.tokens = NewTokenCache(store, durationOrDefault(cfg.TokenSafetyMargin, DefaultTokenSafetyMargin), now, logger)
	c.refresher = newRefresher(cfg.RefreshInterval, c.refreshTick, logger)

	if cfg.Requester != nil {
		c.transport = cfg.Requester
		return c, nil
	}

	httpClient, err := withCookieJar(cfg.HTTPClient)
	if err != nil {
		return nil, err
	}
	c.http = NewHTTPTransport(httpClient, BaseURL(domain), development, logger)
	c.http.SetVersions(cfg.APIVersion, cfg.ClientVersion)
	c.transport = c.http
	return c, nil
}

// withCookieJar returns a client that keeps the provider's client cookie.
// A caller-supplied client without a jar is copied, not mutated.
func withCookieJar(hc *http.Client) (*http.Client, error) {
	if hc == nil {
		hc = &http.Client{Timeout: defaultHTTPTimeout}
	} else {
		clone := *hc
		hc = &clone
	}
	if hc.Jar != nil {
		return hc, nil
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	hc.Jar = jar
	return hc, nil
}

func durationOrDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Load prepares the client: on development instances it obtains a
// dev-browser token, then it restores any persisted session. Restoration
// failures are logged, never returned; Load only fails after Dispose.
func (c *SDKClient) Load(ctx context.Context) error {
	if c.isDisposed() {
		return precondition("load", ErrDisposed, "")
	}

	if c.http != nil && c.development {
		if err := c.ensureDevBrowser(ctx); err != nil {
			c.logger.WarnContext(ctx, "failed to obtain dev browser token", "error", err)
		}
	}

	c.restore(ctx)

	c.mu.Lock()
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// ensureDevBrowser loads the dev-browser token from storage, creating one
// through the provider when none is stored.
func (c *SDKClient) ensureDevBrowser(ctx context.Context) error {
	if tok, err := c.store.GetString(ctx, DevBrowserKey); err == nil && tok != "" {
		c.http.SetDevBrowserToken(tok)
		return nil
	}

	env, err := c.transport.Request(ctx, Request{Method: http.MethodPost, Path: "/dev_browser"})
	if err != nil {
		return err
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Response, &body); err != nil || body.Token == "" {
		return &MalformedResponseError{StatusCode: env.StatusCode, Err: errors.New("dev browser token missing")}
	}

	c.http.SetDevBrowserToken(body.Token)
	if err := c.store.SetString(ctx, DevBrowserKey, body.Token); err != nil {
		c.logger.WarnContext(ctx, "failed to persist dev browser token", "error", err)
	}
	return nil
}

// Dispose stops the refresher. The persisted session is kept so a later
// client can restore it.
func (c *SDKClient) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.mu.Unlock()

	c.refresher.stopAndWait()
}

func (c *SDKClient) isDisposed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disposed
}

// Events returns the client's notification signals.
func (c *SDKClient) Events() *Events {
	return &c.events
}

// IsLoaded reports whether Load has completed.
func (c *SDKClient) IsLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// IsSignedIn reports whether there is an active, unexpired session.
func (c *SDKClient) IsSignedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.session.IsActive(c.now())
}

// Session returns a copy of the current session, or nil.
func (c *SDKClient) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state.session == nil {
		return nil
	}
	s := *c.state.session
	return &s
}

// User returns a copy of the current user, or nil.
func (c *SDKClient) User() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state.user == nil {
		return nil
	}
	u := *c.state.user
	return &u
}

// Organization returns a copy of the active organization, or nil.
func (c *SDKClient) Organization() *Organization {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state.organization == nil {
		return nil
	}
	o := *c.state.organization
	return &o
}

// SignIn starts a new sign-in flow.
func (c *SDKClient) SignIn() *SignInFlow {
	return newSignInFlow(c.transport, c.completeAttempt, c.logger)
}

// SignUp starts a new sign-up flow.
func (c *SDKClient) SignUp() *SignUpFlow {
	return newSignUpFlow(c.transport, c.completeAttempt, c.logger)
}
