package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/frontauth/pkg/jwtx"
	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
)

const (
	// TokenCacheKey is the storage key of the persisted token map.
	TokenCacheKey = "__frontauth_tokens"

	// DefaultTokenSafetyMargin is how long before expiry a cached token is
	// treated as already expired.
	DefaultTokenSafetyMargin = 5 * time.Minute

	tokenKeySeparator = "|"
)

// CachedToken is one persisted session token.
type CachedToken struct {
	JWT       string `json:"jwt"`
	ExpiresAt int64  `json:"expires_at"`
	CachedAt  int64  `json:"cached_at"`
}

// TokenCache keeps session tokens keyed by session id and template, persisted
// as a single map so they survive restarts. Storage failures are logged and
// swallowed.
type TokenCache struct {
	store  kvstore.Store
	now    func() time.Time
	margin time.Duration
	logger *slog.Logger

	mu sync.Mutex
}

// NewTokenCache returns a cache backed by store. Tokens expiring within
// margin of now are never returned.
func NewTokenCache(store kvstore.Store, margin time.Duration, now func() time.Time, logger *slog.Logger) *TokenCache {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenCache{store: store, now: now, margin: margin, logger: logger}
}

func tokenKey(sessionID, template string) string {
	return sessionID + tokenKeySeparator + template
}

// Save stores token under (sessionID, template). A token whose expiry cannot
// be read is ignored.
func (c *TokenCache) Save(ctx context.Context, sessionID, template, token string) {
	exp, err := jwtx.ExpiryUnverified(token)
	if err != nil {
		c.logger.DebugContext(ctx, "not caching unreadable token", "session_id", sessionID, "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.load(ctx)
	entries[tokenKey(sessionID, template)] = CachedToken{
		JWT:       token,
		ExpiresAt: exp.UnixMilli(),
		CachedAt:  c.now().UnixMilli(),
	}
	c.persist(ctx, entries)
}

// Get returns the cached token for (sessionID, template) when it remains
// valid for longer than the safety margin. Stale entries are evicted.
func (c *TokenCache) Get(ctx context.Context, sessionID, template string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.load(ctx)
	key := tokenKey(sessionID, template)
	entry, ok := entries[key]
	if !ok {
		return "", false
	}

	remaining := time.Duration(entry.ExpiresAt-c.now().UnixMilli()) * time.Millisecond
	if remaining > c.margin {
		return entry.JWT, true
	}

	delete(entries, key)
	c.persist(ctx, entries)
	return "", false
}

// Clear evicts every token of sessionID, or every token when sessionID is "".
func (c *TokenCache) Clear(ctx context.Context, sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sessionID == "" {
		if err := c.store.Remove(ctx, TokenCacheKey); err != nil {
			c.logger.WarnContext(ctx, "failed to clear token cache", "error", err)
		}
		return
	}

	entries := c.load(ctx)
	prefix := sessionID + tokenKeySeparator
	changed := false
	for key := range entries {
		if strings.HasPrefix(key, prefix) {
			delete(entries, key)
			changed = true
		}
	}
	if changed {
		c.persist(ctx, entries)
	}
}

func (c *TokenCache) load(ctx context.Context) map[string]CachedToken {
	entries := map[string]CachedToken{}
	raw, err := c.store.GetString(ctx, TokenCacheKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			c.logger.WarnContext(ctx, "failed to read token cache", "error", err)
		}
		return entries
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		c.logger.WarnContext(ctx, "discarding corrupt token cache", "error", err)
		return map[string]CachedToken{}
	}
	return entries
}

func (c *TokenCache) persist(ctx context.Context, entries map[string]CachedToken) {
	if len(entries) == 0 {
		if err := c.store.Remove(ctx, TokenCacheKey); err != nil {
			c.logger.WarnContext(ctx, "failed to clear token cache", "error", err)
		}
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to encode token cache", "error", err)
		return
	}
	if err := c.store.SetString(ctx, TokenCacheKey, string(raw)); err != nil {
		c.logger.WarnContext(ctx, "failed to persist token cache", "error", err)
	}
}
