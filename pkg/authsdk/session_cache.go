package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
)

// SessionCacheKey is the storage key of the persisted session envelope.
const SessionCacheKey = "__frontauth_session"

// CachedSession is a session together with the time it was written.
type CachedSession struct {
	Session  *Session
	CachedAt time.Time
}

type sessionEnvelope struct {
	Session  json.RawMessage `json:"session"`
	CachedAt int64           `json:"cached_at"`
}

// SessionCache persists the current session so a later process can restore
// it. Storage failures are logged and swallowed.
type SessionCache struct {
	store  kvstore.Store
	now    func() time.Time
	logger *slog.Logger
}

// NewSessionCache returns a cache backed by store.
func NewSessionCache(store kvstore.Store, now func() time.Time, logger *slog.Logger) *SessionCache {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionCache{store: store, now: now, logger: logger}
}

// Save writes s stamped with the current time.
func (c *SessionCache) Save(ctx context.Context, s *Session) {
	raw, err := json.Marshal(s)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to encode session", "error", err)
		return
	}
	env, err := json.Marshal(sessionEnvelope{Session: raw, CachedAt: c.now().UnixMilli()})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to encode session envelope", "error", err)
		return
	}
	if err := c.store.SetString(ctx, SessionCacheKey, string(env)); err != nil {
		c.logger.WarnContext(ctx, "failed to persist session", "session_id", s.ID, "error", err)
	}
}

// Load returns the cached session. An entry that is unreadable, or whose
// session has expired, is removed and reported as absent.
func (c *SessionCache) Load(ctx context.Context) (*CachedSession, bool) {
	raw, err := c.store.GetString(ctx, SessionCacheKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			c.logger.WarnContext(ctx, "failed to read cached session", "error", err)
		}
		return nil, false
	}

	var env sessionEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		c.logger.WarnContext(ctx, "discarding corrupt session cache", "error", err)
		c.Clear(ctx)
		return nil, false
	}
	s, err := decodeResource[Session](env.Session)
	if err != nil {
		c.logger.WarnContext(ctx, "discarding corrupt session cache", "error", err)
		c.Clear(ctx)
		return nil, false
	}

	if c.now().UnixMilli() >= s.ExpireAt {
		c.logger.DebugContext(ctx, "discarding expired session cache", "session_id", s.ID)
		c.Clear(ctx)
		return nil, false
	}

	return &CachedSession{Session: s, CachedAt: time.UnixMilli(env.CachedAt)}, true
}

// Clear removes the cached session. It is safe to call repeatedly.
func (c *SessionCache) Clear(ctx context.Context) {
	if err := c.store.Remove(ctx, SessionCacheKey); err != nil {
		c.logger.WarnContext(ctx, "failed to clear session cache", "error", err)
	}
}
