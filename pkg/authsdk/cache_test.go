package authsdk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
	"github.com/aussiebroadwan/frontauth/pkg/slogx"
)

func TestSessionCache(t *testing.T) {
	t.Parallel()

	t.Run("save then load", func(t *testing.T) {
		clock := newTestClock()
		cache := NewSessionCache(kvstore.NewMemory(), clock.Now, slogx.Discard())
		s := activeSession("sess_1", clock.Now())

		cache.Save(t.Context(), s)
		clock.Advance(time.Minute)

		got, ok := cache.Load(t.Context())
		require.True(t, ok)
		require.Equal(t, s, got.Session)
		require.Equal(t, testEpoch.UnixMilli(), got.CachedAt.UnixMilli())
	})

	t.Run("expired session is removed", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		cache := NewSessionCache(store, clock.Now, slogx.Discard())
		s := activeSession("sess_1", clock.Now())
		s.ExpireAt = clock.Now().Add(time.Hour).UnixMilli()

		cache.Save(t.Context(), s)
		clock.Advance(time.Hour)

		_, ok := cache.Load(t.Context())
		require.False(t, ok)
		require.Equal(t, 0, store.Len())
	})

	t.Run("corrupt entry is removed", func(t *testing.T) {
		store := kvstore.NewMemory()
		require.NoError(t, store.SetString(t.Context(), SessionCacheKey, "{not json"))
		cache := NewSessionCache(store, time.Now, slogx.Discard())

		_, ok := cache.Load(t.Context())
		require.False(t, ok)
		require.Equal(t, 0, store.Len())
	})

	t.Run("entry without session id is removed", func(t *testing.T) {
		store := kvstore.NewMemory()
		require.NoError(t, store.SetString(t.Context(), SessionCacheKey, `{"session":{"status":"active"},"cached_at":1}`))
		cache := NewSessionCache(store, time.Now, slogx.Discard())

		_, ok := cache.Load(t.Context())
		require.False(t, ok)
		require.Equal(t, 0, store.Len())
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		store := kvstore.NewMemory()
		cache := NewSessionCache(store, time.Now, slogx.Discard())
		cache.Save(t.Context(), activeSession("sess_1", time.Now()))

		cache.Clear(t.Context())
		cache.Clear(t.Context())

		_, ok := cache.Load(t.Context())
		require.False(t, ok)
	})
}

func TestTokenCache(t *testing.T) {
	t.Parallel()

	const (
		margin   = DefaultTokenSafetyMargin
		tokenTTL = time.Hour
	)

	t.Run("valid token is served", func(t *testing.T) {
		clock := newTestClock()
		cache := NewTokenCache(kvstore.NewMemory(), margin, clock.Now, slogx.Discard())
		tok := signToken(t, "sess_1", clock.Now().Add(tokenTTL))

		cache.Save(t.Context(), "sess_1", "", tok)
		got, ok := cache.Get(t.Context(), "sess_1", "")
		require.True(t, ok)
		require.Equal(t, tok, got)

		_, ok = cache.Get(t.Context(), "sess_1", "supabase")
		require.False(t, ok)
	})

	t.Run("margin boundary", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		cache := NewTokenCache(store, margin, clock.Now, slogx.Discard())
		tok := signToken(t, "sess_1", clock.Now().Add(tokenTTL))
		cache.Save(t.Context(), "sess_1", "", tok)

		clock.Advance(tokenTTL - margin - time.Millisecond)
		_, ok := cache.Get(t.Context(), "sess_1", "")
		require.True(t, ok, "just outside the margin")

		clock.Advance(time.Millisecond)
		_, ok = cache.Get(t.Context(), "sess_1", "")
		require.False(t, ok, "exactly at the margin")
		require.Equal(t, 0, store.Len(), "stale entry evicted")
	})

	t.Run("token inside the default margin is not served", func(t *testing.T) {
		clock := newTestClock()
		cache := NewTokenCache(kvstore.NewMemory(), margin, clock.Now, slogx.Discard())
		cache.Save(t.Context(), "sess_1", "", signToken(t, "sess_1", clock.Now().Add(2*time.Minute)))

		_, ok := cache.Get(t.Context(), "sess_1", "")
		require.False(t, ok, "2m left is within a 5m margin")
	})

	t.Run("unreadable token is not cached", func(t *testing.T) {
		store := kvstore.NewMemory()
		cache := NewTokenCache(store, margin, time.Now, slogx.Discard())

		cache.Save(t.Context(), "sess_1", "", "not-a-jwt")
		require.Equal(t, 0, store.Len())
	})

	t.Run("clear one session", func(t *testing.T) {
		clock := newTestClock()
		cache := NewTokenCache(kvstore.NewMemory(), margin, clock.Now, slogx.Discard())
		exp := clock.Now().Add(tokenTTL)
		cache.Save(t.Context(), "sess_1", "", signToken(t, "sess_1", exp))
		cache.Save(t.Context(), "sess_1", "hasura", signToken(t, "sess_1", exp))
		cache.Save(t.Context(), "sess_2", "", signToken(t, "sess_2", exp))

		cache.Clear(t.Context(), "sess_1")

		_, ok := cache.Get(t.Context(), "sess_1", "")
		require.False(t, ok)
		_, ok = cache.Get(t.Context(), "sess_1", "hasura")
		require.False(t, ok)
		_, ok = cache.Get(t.Context(), "sess_2", "")
		require.True(t, ok)
	})

	t.Run("clear all", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		cache := NewTokenCache(store, margin, clock.Now, slogx.Discard())
		exp := clock.Now().Add(tokenTTL)
		cache.Save(t.Context(), "sess_1", "", signToken(t, "sess_1", exp))
		cache.Save(t.Context(), "sess_2", "", signToken(t, "sess_2", exp))

		cache.Clear(t.Context(), "")
		cache.Clear(t.Context(), "")
		require.Equal(t, 0, store.Len())
	})

	t.Run("survives a new cache over the same store", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		tok := signToken(t, "sess_1", clock.Now().Add(tokenTTL))
		NewTokenCache(store, margin, clock.Now, slogx.Discard()).Save(t.Context(), "sess_1", "", tok)

		got, ok := NewTokenCache(store, margin, clock.Now, slogx.Discard()).Get(t.Context(), "sess_1", "")
		require.True(t, ok)
		require.Equal(t, tok, got)
	})
}
