package authsdk

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
)

func clientWith(sessions ...*Session) *ClientRecord {
	c := &ClientRecord{ID: "client_1"}
	for _, s := range sessions {
		c.Sessions = append(c.Sessions, *s)
	}
	if len(sessions) > 0 {
		c.LastActiveSessionID = sessions[0].ID
	}
	return c
}

func TestRestore(t *testing.T) {
	t.Parallel()

	t.Run("trusted cache is adopted without a request", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		cached := activeSession("sess_1", clock.Now())
		seedSessionCache(t, store, cached, clock, time.Hour)

		req := &mockRequester{}
		c := newTestClient(t, req, store, clock)
		created := countEvents(&c.Events().SessionCreated)

		require.NoError(t, c.Load(t.Context()))

		require.True(t, c.IsLoaded())
		require.True(t, c.IsSignedIn())
		require.Equal(t, "sess_1", c.Session().ID)
		require.Equal(t, "user_1", c.User().ID)
		require.Equal(t, 1, created())
		req.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)

		got, ok := c.sessions.Load(t.Context())
		require.True(t, ok)
		require.Equal(t, clock.Now().UnixMilli(), got.CachedAt.UnixMilli(), "cache timestamp refreshed")
		require.True(t, c.refresher.running())
	})

	t.Run("server copy overrides stale cache", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		cached := activeSession("sess_1", clock.Now())
		seedSessionCache(t, store, cached, clock, 7*time.Hour)

		fresh := activeSession("sess_1", clock.Now())
		fresh.User.FirstName = "Augusta"
		fresh.LastActiveOrganizationID = "org_1"

		req := &mockRequester{}
		req.expect(http.MethodGet, "/client").Return(envelope(t, clientWith(fresh), nil), nil).Once()
		c := newTestClient(t, req, store, clock)

		require.NoError(t, c.Load(t.Context()))

		require.True(t, c.IsSignedIn())
		require.Equal(t, "Augusta", c.User().FirstName)
		require.Equal(t, "org_1", c.Organization().ID)
		req.AssertExpectations(t)

		got, ok := c.sessions.Load(t.Context())
		require.True(t, ok)
		require.Equal(t, "Augusta", got.Session.User.FirstName)
	})

	t.Run("different active session on server wins", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		seedSessionCache(t, store, activeSession("sess_1", clock.Now()), clock, 7*time.Hour)

		ended := activeSession("sess_1", clock.Now())
		ended.Status = SessionEnded
		other := activeSession("sess_2", clock.Now())

		client := clientWith(ended, other)
		client.LastActiveSessionID = "sess_2"

		req := &mockRequester{}
		req.expect(http.MethodGet, "/client").Return(envelope(t, client, nil), nil).Once()
		c := newTestClient(t, req, store, clock)

		require.NoError(t, c.Load(t.Context()))
		require.Equal(t, "sess_2", c.Session().ID)
	})

	t.Run("offline fallback within window", func(t *testing.T) {
		for name, fetchErr := range map[string]error{
			"network": &NetworkError{Err: errors.New("dial tcp: connection refused")},
			"5xx":     &ProviderError{StatusCode: http.StatusServiceUnavailable, Code: ErrorCodeUnexpected},
		} {
			t.Run(name, func(t *testing.T) {
				clock := newTestClock()
				store := kvstore.NewMemory()
				seedSessionCache(t, store, activeSession("sess_1", clock.Now()), clock, 12*time.Hour)

				req := &mockRequester{}
				req.expect(http.MethodGet, "/client").Return(nil, fetchErr).Once()
				c := newTestClient(t, req, store, clock)

				require.NoError(t, c.Load(t.Context()))
				require.True(t, c.IsSignedIn())
				require.Equal(t, "sess_1", c.Session().ID)
			})
		}
	})

	t.Run("offline beyond window clears", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		seedSessionCache(t, store, activeSession("sess_1", clock.Now()), clock, 25*time.Hour)

		req := &mockRequester{}
		req.expect(http.MethodGet, "/client").Return(nil, &NetworkError{Err: errors.New("offline")}).Once()
		c := newTestClient(t, req, store, clock)

		require.NoError(t, c.Load(t.Context()))
		require.False(t, c.IsSignedIn())
		require.Nil(t, c.Session())
		require.Equal(t, 0, store.Len())
	})

	t.Run("rejection by provider clears", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		seedSessionCache(t, store, activeSession("sess_1", clock.Now()), clock, 7*time.Hour)

		req := &mockRequester{}
		req.expect(http.MethodGet, "/client").Return(nil, &ProviderError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeAuthenticationInvalid}).Once()
		c := newTestClient(t, req, store, clock)

		require.NoError(t, c.Load(t.Context()))
		require.False(t, c.IsSignedIn())
		require.Equal(t, 0, store.Len())
	})

	t.Run("session gone on server clears", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		seedSessionCache(t, store, activeSession("sess_1", clock.Now()), clock, 7*time.Hour)
		tokens := NewTokenCache(store, DefaultTokenSafetyMargin, clock.Now, nil)
		tokens.Save(t.Context(), "sess_1", "", signToken(t, "sess_1", clock.Now().Add(time.Hour)))

		req := &mockRequester{}
		req.expect(http.MethodGet, "/client").Return(envelope(t, clientWith(), nil), nil).Once()
		c := newTestClient(t, req, store, clock)
		destroyed := countEvents(&c.Events().SessionDestroyed)

		require.NoError(t, c.Load(t.Context()))
		require.False(t, c.IsSignedIn())
		require.Equal(t, 0, store.Len(), "session and token caches removed")
		require.Equal(t, 0, destroyed(), "nothing was adopted")
	})

	t.Run("no cache adopts last active server session", func(t *testing.T) {
		clock := newTestClock()
		first := activeSession("sess_1", clock.Now())
		last := activeSession("sess_2", clock.Now())
		client := clientWith(first, last)
		client.LastActiveSessionID = "sess_2"

		req := &mockRequester{}
		req.expect(http.MethodGet, "/client").Return(envelope(t, client, nil), nil).Once()
		c := newTestClient(t, req, kvstore.NewMemory(), clock)

		require.NoError(t, c.Load(t.Context()))
		require.Equal(t, "sess_2", c.Session().ID)
	})

	t.Run("no cache and null client stays signed out", func(t *testing.T) {
		clock := newTestClock()
		req := &mockRequester{}
		req.expect(http.MethodGet, "/client").Return(&Envelope{StatusCode: 200, Response: []byte("null")}, nil).Once()
		c := newTestClient(t, req, kvstore.NewMemory(), clock)

		require.NoError(t, c.Load(t.Context()))
		require.False(t, c.IsSignedIn())
		require.False(t, c.refresher.running())
	})

	t.Run("no cache and provider unreachable stays signed out", func(t *testing.T) {
		clock := newTestClock()
		req := &mockRequester{}
		req.expect(http.MethodGet, "/client").Return(nil, &NetworkError{Err: errors.New("offline")}).Once()
		c := newTestClient(t, req, kvstore.NewMemory(), clock)

		require.NoError(t, c.Load(t.Context()))
		require.False(t, c.IsSignedIn())
	})

	t.Run("expired cached session falls through to provider", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		expired := activeSession("sess_1", clock.Now())
		expired.ExpireAt = clock.Now().Add(-time.Second).UnixMilli()
		seedSessionCache(t, store, expired, clock, time.Minute)

		req := &mockRequester{}
		req.expect(http.MethodGet, "/client").Return(envelope(t, clientWith(), nil), nil).Once()
		c := newTestClient(t, req, store, clock)

		require.NoError(t, c.Load(t.Context()))
		require.False(t, c.IsSignedIn())
		req.AssertExpectations(t)
	})

	t.Run("load after dispose", func(t *testing.T) {
		c := newTestClient(t, &mockRequester{}, kvstore.NewMemory(), newTestClock())
		c.Dispose()
		require.ErrorIs(t, c.Load(t.Context()), ErrDisposed)
	})
}
