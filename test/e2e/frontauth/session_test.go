package frontauth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stubhttp "github.com/aussiebroadwan/frontauth/internal/providerstub/http"
	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/httpx"
	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
)

func TestToken(t *testing.T) {
	t.Parallel()

	s := startStub(t, nil)
	s.seedUser(t, service.UserSpec{})
	c := s.newSDK(t, kvstore.NewMemory())
	signIn(t, c)

	tok, err := c.GetToken(t.Context(), "")
	require.NoError(t, err)

	claims, err := s.verifier(t).Verify(tok, time.Now())
	require.NoError(t, err)
	require.Equal(t, c.Session().ID, claims.SID)
	require.Equal(t, c.User().ID, claims.Subject)
	require.Empty(t, claims.OrgID)

	again, err := c.GetToken(t.Context(), "")
	require.NoError(t, err)
	require.Equal(t, tok, again, "second call should be served from the cache")

	templated, err := c.GetToken(t.Context(), "backend")
	require.NoError(t, err)
	claims, err = s.verifier(t).Verify(templated, time.Now())
	require.NoError(t, err)
	require.Equal(t, "backend", claims.Template)
}

func TestRestore(t *testing.T) {
	t.Parallel()

	t.Run("trusted cache needs no sign-in", func(t *testing.T) {
		s := startStub(t, nil)
		s.seedUser(t, service.UserSpec{})
		store := kvstore.NewMemory()

		first := s.newSDK(t, store)
		signIn(t, first)
		sid := first.Session().ID
		first.Dispose()

		second := s.newSDK(t, store)
		require.True(t, second.IsSignedIn())
		require.Equal(t, sid, second.Session().ID)

		_, err := second.GetToken(t.Context(), "")
		require.NoError(t, err)
	})

	t.Run("stale cache is confirmed with the provider", func(t *testing.T) {
		s := startStub(t, nil)
		s.seedUser(t, service.UserSpec{})
		store := kvstore.NewMemory()
		noTrust := func(cfg *authsdk.Config) { cfg.TrustWindow = time.Nanosecond }

		first := s.newSDK(t, store, noTrust)
		signIn(t, first)
		sid := first.Session().ID
		first.Dispose()

		second := s.newSDK(t, store, noTrust)
		require.True(t, second.IsSignedIn())
		require.Equal(t, sid, second.Session().ID)
	})

	t.Run("session ended elsewhere is discarded", func(t *testing.T) {
		s := startStub(t, nil)
		s.seedUser(t, service.UserSpec{})
		store := kvstore.NewMemory()
		noTrust := func(cfg *authsdk.Config) { cfg.TrustWindow = time.Nanosecond }

		first := s.newSDK(t, store, noTrust)
		signIn(t, first)
		require.NoError(t, first.SignOutAll(t.Context()))
		first.Dispose()

		second := s.newSDK(t, store, noTrust)
		require.False(t, second.IsSignedIn())
	})
}

func TestOrganizations(t *testing.T) {
	t.Parallel()

	s := startStub(t, nil)
	s.seedUser(t, service.UserSpec{})
	c := s.newSDK(t, kvstore.NewMemory())
	signIn(t, c)

	var switched []*authsdk.Organization
	c.Events().OrganizationUpdated.Subscribe(func(o *authsdk.Organization) { switched = append(switched, o) })

	org, err := c.CreateOrganization(t.Context(), "Analytical Engines", "")
	require.NoError(t, err)
	require.Equal(t, "analytical-engines", org.Slug)

	list, err := c.ListOrganizations(t.Context(), 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, list.TotalCount)
	require.Equal(t, org.ID, list.Organizations()[0].ID)

	before, err := c.GetToken(t.Context(), "")
	require.NoError(t, err)

	require.NoError(t, c.SetActiveOrganization(t.Context(), org.ID))
	require.NotNil(t, c.Organization())
	require.Equal(t, org.ID, c.Organization().ID)
	require.NotEmpty(t, switched)

	tok, err := c.GetToken(t.Context(), "")
	require.NoError(t, err)
	require.NotEqual(t, before, tok, "switching organizations must drop cached tokens")
	claims, err := s.verifier(t).Verify(tok, time.Now())
	require.NoError(t, err)
	require.Equal(t, org.ID, claims.OrgID)
	require.Equal(t, "org:admin", claims.OrgRole)

	require.NoError(t, c.SetActiveOrganization(t.Context(), ""))
	require.Nil(t, c.Organization())
}

func TestUser(t *testing.T) {
	t.Parallel()

	s := startStub(t, nil)
	s.seedUser(t, service.UserSpec{FirstName: "Ada"})
	c := s.newSDK(t, kvstore.NewMemory())
	signIn(t, c)

	name := "Augusta"
	u, err := c.UpdateUser(t.Context(), authsdk.UserPatch{FirstName: &name})
	require.NoError(t, err)
	require.Equal(t, "Augusta", u.FirstName)
	require.Equal(t, "Augusta", c.User().FirstName)

	u, err = c.GetUser(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Augusta", u.FirstName)
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	s := startStub(t, nil)
	s.seedUser(t, service.UserSpec{})
	store := kvstore.NewMemory()
	c := s.newSDK(t, store)
	signIn(t, c)
	sid := c.Session().ID

	var destroyed []string
	c.Events().SessionDestroyed.Subscribe(func(id string) { destroyed = append(destroyed, id) })

	require.NoError(t, c.SignOut(t.Context()))
	require.False(t, c.IsSignedIn())
	require.Equal(t, []string{sid}, destroyed)

	_, err := c.GetToken(t.Context(), "")
	var pe *authsdk.PreconditionError
	require.True(t, errors.As(err, &pe))
	require.ErrorIs(t, err, authsdk.ErrNoActiveSession)

	// Signing out twice is harmless.
	require.NoError(t, c.SignOut(t.Context(), sid))

	// The next process starts signed out too.
	next := s.newSDK(t, store)
	require.False(t, next.IsSignedIn())
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	s := startStub(t, func(r *stubhttp.Router) {
		r.AttemptLimit = httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Hour, Burst: 3}
	})
	s.seedUser(t, service.UserSpec{})
	c := s.newSDK(t, kvstore.NewMemory())

	var last error
	for range 5 {
		_, last = c.SignIn().CreateWithPassword(t.Context(), userEmail, "not-the-password")
	}
	require.Equal(t, authsdk.ErrorCodeTooManyRequests, authsdk.ErrorCode(last))
	require.False(t, authsdk.IsSessionInvalid(last))
}

func TestDevBrowser(t *testing.T) {
	t.Parallel()

	s := startStub(t, nil)
	store := kvstore.NewMemory()
	s.newSDK(t, store)

	tok, err := store.GetString(t.Context(), authsdk.DevBrowserKey)
	require.NoError(t, err)
	_, ok := s.Service.ClientForDevBrowser(tok)
	require.True(t, ok)

	// A second load reuses the stored token.
	s.newSDK(t, store)
	again, err := store.GetString(t.Context(), authsdk.DevBrowserKey)
	require.NoError(t, err)
	require.Equal(t, tok, again)
}
