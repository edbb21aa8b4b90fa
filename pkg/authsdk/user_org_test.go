package authsdk

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
)

func TestUpdateUser(t *testing.T) {
	t.Parallel()

	clock := newTestClock()
	updated := testUser()
	updated.FirstName = "Augusta"
	updated.OrganizationMemberships = nil

	req := &mockRequester{}
	req.On("Request", mock.Anything, mock.MatchedBy(func(r Request) bool {
		return r.Method == http.MethodPatch && r.Path == "/me" &&
			bodyHas("first_name", "Augusta")(r) && !r.Body.Has("last_name")
	})).Return(envelope(t, updated, nil), nil).Once()
	c := signedInClient(t, req, kvstore.NewMemory(), clock)

	var got *User
	c.Events().UserUpdated.Subscribe(func(u *User) { got = u })

	name := "Augusta"
	u, err := c.UpdateUser(t.Context(), UserPatch{FirstName: &name})
	require.NoError(t, err)
	require.Equal(t, "Augusta", u.FirstName)
	require.Same(t, u, got)
	require.Equal(t, "Augusta", c.User().FirstName)
	require.Equal(t, "org_1", c.User().OrganizationMemberships[0].Organization.ID, "memberships kept")

	cached, ok := c.sessions.Load(t.Context())
	require.True(t, ok)
	require.Equal(t, "Augusta", cached.Session.User.FirstName)
}

func TestGetUserSignedOut(t *testing.T) {
	t.Parallel()

	req := &mockRequester{}
	c := newTestClient(t, req, kvstore.NewMemory(), newTestClock())
	_, err := c.GetUser(t.Context())
	require.ErrorIs(t, err, ErrNoActiveSession)
	req.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
}

func TestOrganizations(t *testing.T) {
	t.Parallel()

	t.Run("list", func(t *testing.T) {
		clock := newTestClock()
		list := OrganizationList{Data: testUser().OrganizationMemberships, TotalCount: 1}

		req := &mockRequester{}
		req.On("Request", mock.Anything, mock.MatchedBy(func(r Request) bool {
			return r.Path == "/me/organization_memberships" && r.Query.Get("limit") == "20"
		})).Return(envelope(t, list, nil), nil).Once()
		c := signedInClient(t, req, kvstore.NewMemory(), clock)

		got, err := c.ListOrganizations(t.Context(), 20, 0)
		require.NoError(t, err)
		require.Equal(t, 1, got.TotalCount)
		require.Equal(t, "engines", got.Organizations()[0].Slug)
	})

	t.Run("create", func(t *testing.T) {
		clock := newTestClock()
		req := &mockRequester{}
		req.On("Request", mock.Anything, mock.MatchedBy(func(r Request) bool {
			return r.Path == "/organizations" && bodyHas("name", "Difference Engines")(r) && !r.Body.Has("slug")
		})).Return(envelope(t, Organization{ID: "org_2", Name: "Difference Engines", Slug: "difference-engines"}, nil), nil).Once()
		c := signedInClient(t, req, kvstore.NewMemory(), clock)

		org, err := c.CreateOrganization(t.Context(), "Difference Engines", "")
		require.NoError(t, err)
		require.Equal(t, "org_2", org.ID)
	})

	t.Run("switch active organization", func(t *testing.T) {
		clock := newTestClock()
		store := kvstore.NewMemory()
		switched := activeSession("sess_1", clock.Now())
		switched.LastActiveOrganizationID = "org_1"

		req := &mockRequester{}
		req.On("Request", mock.Anything, mock.MatchedBy(func(r Request) bool {
			return r.Path == "/client/sessions/sess_1/touch" && bodyHas("active_organization_id", "org_1")(r)
		})).Return(envelope(t, switched, nil), nil).Once()
		c := signedInClient(t, req, store, clock)
		c.tokens.Save(t.Context(), "sess_1", "", signToken(t, "sess_1", clock.Now().Add(time.Hour)))

		var got *Organization
		c.Events().OrganizationUpdated.Subscribe(func(o *Organization) { got = o })

		require.NoError(t, c.SetActiveOrganization(t.Context(), "org_1"))
		require.Equal(t, "org_1", c.Organization().ID)
		require.Equal(t, "org_1", got.ID)

		_, ok := c.tokens.Get(t.Context(), "sess_1", "")
		require.False(t, ok, "tokens dropped after switch")
	})

	t.Run("signed out", func(t *testing.T) {
		req := &mockRequester{}
		c := newTestClient(t, req, kvstore.NewMemory(), newTestClock())

		_, err := c.ListOrganizations(t.Context(), 0, 0)
		require.ErrorIs(t, err, ErrNoActiveSession)
		_, err = c.CreateOrganization(t.Context(), "x", "")
		require.ErrorIs(t, err, ErrNoActiveSession)
		require.ErrorIs(t, c.SetActiveOrganization(t.Context(), "org_1"), ErrNoActiveSession)
		req.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
	})
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	s := activeSession("sess_1", testEpoch)
	s.LastActiveOrganizationID = "org_1"
	s.User.OrganizationMemberships[0].Organization.PublicMetadata = map[string]any{"plan": "pro", "seats": float64(5)}

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	got, err := decodeResource[Session](raw)
	require.NoError(t, err)
	require.Equal(t, s, got)

	require.True(t, got.IsActive(testEpoch))
	require.False(t, got.IsActive(time.UnixMilli(got.ExpireAt)))
	got.Status = SessionEnded
	require.False(t, got.IsActive(testEpoch))
}

func TestDecodeResourceRejectsIncomplete(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{``, `null`, `{}`, `{"id":"sess_1"}`, `{"id":"sess_1","status":"active","user":{}}`, `[1]`} {
		_, err := decodeResource[Session](json.RawMessage(raw))
		var me *MalformedResponseError
		require.ErrorAs(t, err, &me, raw)
	}
}
