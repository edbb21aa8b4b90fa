package authsdk

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
	"github.com/aussiebroadwan/frontauth/pkg/slogx"
)

var testEpoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// mockRequester records every request so tests can assert on the network
// traffic a call produced, including that there was none.
type mockRequester struct {
	mock.Mock
}

func (m *mockRequester) Request(ctx context.Context, req Request) (*Envelope, error) {
	args := m.Called(ctx, req)
	env, _ := args.Get(0).(*Envelope)
	return env, args.Error(1)
}

func (m *mockRequester) expect(method, path string) *mock.Call {
	return m.On("Request", mock.Anything, mock.MatchedBy(func(r Request) bool {
		return r.Method == method && r.Path == path
	}))
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testEpoch}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestClient(t *testing.T, r Requester, store kvstore.Store, clock *testClock) *SDKClient {
	t.Helper()
	c, err := New(Config{
		Domain:    "clerk.example.com",
		Requester: r,
		Storage:   store,
		Now:       clock.Now,
		Logger:    slogx.Discard(),
	})
	require.NoError(t, err)
	t.Cleanup(c.Dispose)
	return c
}

func envelope(t *testing.T, response, client any) *Envelope {
	t.Helper()
	env := &Envelope{StatusCode: 200}
	if response != nil {
		raw, err := json.Marshal(response)
		require.NoError(t, err)
		env.Response = raw
	}
	if client != nil {
		raw, err := json.Marshal(client)
		require.NoError(t, err)
		env.Client = raw
	}
	return env
}

func testUser() *User {
	return &User{
		ID:                    "user_1",
		FirstName:             "Ada",
		PrimaryEmailAddressID: "idn_1",
		EmailAddresses: []EmailAddress{{
			ID:           "idn_1",
			EmailAddress: "ada@example.com",
			Verification: &Verification{Status: VerificationVerified, Strategy: StrategyEmailCode},
		}},
		OrganizationMemberships: []OrganizationMembership{{
			ID:   "orgmem_1",
			Role: "org:admin",
			Organization: Organization{
				ID:   "org_1",
				Name: "Analytical Engines",
				Slug: "engines",
			},
		}},
	}
}

func activeSession(id string, now time.Time) *Session {
	return &Session{
		ID:           id,
		Status:       SessionActive,
		User:         testUser(),
		LastActiveAt: now.UnixMilli(),
		ExpireAt:     now.Add(7 * 24 * time.Hour).UnixMilli(),
		CreatedAt:    now.UnixMilli(),
		UpdatedAt:    now.UnixMilli(),
	}
}

// seedSessionCache writes s as if it had been cached age ago.
func seedSessionCache(t *testing.T, store kvstore.Store, s *Session, clock *testClock, age time.Duration) {
	t.Helper()
	at := clock.Now().Add(-age)
	NewSessionCache(store, func() time.Time { return at }, slogx.Discard()).Save(t.Context(), s)
}

func signToken(t *testing.T, sid string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"sub": "user_1",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func countEvents[T any](s *Signal[T]) func() int {
	var mu sync.Mutex
	n := 0
	s.Subscribe(func(T) {
		mu.Lock()
		n++
		mu.Unlock()
	})
	return func() int {
		mu.Lock()
		defer mu.Unlock()
		return n
	}
}
