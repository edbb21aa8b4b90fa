package authsdk

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
)

func missingEmailVerification() *SignUp {
	return &SignUp{
		ID:               "sua_1",
		Status:           SignUpMissingRequirements,
		RequiredFields:   []string{FieldEmailAddress, "password"},
		UnverifiedFields: []string{FieldEmailAddress},
		EmailAddress:     "ada@example.com",
		PasswordEnabled:  true,
		Verifications:    map[string]*Verification{},
	}
}

func TestSignUpFlow(t *testing.T) {
	t.Parallel()

	clock := newTestClock()
	prepared := missingEmailVerification()
	prepared.Verifications[FieldEmailAddress] = &Verification{Status: VerificationUnverified, Strategy: StrategyEmailCode}

	complete := missingEmailVerification()
	complete.Status = SignUpComplete
	complete.UnverifiedFields = nil
	complete.Verifications[FieldEmailAddress] = &Verification{Status: VerificationVerified, Strategy: StrategyEmailCode, Attempts: 1}
	complete.CreatedUserID = "user_1"
	complete.CreatedSessionID = "sess_1"

	req := &mockRequester{}
	req.On("Request", mock.Anything, mock.MatchedBy(func(r Request) bool {
		return r.Path == "/client/sign_ups" &&
			bodyHas("email_address", "ada@example.com")(r) &&
			bodyHas("password", "correct horse")(r) &&
			!r.Body.Has("phone_number")
	})).Return(envelope(t, missingEmailVerification(), nil), nil).Once()
	req.On("Request", mock.Anything, mock.MatchedBy(func(r Request) bool {
		return r.Path == "/client/sign_ups/sua_1/prepare_verification" && bodyHas("strategy", StrategyEmailCode)(r)
	})).Return(envelope(t, prepared, nil), nil).Once()
	req.On("Request", mock.Anything, mock.MatchedBy(func(r Request) bool {
		return r.Path == "/client/sign_ups/sua_1/attempt_verification" && bodyHas("code", "424242")(r)
	})).Return(envelope(t, complete, clientWith(activeSession("sess_1", clock.Now()))), nil).Once()

	c := newTestClient(t, req, kvstore.NewMemory(), clock)
	created := countEvents(&c.Events().SessionCreated)
	flow := c.SignUp()

	su, err := flow.Create(t.Context(), SignUpParams{EmailAddress: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)
	require.Equal(t, SignUpMissingRequirements, su.Status)

	_, err = flow.AttemptVerification(t.Context(), StrategyEmailCode, "424242")
	require.ErrorIs(t, err, ErrVerificationNotPrepared)

	_, err = flow.PrepareVerification(t.Context(), StrategyPhoneCode, "")
	require.ErrorIs(t, err, ErrStrategyNotSupported, "no phone number on the attempt")

	_, err = flow.PrepareVerification(t.Context(), StrategyEmailCode, "")
	require.NoError(t, err)
	require.Equal(t, StrategyEmailCode, flow.Attempt().Verifications[FieldEmailAddress].Strategy)

	su, err = flow.AttemptVerification(t.Context(), StrategyEmailCode, "424242")
	require.NoError(t, err)
	require.True(t, su.IsComplete())

	require.True(t, c.IsSignedIn())
	require.Equal(t, 1, created())
	req.AssertExpectations(t)
}

func TestSignUpPreconditions(t *testing.T) {
	t.Parallel()

	req := &mockRequester{}
	c := newTestClient(t, req, kvstore.NewMemory(), newTestClock())
	flow := c.SignUp()

	_, err := flow.PrepareVerification(t.Context(), StrategyEmailCode, "")
	require.ErrorIs(t, err, ErrAttemptNotCreated)
	_, err = flow.AttemptVerification(t.Context(), StrategyEmailCode, "1")
	require.ErrorIs(t, err, ErrAttemptNotCreated)
	_, err = flow.Update(t.Context(), SignUpParams{Username: "ada"})
	require.ErrorIs(t, err, ErrAttemptNotCreated)

	req.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
}

func TestSignUpUpdate(t *testing.T) {
	t.Parallel()

	updated := missingEmailVerification()
	updated.Username = "ada"

	req := &mockRequester{}
	req.expect(http.MethodPost, "/client/sign_ups").Return(envelope(t, missingEmailVerification(), nil), nil).Once()
	req.On("Request", mock.Anything, mock.MatchedBy(func(r Request) bool {
		return r.Method == http.MethodPatch && r.Path == "/client/sign_ups/sua_1" && bodyHas("username", "ada")(r)
	})).Return(envelope(t, updated, nil), nil).Once()

	c := newTestClient(t, req, kvstore.NewMemory(), newTestClock())
	flow := c.SignUp()

	_, err := flow.Create(t.Context(), SignUpParams{EmailAddress: "ada@example.com"})
	require.NoError(t, err)
	su, err := flow.Update(t.Context(), SignUpParams{Username: "ada"})
	require.NoError(t, err)
	require.Equal(t, "ada", su.Username)
	req.AssertExpectations(t)
}

func TestSignUpIdentifierTaken(t *testing.T) {
	t.Parallel()

	req := &mockRequester{}
	req.expect(http.MethodPost, "/client/sign_ups").Return(nil, parseErrorResponse(http.StatusUnprocessableEntity,
		[]byte(`{"errors":[{"code":"form_identifier_exists","message":"taken","long_message":"That email address is taken. Please try another.","meta":{"param_name":"email_address"}}]}`))).Once()

	c := newTestClient(t, req, kvstore.NewMemory(), newTestClock())
	flow := c.SignUp()

	_, err := flow.Create(t.Context(), SignUpParams{EmailAddress: "ada@example.com"})
	require.Equal(t, ErrorCodeIdentifierExists, ErrorCode(err))
	require.Nil(t, flow.Attempt())
}
