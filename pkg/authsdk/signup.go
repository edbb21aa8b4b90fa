package authsdk

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
)

// Sign-up fields that carry their own verification.
const (
	FieldEmailAddress = "email_address"
	FieldPhoneNumber  = "phone_number"
)

// SignUpParams are the fields submitted when a sign-up is created. Empty
// fields are omitted.
type SignUpParams struct {
	EmailAddress string
	PhoneNumber  string
	Username     string
	Password     string
	FirstName    string
	LastName     string
}

// SignUpFlow drives one sign-up attempt. Verification state is tracked per
// field, so an email and a phone number can be verified independently.
type SignUpFlow struct {
	flowBase

	mu      sync.RWMutex
	attempt *SignUp
}

func newSignUpFlow(r Requester, complete completeFunc, logger *slog.Logger) *SignUpFlow {
	return &SignUpFlow{flowBase: flowBase{requester: r, complete: complete, logger: logger}}
}

// Attempt returns the latest attempt record, or nil before Create. The
// returned value must not be modified.
func (f *SignUpFlow) Attempt() *SignUp {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.attempt
}

func (f *SignUpFlow) setAttempt(su *SignUp) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempt = su
}

// Create starts a sign-up with p.
func (f *SignUpFlow) Create(ctx context.Context, p SignUpParams) (*SignUp, error) {
	body := form(
		"email_address", p.EmailAddress,
		"phone_number", p.PhoneNumber,
		"username", p.Username,
		"password", p.Password,
		"first_name", p.FirstName,
		"last_name", p.LastName,
	)
	return f.step(ctx, "/client/sign_ups", body)
}

// Update adds or changes fields on an existing attempt.
func (f *SignUpFlow) Update(ctx context.Context, p SignUpParams) (*SignUp, error) {
	cur := f.Attempt()
	if cur == nil {
		return nil, precondition("update_sign_up", ErrAttemptNotCreated, "")
	}
	body := form(
		"email_address", p.EmailAddress,
		"phone_number", p.PhoneNumber,
		"username", p.Username,
		"password", p.Password,
		"first_name", p.FirstName,
		"last_name", p.LastName,
	)
	return f.patch(ctx, "/client/sign_ups/"+url.PathEscape(cur.ID), body)
}

// PrepareVerification asks the provider to send a code or link for the field
// the strategy verifies. The attempt must carry that field.
func (f *SignUpFlow) PrepareVerification(ctx context.Context, strategy, redirectURL string) (*SignUp, error) {
	const op = "prepare_verification"
	cur := f.Attempt()
	if cur == nil {
		return nil, precondition(op, ErrAttemptNotCreated, "")
	}
	field := verificationField(strategy)
	if field == "" || cur.fieldValue(field) == "" {
		return nil, precondition(op, ErrStrategyNotSupported, strategy)
	}

	body := form("strategy", strategy, "redirect_url", redirectURL)
	return f.step(ctx, "/client/sign_ups/"+url.PathEscape(cur.ID)+"/prepare_verification", body)
}

// AttemptVerification submits the code for the field the strategy verifies.
func (f *SignUpFlow) AttemptVerification(ctx context.Context, strategy, code string) (*SignUp, error) {
	const op = "attempt_verification"
	cur := f.Attempt()
	if cur == nil {
		return nil, precondition(op, ErrAttemptNotCreated, "")
	}
	field := verificationField(strategy)
	if field == "" {
		return nil, precondition(op, ErrStrategyNotSupported, strategy)
	}
	if v := cur.Verifications[field]; v == nil || v.Strategy != strategy {
		return nil, precondition(op, ErrVerificationNotPrepared, strategy)
	}

	body := form("strategy", strategy, "code", code)
	return f.step(ctx, "/client/sign_ups/"+url.PathEscape(cur.ID)+"/attempt_verification", body)
}

func (f *SignUpFlow) step(ctx context.Context, path string, body url.Values) (*SignUp, error) {
	return f.send(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (f *SignUpFlow) patch(ctx context.Context, path string, body url.Values) (*SignUp, error) {
	return f.send(ctx, Request{Method: http.MethodPatch, Path: path, Body: body})
}

func (f *SignUpFlow) send(ctx context.Context, req Request) (*SignUp, error) {
	env, client, err := f.do(ctx, req)
	if err != nil {
		if client != nil && client.SignUp != nil {
			if cur := f.Attempt(); cur == nil || cur.ID == client.SignUp.ID {
				f.setAttempt(client.SignUp)
			}
		}
		return nil, err
	}

	su, err := decodeResource[SignUp](env.Response)
	if err != nil {
		return nil, err
	}
	f.setAttempt(su)

	if su.IsComplete() {
		f.logger.DebugContext(ctx, "sign-up complete", "sign_up_id", su.ID, "session_id", su.CreatedSessionID)
		if err := f.finish(ctx, env, su.CreatedSessionID); err != nil {
			return su, err
		}
	}
	return su, nil
}

func verificationField(strategy string) string {
	switch strategy {
	case StrategyEmailCode, StrategyEmailLink:
		return FieldEmailAddress
	case StrategyPhoneCode:
		return FieldPhoneNumber
	}
	return ""
}

func (s *SignUp) fieldValue(field string) string {
	switch field {
	case FieldEmailAddress:
		return s.EmailAddress
	case FieldPhoneNumber:
		return s.PhoneNumber
	}
	return ""
}
