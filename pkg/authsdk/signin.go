package authsdk

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
)

// FactorParams selects the factor to prepare.
type FactorParams struct {
	Strategy string

	// EmailAddressID or PhoneNumberID pick one factor when several share a
	// strategy; when empty the first matching factor is used
	EmailAddressID string
	PhoneNumberID  string

	// RedirectURL is required by link strategies
	RedirectURL string
}

func (p FactorParams) identifierID() string {
	if p.EmailAddressID != "" {
		return p.EmailAddressID
	}
	return p.PhoneNumberID
}

// AttemptParams carries the secret for a factor attempt.
type AttemptParams struct {
	Strategy string
	Password string
	Code     string
}

// SignInFlow drives one sign-in attempt. Each step replaces the attempt
// record with the provider's answer. When the attempt completes the created
// session is adopted by the SDKClient that started the flow.
type SignInFlow struct {
	flowBase

	mu      sync.RWMutex
	attempt *SignIn
}

func newSignInFlow(r Requester, complete completeFunc, logger *slog.Logger) *SignInFlow {
	return &SignInFlow{flowBase: flowBase{requester: r, complete: complete, logger: logger}}
}

// Attempt returns the latest attempt record, or nil before Create. The
// returned value must not be modified.
func (f *SignInFlow) Attempt() *SignIn {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.attempt
}

func (f *SignInFlow) setAttempt(si *SignIn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempt = si
}

// Create starts an attempt for identifier (an email address, phone number or
// username).
func (f *SignInFlow) Create(ctx context.Context, identifier string) (*SignIn, error) {
	return f.step(ctx, "/client/sign_ins", form("identifier", identifier))
}

// CreateWithPassword starts an attempt and submits the password in one call.
func (f *SignInFlow) CreateWithPassword(ctx context.Context, identifier, password string) (*SignIn, error) {
	return f.step(ctx, "/client/sign_ins", form("identifier", identifier, "strategy", StrategyPassword, "password", password))
}

// PrepareFirstFactor asks the provider to send a code or link for the chosen
// factor. The factor must be one the attempt supports.
func (f *SignInFlow) PrepareFirstFactor(ctx context.Context, p FactorParams) (*SignIn, error) {
	const op = "prepare_first_factor"
	cur := f.Attempt()
	if cur == nil {
		return nil, precondition(op, ErrAttemptNotCreated, "")
	}
	if !needsPreparation(p.Strategy) {
		return nil, precondition(op, ErrStrategyNotSupported, p.Strategy+" needs no preparation")
	}
	factor := findFactor(cur.SupportedFirstFactors, p.Strategy, p.identifierID())
	if factor == nil {
		return nil, precondition(op, ErrStrategyNotSupported, p.Strategy)
	}

	body := form(
		"strategy", factor.Strategy,
		"email_address_id", factor.EmailAddressID,
		"phone_number_id", factor.PhoneNumberID,
		"redirect_url", p.RedirectURL,
	)
	return f.step(ctx, "/client/sign_ins/"+url.PathEscape(cur.ID)+"/prepare_first_factor", body)
}

// AttemptFirstFactor submits a password or a code. Code strategies must have
// been prepared first.
func (f *SignInFlow) AttemptFirstFactor(ctx context.Context, p AttemptParams) (*SignIn, error) {
	const op = "attempt_first_factor"
	cur := f.Attempt()
	if cur == nil {
		return nil, precondition(op, ErrAttemptNotCreated, "")
	}

	var body url.Values
	if p.Strategy == StrategyPassword {
		body = form("strategy", p.Strategy, "password", p.Password)
	} else {
		if v := cur.FirstFactorVerification; v == nil || v.Strategy != p.Strategy {
			return nil, precondition(op, ErrVerificationNotPrepared, p.Strategy)
		}
		body = form("strategy", p.Strategy, "code", p.Code)
	}
	return f.step(ctx, "/client/sign_ins/"+url.PathEscape(cur.ID)+"/attempt_first_factor", body)
}

// PrepareSecondFactor asks the provider to send a second-factor code.
func (f *SignInFlow) PrepareSecondFactor(ctx context.Context, p FactorParams) (*SignIn, error) {
	const op = "prepare_second_factor"
	cur := f.Attempt()
	if cur == nil {
		return nil, precondition(op, ErrAttemptNotCreated, "")
	}
	if !needsPreparation(p.Strategy) {
		return nil, precondition(op, ErrStrategyNotSupported, p.Strategy+" needs no preparation")
	}
	factor := findFactor(cur.SupportedSecondFactors, p.Strategy, p.PhoneNumberID)
	if factor == nil {
		return nil, precondition(op, ErrStrategyNotSupported, p.Strategy)
	}

	body := form("strategy", factor.Strategy, "phone_number_id", factor.PhoneNumberID)
	return f.step(ctx, "/client/sign_ins/"+url.PathEscape(cur.ID)+"/prepare_second_factor", body)
}

// AttemptSecondFactor submits a second-factor code. TOTP and backup codes
// need no preparation; phone codes do.
func (f *SignInFlow) AttemptSecondFactor(ctx context.Context, p AttemptParams) (*SignIn, error) {
	const op = "attempt_second_factor"
	cur := f.Attempt()
	if cur == nil {
		return nil, precondition(op, ErrAttemptNotCreated, "")
	}
	if needsPreparation(p.Strategy) {
		if v := cur.SecondFactorVerification; v == nil || v.Strategy != p.Strategy {
			return nil, precondition(op, ErrVerificationNotPrepared, p.Strategy)
		}
	} else if findFactor(cur.SupportedSecondFactors, p.Strategy, "") == nil {
		return nil, precondition(op, ErrStrategyNotSupported, p.Strategy)
	}

	body := form("strategy", p.Strategy, "code", p.Code)
	return f.step(ctx, "/client/sign_ins/"+url.PathEscape(cur.ID)+"/attempt_second_factor", body)
}

func (f *SignInFlow) step(ctx context.Context, path string, body url.Values) (*SignIn, error) {
	env, client, err := f.do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		if client != nil && client.SignIn != nil {
			if cur := f.Attempt(); cur == nil || cur.ID == client.SignIn.ID {
				f.setAttempt(client.SignIn)
			}
		}
		return nil, err
	}

	si, err := decodeResource[SignIn](env.Response)
	if err != nil {
		return nil, err
	}
	f.setAttempt(si)

	if si.IsComplete() {
		f.logger.DebugContext(ctx, "sign-in complete", "sign_in_id", si.ID, "session_id", si.CreatedSessionID)
		if err := f.finish(ctx, env, si.CreatedSessionID); err != nil {
			return si, err
		}
	}
	return si, nil
}

func needsPreparation(strategy string) bool {
	switch strategy {
	case StrategyEmailCode, StrategyEmailLink, StrategyPhoneCode:
		return true
	}
	return false
}
