package service

import (
	"crypto/subtle"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/cryptox"
	"github.com/aussiebroadwan/frontauth/pkg/idx"
)

// SignInParams starts a sign-in. Strategy "password" with Password set
// attempts the first factor in the same call.
type SignInParams struct {
	Identifier string
	Strategy   string
	Password   string
}

// FactorParams selects the factor a prepare call sends a code for. Empty ids
// fall back to the user's primary identifier.
type FactorParams struct {
	Strategy       string
	EmailAddressID string
	PhoneNumberID  string
}

// AttemptParams carries a password or a code.
type AttemptParams struct {
	Strategy string
	Password string
	Code     string
}

// CreateSignIn starts a sign-in attempt for the user behind p.Identifier.
func (s *Service) CreateSignIn(clientID string, p SignInParams) (*authsdk.SignIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, e := s.clientLocked(clientID)
	if e != nil {
		return nil, e
	}
	if !s.multiSession && s.hasActiveSessionLocked(clientID) {
		return nil, sessionExists()
	}
	if p.Identifier == "" {
		return nil, paramMissing("identifier")
	}
	u := s.userByIdentifierLocked(p.Identifier)
	if u == nil {
		return nil, identifierNotFound()
	}

	si := &signInRecord{
		ID:         s.newID(idx.KindSignIn),
		ClientID:   c.ID,
		UserID:     u.ID,
		Status:     authsdk.SignInNeedsFirstFactor,
		Identifier: p.Identifier,
		AbandonAt:  s.now().Add(s.attemptTTL),
	}
	s.signIns[si.ID] = si
	c.SignInID = si.ID
	c.UpdatedAt = s.now()

	if p.Strategy == authsdk.StrategyPassword {
		if e := s.attemptPasswordLocked(c, si, u, p.Password); e != nil {
			return nil, e.withClient(clientID)
		}
	}
	return s.renderSignInLocked(si), nil
}

// signInLocked resolves an attempt on the client that is waiting on want.
func (s *Service) signInLocked(clientID, id string, want authsdk.SignInStatus) (*signInRecord, *userRecord, *Error) {
	si, ok := s.signIns[id]
	if !ok || si.ClientID != clientID {
		return nil, nil, notFound("sign in")
	}
	if si.Status != authsdk.SignInComplete && !s.now().Before(si.AbandonAt) {
		si.Status = authsdk.SignInAbandoned
	}
	if si.Status != want {
		return nil, nil, statusInvalid("The sign in is " + string(si.Status) + ".")
	}
	u, ok := s.users[si.UserID]
	if !ok {
		return nil, nil, identifierNotFound()
	}
	return si, u, nil
}

// PrepareFirstFactor sends an email or SMS code for the first factor.
func (s *Service) PrepareFirstFactor(clientID, id string, p FactorParams) (*authsdk.SignIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, u, e := s.signInLocked(clientID, id, authsdk.SignInNeedsFirstFactor)
	if e != nil {
		return nil, e
	}
	v, err := s.prepareCodeLocked(u, p)
	if err != nil {
		return nil, err
	}
	si.FirstFactor = v
	return s.renderSignInLocked(si), nil
}

// AttemptFirstFactor checks a password or a prepared code.
func (s *Service) AttemptFirstFactor(clientID, id string, p AttemptParams) (*authsdk.SignIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, u, e := s.signInLocked(clientID, id, authsdk.SignInNeedsFirstFactor)
	if e != nil {
		return nil, e
	}
	c := s.clients[clientID]

	switch p.Strategy {
	case authsdk.StrategyPassword:
		if e := s.attemptPasswordLocked(c, si, u, p.Password); e != nil {
			return nil, e.withClient(clientID)
		}
	case authsdk.StrategyEmailCode, authsdk.StrategyPhoneCode:
		if e := s.checkCodeLocked(si.FirstFactor, p.Strategy, p.Code); e != nil {
			return nil, e.withClient(clientID)
		}
		s.firstFactorPassedLocked(c, si, u)
	default:
		return nil, strategyInvalid()
	}
	return s.renderSignInLocked(si), nil
}

// PrepareSecondFactor sends an SMS code for the second factor.
func (s *Service) PrepareSecondFactor(clientID, id string, p FactorParams) (*authsdk.SignIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, u, e := s.signInLocked(clientID, id, authsdk.SignInNeedsSecondFactor)
	if e != nil {
		return nil, e
	}
	if p.Strategy != authsdk.StrategyPhoneCode {
		return nil, strategyInvalid()
	}
	v, err := s.prepareCodeLocked(u, p)
	if err != nil {
		return nil, err
	}
	si.SecondFactor = v
	return s.renderSignInLocked(si), nil
}

// AttemptSecondFactor checks a TOTP, backup or SMS code and completes the
// sign-in.
func (s *Service) AttemptSecondFactor(clientID, id string, p AttemptParams) (*authsdk.SignIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, u, e := s.signInLocked(clientID, id, authsdk.SignInNeedsSecondFactor)
	if e != nil {
		return nil, e
	}
	c := s.clients[clientID]

	switch p.Strategy {
	case authsdk.StrategyTOTP, authsdk.StrategyBackupCode:
		if si.SecondFactor == nil || si.SecondFactor.Strategy != p.Strategy {
			si.SecondFactor = &verificationRecord{Status: authsdk.VerificationUnverified, Strategy: p.Strategy}
		}
		v := si.SecondFactor
		v.Attempts++
		if !s.checkSecondFactorLocked(u, p.Strategy, p.Code) {
			return nil, codeIncorrect().withClient(clientID)
		}
		v.Status = authsdk.VerificationVerified
	case authsdk.StrategyPhoneCode:
		if e := s.checkCodeLocked(si.SecondFactor, p.Strategy, p.Code); e != nil {
			return nil, e.withClient(clientID)
		}
	default:
		return nil, strategyInvalid()
	}

	s.completeSignInLocked(c, si, u)
	return s.renderSignInLocked(si), nil
}

func (s *Service) checkSecondFactorLocked(u *userRecord, strategy, code string) bool {
	if !u.secondFactorEnabled() {
		return false
	}
	if strategy == authsdk.StrategyBackupCode {
		fp := cryptox.FingerprintCode(code)
		if _, ok := u.BackupCodes[fp]; !ok {
			return false
		}
		delete(u.BackupCodes, fp)
		return true
	}
	ok, err := totp.ValidateCustom(code, u.TOTPSecret, s.now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

func (s *Service) attemptPasswordLocked(c *clientRecord, si *signInRecord, u *userRecord, password string) *Error {
	if password == "" {
		return paramMissing("password")
	}
	if si.FirstFactor == nil || si.FirstFactor.Strategy != authsdk.StrategyPassword {
		si.FirstFactor = &verificationRecord{Status: authsdk.VerificationUnverified, Strategy: authsdk.StrategyPassword}
	}
	v := si.FirstFactor
	v.Attempts++
	if e := s.checkPasswordLocked(u, password); e != nil {
		return e
	}
	v.Status = authsdk.VerificationVerified
	s.firstFactorPassedLocked(c, si, u)
	return nil
}

func (s *Service) firstFactorPassedLocked(c *clientRecord, si *signInRecord, u *userRecord) {
	if u.secondFactorEnabled() {
		si.Status = authsdk.SignInNeedsSecondFactor
		return
	}
	s.completeSignInLocked(c, si, u)
}

func (s *Service) completeSignInLocked(c *clientRecord, si *signInRecord, u *userRecord) {
	sess := s.createSessionLocked(c, u)
	si.Status = authsdk.SignInComplete
	si.CreatedSessionID = sess.ID
	if c.SignInID == si.ID {
		c.SignInID = ""
	}
}

// prepareCodeLocked delivers a code to the email or phone p selects.
func (s *Service) prepareCodeLocked(u *userRecord, p FactorParams) (*verificationRecord, error) {
	var target, to string
	switch p.Strategy {
	case authsdk.StrategyEmailCode:
		target = p.EmailAddressID
		if target == "" {
			target = u.PrimaryEmailID
		}
		e := u.email(target)
		if e == nil {
			return nil, strategyInvalid()
		}
		to = e.Address
	case authsdk.StrategyPhoneCode:
		target = p.PhoneNumberID
		if target == "" {
			target = u.PrimaryPhoneID
		}
		ph := u.phone(target)
		if ph == nil {
			return nil, strategyInvalid()
		}
		to = ph.Number
	default:
		return nil, strategyInvalid()
	}

	code, err := s.deliverLocked(to, p.Strategy)
	if err != nil {
		return nil, err
	}
	return &verificationRecord{
		Status:   authsdk.VerificationUnverified,
		Strategy: p.Strategy,
		ExpireAt: s.now().Add(s.codeTTL),
		Target:   target,
		codeHash: cryptox.FingerprintCode(code),
	}, nil
}

// checkCodeLocked verifies code against a prepared verification, counting
// the attempt.
func (s *Service) checkCodeLocked(v *verificationRecord, strategy, code string) *Error {
	if v == nil || v.Strategy != strategy {
		return verificationMissing()
	}
	if v.Status == authsdk.VerificationVerified {
		return statusInvalid("This verification has already been completed.")
	}
	if !s.now().Before(v.ExpireAt) {
		v.Status = authsdk.VerificationExpired
		return verificationExpired()
	}
	v.Attempts++
	if subtle.ConstantTimeCompare([]byte(cryptox.FingerprintCode(code)), []byte(v.codeHash)) != 1 {
		return codeIncorrect()
	}
	v.Status = authsdk.VerificationVerified
	return nil
}
