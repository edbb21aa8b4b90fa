package service

import (
	"fmt"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/cryptox"
	"github.com/aussiebroadwan/frontauth/pkg/idx"
)

// SignUpParams carries sign-up fields. On update, empty fields are left as
// they are.
type SignUpParams struct {
	EmailAddress string
	PhoneNumber  string
	Username     string
	Password     string
	FirstName    string
	LastName     string
}

func (p SignUpParams) validate() *Error {
	if p.EmailAddress != "" {
		if e := validateEmail(p.EmailAddress); e != nil {
			return e
		}
	}
	if p.Password != "" {
		if e := validatePassword(p.Password); e != nil {
			return e
		}
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hash, err := cryptox.HashPassword(password, s.pepper)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

func (su *signUpRecord) missingFields() []string {
	out := []string{}
	if su.EmailAddress == "" {
		out = append(out, authsdk.FieldEmailAddress)
	}
	if su.PasswordHash == "" {
		out = append(out, "password")
	}
	return out
}

func (su *signUpRecord) unverifiedFields() []string {
	out := []string{}
	for _, field := range []string{authsdk.FieldEmailAddress, authsdk.FieldPhoneNumber} {
		if su.fieldValue(field) == "" {
			continue
		}
		if v := su.Verifications[field]; v == nil || v.Status != authsdk.VerificationVerified {
			out = append(out, field)
		}
	}
	return out
}

func (su *signUpRecord) fieldValue(field string) string {
	switch field {
	case authsdk.FieldEmailAddress:
		return su.EmailAddress
	case authsdk.FieldPhoneNumber:
		return su.PhoneNumber
	}
	return ""
}

func signUpField(strategy string) string {
	switch strategy {
	case authsdk.StrategyEmailCode:
		return authsdk.FieldEmailAddress
	case authsdk.StrategyPhoneCode:
		return authsdk.FieldPhoneNumber
	}
	return ""
}

// CreateSignUp starts a sign-up attempt.
func (s *Service) CreateSignUp(clientID string, p SignUpParams) (*authsdk.SignUp, error) {
	if e := p.validate(); e != nil {
		return nil, e
	}
	hash, err := s.hashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, e := s.clientLocked(clientID)
	if e != nil {
		return nil, e
	}
	if !s.multiSession && s.hasActiveSessionLocked(clientID) {
		return nil, sessionExists()
	}
	if e := s.identifiersFreeLocked(p.EmailAddress, p.PhoneNumber, p.Username); e != nil {
		return nil, e
	}

	su := &signUpRecord{
		ID:            s.newID(idx.KindSignUp),
		ClientID:      c.ID,
		Status:        authsdk.SignUpMissingRequirements,
		EmailAddress:  p.EmailAddress,
		PhoneNumber:   p.PhoneNumber,
		Username:      p.Username,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		PasswordHash:  hash,
		Verifications: make(map[string]*verificationRecord),
		AbandonAt:     s.now().Add(s.attemptTTL),
	}
	s.signUps[su.ID] = su
	c.SignUpID = su.ID
	c.UpdatedAt = s.now()

	if e := s.maybeCompleteSignUpLocked(c, su); e != nil {
		return nil, e
	}
	return renderSignUp(su), nil
}

func (s *Service) signUpLocked(clientID, id string) (*signUpRecord, *Error) {
	su, ok := s.signUps[id]
	if !ok || su.ClientID != clientID {
		return nil, notFound("sign up")
	}
	if su.Status == authsdk.SignUpMissingRequirements && !s.now().Before(su.AbandonAt) {
		su.Status = authsdk.SignUpAbandoned
	}
	if su.Status != authsdk.SignUpMissingRequirements {
		return nil, statusInvalid("The sign up is " + string(su.Status) + ".")
	}
	return su, nil
}

// UpdateSignUp changes fields of a pending sign-up. Changing an email or
// phone drops its verification.
func (s *Service) UpdateSignUp(clientID, id string, p SignUpParams) (*authsdk.SignUp, error) {
	if e := p.validate(); e != nil {
		return nil, e
	}
	hash, err := s.hashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	su, e := s.signUpLocked(clientID, id)
	if e != nil {
		return nil, e
	}
	if e := s.identifiersFreeLocked(p.EmailAddress, p.PhoneNumber, p.Username); e != nil {
		return nil, e
	}

	if p.EmailAddress != "" && p.EmailAddress != su.EmailAddress {
		su.EmailAddress = p.EmailAddress
		delete(su.Verifications, authsdk.FieldEmailAddress)
	}
	if p.PhoneNumber != "" && p.PhoneNumber != su.PhoneNumber {
		su.PhoneNumber = p.PhoneNumber
		delete(su.Verifications, authsdk.FieldPhoneNumber)
	}
	if p.Username != "" {
		su.Username = p.Username
	}
	if p.FirstName != "" {
		su.FirstName = p.FirstName
	}
	if p.LastName != "" {
		su.LastName = p.LastName
	}
	if hash != "" {
		su.PasswordHash = hash
	}

	if e := s.maybeCompleteSignUpLocked(s.clients[clientID], su); e != nil {
		return nil, e
	}
	return renderSignUp(su), nil
}

// PrepareVerification sends a code for the field strategy verifies.
func (s *Service) PrepareVerification(clientID, id, strategy string) (*authsdk.SignUp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	su, e := s.signUpLocked(clientID, id)
	if e != nil {
		return nil, e
	}
	field := signUpField(strategy)
	to := su.fieldValue(field)
	if to == "" {
		return nil, strategyInvalid()
	}

	code, err := s.deliverLocked(to, strategy)
	if err != nil {
		return nil, err
	}
	su.Verifications[field] = &verificationRecord{
		Status:   authsdk.VerificationUnverified,
		Strategy: strategy,
		ExpireAt: s.now().Add(s.codeTTL),
		Target:   field,
		codeHash: cryptox.FingerprintCode(code),
	}
	return renderSignUp(su), nil
}

// AttemptVerification checks the code for the field strategy verifies and
// completes the sign-up once nothing is missing or unverified.
func (s *Service) AttemptVerification(clientID, id, strategy, code string) (*authsdk.SignUp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	su, e := s.signUpLocked(clientID, id)
	if e != nil {
		return nil, e
	}
	field := signUpField(strategy)
	if field == "" {
		return nil, strategyInvalid()
	}
	if e := s.checkCodeLocked(su.Verifications[field], strategy, code); e != nil {
		return nil, e.withClient(clientID)
	}

	if e := s.maybeCompleteSignUpLocked(s.clients[clientID], su); e != nil {
		return nil, e.withClient(clientID)
	}
	return renderSignUp(su), nil
}

// maybeCompleteSignUpLocked creates the user and session once every required
// field is present and verified.
func (s *Service) maybeCompleteSignUpLocked(c *clientRecord, su *signUpRecord) *Error {
	if len(su.missingFields()) > 0 || len(su.unverifiedFields()) > 0 {
		return nil
	}
	if e := s.identifiersFreeLocked(su.EmailAddress, su.PhoneNumber, su.Username); e != nil {
		return e
	}

	u := s.createUserLocked(su.EmailAddress, su.PhoneNumber, su.Username, su.FirstName, su.LastName, su.PasswordHash)
	sess := s.createSessionLocked(c, u)
	su.Status = authsdk.SignUpComplete
	su.CreatedUserID = u.ID
	su.CreatedSessionID = sess.ID
	if c.SignUpID == su.ID {
		c.SignUpID = ""
	}
	s.logger.Info("user signed up", "user_id", u.ID, "sign_up_id", su.ID)
	return nil
}
