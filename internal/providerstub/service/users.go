package service

import (
	"fmt"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/cryptox"
	"github.com/aussiebroadwan/frontauth/pkg/idx"
)

// UserSpec seeds a user directly, bypassing sign-up.
type UserSpec struct {
	EmailAddress string
	PhoneNumber  string
	Username     string
	Password     string
	FirstName    string
	LastName     string

	// TOTP enrolls the user in TOTP, which makes a second factor mandatory
	TOTP bool
}

// SeededUser is what CreateUser hands back to the caller for driving
// sign-ins: the id plus any second-factor secrets.
type SeededUser struct {
	ID          string
	TOTPSecret  string
	BackupCodes []string
}

// CreateUser registers a user without going through sign-up.
func (s *Service) CreateUser(spec UserSpec) (*SeededUser, error) {
	if spec.EmailAddress == "" && spec.PhoneNumber == "" && spec.Username == "" {
		return nil, paramMissing("identifier")
	}

	var hash string
	if spec.Password != "" {
		h, err := cryptox.HashPassword(spec.Password, s.pepper)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hash = h
	}

	out := &SeededUser{}
	var secret string
	var fingerprints map[string]struct{}
	if spec.TOTP {
		account := spec.EmailAddress
		if account == "" {
			account = spec.Username
		}
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      s.issuer,
			AccountName: account,
			Digits:      otp.DigitsSix,
			Algorithm:   otp.AlgorithmSHA1,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate TOTP secret: %w", err)
		}
		secret = key.Secret()
		out.TOTPSecret = secret

		fingerprints = make(map[string]struct{}, backupCodeCount)
		for range backupCodeCount {
			code, err := cryptox.BackupCode()
			if err != nil {
				return nil, fmt.Errorf("failed to generate backup code: %w", err)
			}
			out.BackupCodes = append(out.BackupCodes, code)
			fingerprints[cryptox.FingerprintCode(code)] = struct{}{}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e := s.identifiersFreeLocked(spec.EmailAddress, spec.PhoneNumber, spec.Username); e != nil {
		return nil, e
	}
	u := s.createUserLocked(spec.EmailAddress, spec.PhoneNumber, spec.Username, spec.FirstName, spec.LastName, hash)
	u.TOTPSecret = secret
	u.BackupCodes = fingerprints
	out.ID = u.ID
	return out, nil
}

func (s *Service) createUserLocked(email, phone, username, first, last, passwordHash string) *userRecord {
	now := s.now()
	u := &userRecord{
		ID:           s.newID(idx.KindUser),
		Username:     username,
		FirstName:    first,
		LastName:     last,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if email != "" {
		e := emailRecord{ID: s.newID(idx.KindIdentifier), Address: strings.ToLower(email)}
		u.Emails = append(u.Emails, e)
		u.PrimaryEmailID = e.ID
	}
	if phone != "" {
		p := phoneRecord{ID: s.newID(idx.KindIdentifier), Number: phone}
		u.Phones = append(u.Phones, p)
		u.PrimaryPhoneID = p.ID
	}
	s.users[u.ID] = u
	return u
}

// identifiersFreeLocked rejects identifiers another user already holds.
func (s *Service) identifiersFreeLocked(email, phone, username string) *Error {
	if email != "" && s.userByIdentifierLocked(email) != nil {
		return identifierExists(authsdk.FieldEmailAddress)
	}
	if phone != "" && s.userByIdentifierLocked(phone) != nil {
		return identifierExists(authsdk.FieldPhoneNumber)
	}
	if username != "" && s.userByIdentifierLocked(username) != nil {
		return identifierExists("username")
	}
	return nil
}

// userByIdentifierLocked finds a user by email, phone or username.
func (s *Service) userByIdentifierLocked(identifier string) *userRecord {
	for _, u := range s.users {
		if u.Username != "" && strings.EqualFold(u.Username, identifier) {
			return u
		}
		for _, e := range u.Emails {
			if strings.EqualFold(e.Address, identifier) {
				return u
			}
		}
		for _, p := range u.Phones {
			if p.Number == identifier {
				return u
			}
		}
	}
	return nil
}

// CurrentUser returns the user of the client's last active session.
func (s *Service) CurrentUser(clientID string) (*authsdk.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, e := s.lastActiveSessionLocked(clientID)
	if e != nil {
		return nil, e
	}
	u, ok := s.users[sess.UserID]
	if !ok {
		return nil, notFound("user")
	}
	return s.renderUserLocked(u), nil
}

// UserUpdate lists profile changes. Nil fields are left alone.
type UserUpdate struct {
	FirstName             *string
	LastName              *string
	Username              *string
	PrimaryEmailAddressID *string
}

// UpdateCurrentUser applies update to the user of the client's last active
// session.
func (s *Service) UpdateCurrentUser(clientID string, update UserUpdate) (*authsdk.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, e := s.lastActiveSessionLocked(clientID)
	if e != nil {
		return nil, e
	}
	u, ok := s.users[sess.UserID]
	if !ok {
		return nil, notFound("user")
	}

	if update.Username != nil && *update.Username != "" && !strings.EqualFold(*update.Username, u.Username) {
		if s.userByIdentifierLocked(*update.Username) != nil {
			return nil, identifierExists("username")
		}
	}
	if update.PrimaryEmailAddressID != nil && u.email(*update.PrimaryEmailAddressID) == nil {
		return nil, paramInvalid("primary_email_address_id", "The email address does not belong to this user.")
	}

	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.PrimaryEmailAddressID != nil {
		u.PrimaryEmailID = *update.PrimaryEmailAddressID
	}
	u.UpdatedAt = s.now()
	return s.renderUserLocked(u), nil
}

func (s *Service) checkPasswordLocked(u *userRecord, password string) *Error {
	if u.PasswordHash == "" {
		return strategyInvalid()
	}
	if err := cryptox.VerifyPassword(password, s.pepper, u.PasswordHash); err != nil {
		return passwordIncorrect()
	}
	return nil
}

func validatePassword(password string) *Error {
	if len(password) < minPasswordLength {
		return passwordTooShort()
	}
	return nil
}

func validateEmail(addr string) *Error {
	local, domain, ok := strings.Cut(addr, "@")
	if !ok || local == "" || !strings.Contains(domain, ".") {
		return paramInvalid(authsdk.FieldEmailAddress, "email_address must be a valid email address.")
	}
	return nil
}
