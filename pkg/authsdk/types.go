package authsdk

import (
	"encoding/json"
	"errors"
	"time"
)

// ============================================================================
// Status Values
// ============================================================================

// SessionStatus is the lifecycle state the provider reports for a session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPending   SessionStatus = "pending"
	SessionEnded     SessionStatus = "ended"
	SessionExpired   SessionStatus = "expired"
	SessionRemoved   SessionStatus = "removed"
	SessionRevoked   SessionStatus = "revoked"
	SessionAbandoned SessionStatus = "abandoned"
)

// SignInStatus is the step a sign-in attempt is waiting on.
type SignInStatus string

const (
	SignInNeedsIdentifier   SignInStatus = "needs_identifier"
	SignInNeedsFirstFactor  SignInStatus = "needs_first_factor"
	SignInNeedsSecondFactor SignInStatus = "needs_second_factor"
	SignInNeedsNewPassword  SignInStatus = "needs_new_password"
	SignInComplete          SignInStatus = "complete"
	SignInAbandoned         SignInStatus = "abandoned"
)

// SignUpStatus is the step a sign-up attempt is waiting on.
type SignUpStatus string

const (
	SignUpMissingRequirements SignUpStatus = "missing_requirements"
	SignUpComplete            SignUpStatus = "complete"
	SignUpAbandoned           SignUpStatus = "abandoned"
)

// Verification strategies understood by the flows.
const (
	StrategyPassword   = "password"
	StrategyEmailCode  = "email_code"
	StrategyEmailLink  = "email_link"
	StrategyPhoneCode  = "phone_code"
	StrategyTOTP       = "totp"
	StrategyBackupCode = "backup_code"
)

// Verification status values.
const (
	VerificationUnverified = "unverified"
	VerificationVerified   = "verified"
	VerificationFailed     = "failed"
	VerificationExpired    = "expired"
)

// ============================================================================
// Resources
// ============================================================================
//
// All timestamps are Unix milliseconds, as the provider sends them.

// Verification tracks one in-progress or finished factor check.
type Verification struct {
	Status   string `json:"status"`
	Strategy string `json:"strategy,omitempty"`
	Attempts int    `json:"attempts"`
	ExpireAt int64  `json:"expire_at,omitempty"`
}

// EmailAddress is an email identifier attached to a user.
type EmailAddress struct {
	ID           string        `json:"id"`
	EmailAddress string        `json:"email_address"`
	Verification *Verification `json:"verification,omitempty"`
}

// PhoneNumber is a phone identifier attached to a user.
type PhoneNumber struct {
	ID           string        `json:"id"`
	PhoneNumber  string        `json:"phone_number"`
	Verification *Verification `json:"verification,omitempty"`
}

// Organization is a tenant a user can belong to.
type Organization struct {
	ID                      string         `json:"id"`
	Name                    string         `json:"name"`
	Slug                    string         `json:"slug,omitempty"`
	ImageURL                string         `json:"image_url,omitempty"`
	MembersCount            int            `json:"members_count"`
	PendingInvitationsCount int            `json:"pending_invitations_count"`
	PublicMetadata          map[string]any `json:"public_metadata,omitempty"`
	CreatedBy               string         `json:"created_by,omitempty"`
	CreatedAt               int64          `json:"created_at"`
	UpdatedAt               int64          `json:"updated_at"`
}

// OrganizationMembership links a user to an organization with a role.
type OrganizationMembership struct {
	ID           string       `json:"id"`
	Role         string       `json:"role"`
	Organization Organization `json:"organization"`
	CreatedAt    int64        `json:"created_at"`
	UpdatedAt    int64        `json:"updated_at"`
}

// User is the account a session belongs to.
type User struct {
	ID                      string                   `json:"id"`
	Username                string                   `json:"username,omitempty"`
	FirstName               string                   `json:"first_name,omitempty"`
	LastName                string                   `json:"last_name,omitempty"`
	ImageURL                string                   `json:"image_url,omitempty"`
	PrimaryEmailAddressID   string                   `json:"primary_email_address_id,omitempty"`
	PrimaryPhoneNumberID    string                   `json:"primary_phone_number_id,omitempty"`
	EmailAddresses          []EmailAddress           `json:"email_addresses"`
	PhoneNumbers            []PhoneNumber            `json:"phone_numbers"`
	PasswordEnabled         bool                     `json:"password_enabled"`
	TwoFactorEnabled        bool                     `json:"two_factor_enabled"`
	TOTPEnabled             bool                     `json:"totp_enabled"`
	OrganizationMemberships []OrganizationMembership `json:"organization_memberships,omitempty"`
	CreatedAt               int64                    `json:"created_at"`
	UpdatedAt               int64                    `json:"updated_at"`
}

// PrimaryEmailAddress returns the user's primary email address, or "".
func (u *User) PrimaryEmailAddress() string {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	return ""
}

// Membership returns the user's membership in orgID, or nil.
func (u *User) Membership(orgID string) *OrganizationMembership {
	if u == nil || orgID == "" {
		return nil
	}
	for i := range u.OrganizationMemberships {
		if u.OrganizationMemberships[i].Organization.ID == orgID {
			return &u.OrganizationMemberships[i]
		}
	}
	return nil
}

// Session is one signed-in session on a client.
type Session struct {
	ID                       string        `json:"id"`
	Status                   SessionStatus `json:"status"`
	User                     *User         `json:"user"`
	LastActiveOrganizationID string        `json:"last_active_organization_id,omitempty"`
	LastActiveAt             int64         `json:"last_active_at"`
	ExpireAt                 int64         `json:"expire_at"`
	AbandonAt                int64         `json:"abandon_at"`
	CreatedAt                int64         `json:"created_at"`
	UpdatedAt                int64         `json:"updated_at"`
}

// IsActive reports whether the session is active and not yet expired at now.
func (s *Session) IsActive(now time.Time) bool {
	return s != nil && s.Status == SessionActive && now.UnixMilli() < s.ExpireAt
}

// ActiveOrganization resolves the session's active organization through the
// user's memberships. It returns nil when none is active.
func (s *Session) ActiveOrganization() *Organization {
	if s == nil || s.User == nil {
		return nil
	}
	m := s.User.Membership(s.LastActiveOrganizationID)
	if m == nil {
		return nil
	}
	org := m.Organization
	return &org
}

// Factor is one way to satisfy a sign-in step.
type Factor struct {
	Strategy       string `json:"strategy"`
	SafeIdentifier string `json:"safe_identifier,omitempty"`
	EmailAddressID string `json:"email_address_id,omitempty"`
	PhoneNumberID  string `json:"phone_number_id,omitempty"`
	Primary        bool   `json:"primary,omitempty"`
}

// SignIn is the provider's record of a sign-in attempt.
type SignIn struct {
	ID                       string        `json:"id"`
	Status                   SignInStatus  `json:"status"`
	Identifier               string        `json:"identifier,omitempty"`
	SupportedIdentifiers     []string      `json:"supported_identifiers,omitempty"`
	SupportedFirstFactors    []Factor      `json:"supported_first_factors"`
	SupportedSecondFactors   []Factor      `json:"supported_second_factors"`
	FirstFactorVerification  *Verification `json:"first_factor_verification,omitempty"`
	SecondFactorVerification *Verification `json:"second_factor_verification,omitempty"`
	CreatedSessionID         string        `json:"created_session_id,omitempty"`
	AbandonAt                int64         `json:"abandon_at"`
}

// IsComplete reports whether the attempt produced a session.
func (s *SignIn) IsComplete() bool {
	return s != nil && s.Status == SignInComplete && s.CreatedSessionID != ""
}

func findFactor(factors []Factor, strategy, identifierID string) *Factor {
	for i := range factors {
		f := &factors[i]
		if f.Strategy != strategy {
			continue
		}
		if identifierID == "" || f.EmailAddressID == identifierID || f.PhoneNumberID == identifierID {
			return f
		}
	}
	return nil
}

// SignUp is the provider's record of a sign-up attempt.
type SignUp struct {
	ID               string                   `json:"id"`
	Status           SignUpStatus             `json:"status"`
	RequiredFields   []string                 `json:"required_fields"`
	OptionalFields   []string                 `json:"optional_fields"`
	MissingFields    []string                 `json:"missing_fields"`
	UnverifiedFields []string                 `json:"unverified_fields"`
	Verifications    map[string]*Verification `json:"verifications"`
	EmailAddress     string                   `json:"email_address,omitempty"`
	PhoneNumber      string                   `json:"phone_number,omitempty"`
	Username         string                   `json:"username,omitempty"`
	FirstName        string                   `json:"first_name,omitempty"`
	LastName         string                   `json:"last_name,omitempty"`
	PasswordEnabled  bool                     `json:"password_enabled"`
	CreatedSessionID string                   `json:"created_session_id,omitempty"`
	CreatedUserID    string                   `json:"created_user_id,omitempty"`
	AbandonAt        int64                    `json:"abandon_at"`
}

// IsComplete reports whether the attempt produced a session.
func (s *SignUp) IsComplete() bool {
	return s != nil && s.Status == SignUpComplete && s.CreatedSessionID != ""
}

// ClientRecord is the provider's view of this device: its sessions and any
// in-progress sign-in or sign-up.
type ClientRecord struct {
	ID                  string    `json:"id"`
	Sessions            []Session `json:"sessions"`
	SignIn              *SignIn   `json:"sign_in"`
	SignUp              *SignUp   `json:"sign_up"`
	LastActiveSessionID string    `json:"last_active_session_id,omitempty"`
	CreatedAt           int64     `json:"created_at"`
	UpdatedAt           int64     `json:"updated_at"`
}

// SessionByID returns the session with id, or nil.
func (c *ClientRecord) SessionByID(id string) *Session {
	if c == nil || id == "" {
		return nil
	}
	for i := range c.Sessions {
		if c.Sessions[i].ID == id {
			return &c.Sessions[i]
		}
	}
	return nil
}

// ActiveSession picks the session to adopt: the last active one when it is
// still active, otherwise the first active one.
func (c *ClientRecord) ActiveSession(now time.Time) *Session {
	if c == nil {
		return nil
	}
	if s := c.SessionByID(c.LastActiveSessionID); s.IsActive(now) {
		return s
	}
	for i := range c.Sessions {
		if c.Sessions[i].IsActive(now) {
			return &c.Sessions[i]
		}
	}
	return nil
}

// ============================================================================
// Decoding
// ============================================================================

var (
	errEmptyPayload = errors.New("empty payload")
	errMissingID    = errors.New("missing id")
	errMissingState = errors.New("missing status")
)

func (s *Session) validate() error {
	if s.ID == "" {
		return errMissingID
	}
	if s.Status == "" {
		return errMissingState
	}
	if s.User != nil {
		return s.User.validate()
	}
	return nil
}

func (u *User) validate() error {
	if u.ID == "" {
		return errMissingID
	}
	return nil
}

func (o *Organization) validate() error {
	if o.ID == "" {
		return errMissingID
	}
	return nil
}

func (m *OrganizationMembership) validate() error {
	if m.ID == "" {
		return errMissingID
	}
	return m.Organization.validate()
}

func (s *SignIn) validate() error {
	if s.ID == "" {
		return errMissingID
	}
	if s.Status == "" {
		return errMissingState
	}
	return nil
}

func (s *SignUp) validate() error {
	if s.ID == "" {
		return errMissingID
	}
	if s.Status == "" {
		return errMissingState
	}
	return nil
}

func (c *ClientRecord) validate() error {
	for i := range c.Sessions {
		if err := c.Sessions[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

// decodeResource unmarshals raw into a T and checks the fields every T must
// carry. Failures are reported as *MalformedResponseError.
func decodeResource[T any, P interface {
	*T
	validate() error
}](raw json.RawMessage) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &MalformedResponseError{Err: errEmptyPayload}
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if err := P(v).validate(); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	return v, nil
}
