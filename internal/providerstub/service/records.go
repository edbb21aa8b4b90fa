package service

import (
	"time"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
)

type emailRecord struct {
	ID      string
	Address string
}

type phoneRecord struct {
	ID     string
	Number string
}

type userRecord struct {
	ID             string
	Username       string
	FirstName      string
	LastName       string
	Emails         []emailRecord
	Phones         []phoneRecord
	PrimaryEmailID string
	PrimaryPhoneID string
	PasswordHash   string
	TOTPSecret     string
	BackupCodes    map[string]struct{} // fingerprints
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *userRecord) email(id string) *emailRecord {
	for i := range u.Emails {
		if u.Emails[i].ID == id {
			return &u.Emails[i]
		}
	}
	return nil
}

func (u *userRecord) phone(id string) *phoneRecord {
	for i := range u.Phones {
		if u.Phones[i].ID == id {
			return &u.Phones[i]
		}
	}
	return nil
}

func (u *userRecord) secondFactorEnabled() bool {
	return u.TOTPSecret != ""
}

type clientRecord struct {
	ID                  string
	SessionIDs          []string
	SignInID            string
	SignUpID            string
	LastActiveSessionID string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type sessionRecord struct {
	ID           string
	ClientID     string
	UserID       string
	Status       authsdk.SessionStatus
	ActiveOrgID  string
	LastActiveAt time.Time
	ExpireAt     time.Time
	AbandonAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// verificationRecord holds one pending or finished code check. codeHash is
// the fingerprint of the code that was sent.
type verificationRecord struct {
	Status   string
	Strategy string
	Attempts int
	ExpireAt time.Time
	Target   string // email or phone id for sign-in, field name for sign-up
	codeHash string
}

type signInRecord struct {
	ID               string
	ClientID         string
	UserID           string
	Status           authsdk.SignInStatus
	Identifier       string
	FirstFactor      *verificationRecord
	SecondFactor     *verificationRecord
	CreatedSessionID string
	AbandonAt        time.Time
}

type signUpRecord struct {
	ID               string
	ClientID         string
	Status           authsdk.SignUpStatus
	EmailAddress     string
	PhoneNumber      string
	Username         string
	FirstName        string
	LastName         string
	PasswordHash     string
	Verifications    map[string]*verificationRecord
	CreatedSessionID string
	CreatedUserID    string
	AbandonAt        time.Time
}

type orgRecord struct {
	ID        string
	Name      string
	Slug      string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type membershipRecord struct {
	ID        string
	OrgID     string
	UserID    string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
