package service

import (
	"sort"
	"strings"
	"time"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
)

func ms(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func (s *Service) renderClientLocked(c *clientRecord) *authsdk.ClientRecord {
	out := &authsdk.ClientRecord{
		ID:                  c.ID,
		Sessions:            []authsdk.Session{},
		LastActiveSessionID: c.LastActiveSessionID,
		CreatedAt:           ms(c.CreatedAt),
		UpdatedAt:           ms(c.UpdatedAt),
	}
	for _, sess := range s.activeSessionsLocked(c) {
		out.Sessions = append(out.Sessions, *s.renderSessionLocked(sess))
	}
	if si, ok := s.signIns[c.SignInID]; ok {
		out.SignIn = s.renderSignInLocked(si)
	}
	if su, ok := s.signUps[c.SignUpID]; ok {
		out.SignUp = renderSignUp(su)
	}
	return out
}

func (s *Service) renderSessionLocked(sess *sessionRecord) *authsdk.Session {
	out := &authsdk.Session{
		ID:                       sess.ID,
		Status:                   sess.Status,
		LastActiveOrganizationID: sess.ActiveOrgID,
		LastActiveAt:             ms(sess.LastActiveAt),
		ExpireAt:                 ms(sess.ExpireAt),
		AbandonAt:                ms(sess.AbandonAt),
		CreatedAt:                ms(sess.CreatedAt),
		UpdatedAt:                ms(sess.UpdatedAt),
	}
	if u, ok := s.users[sess.UserID]; ok {
		out.User = s.renderUserLocked(u)
	}
	return out
}

func (s *Service) renderUserLocked(u *userRecord) *authsdk.User {
	out := &authsdk.User{
		ID:                    u.ID,
		Username:              u.Username,
		FirstName:             u.FirstName,
		LastName:              u.LastName,
		PrimaryEmailAddressID: u.PrimaryEmailID,
		PrimaryPhoneNumberID:  u.PrimaryPhoneID,
		EmailAddresses:        []authsdk.EmailAddress{},
		PhoneNumbers:          []authsdk.PhoneNumber{},
		PasswordEnabled:       u.PasswordHash != "",
		TwoFactorEnabled:      u.secondFactorEnabled(),
		TOTPEnabled:           u.TOTPSecret != "",
		CreatedAt:             ms(u.CreatedAt),
		UpdatedAt:             ms(u.UpdatedAt),
	}
	verified := &authsdk.Verification{Status: authsdk.VerificationVerified}
	for _, e := range u.Emails {
		out.EmailAddresses = append(out.EmailAddresses, authsdk.EmailAddress{
			ID: e.ID, EmailAddress: e.Address, Verification: verified,
		})
	}
	for _, p := range u.Phones {
		out.PhoneNumbers = append(out.PhoneNumbers, authsdk.PhoneNumber{
			ID: p.ID, PhoneNumber: p.Number, Verification: verified,
		})
	}
	out.OrganizationMemberships = s.renderMembershipsLocked(u.ID)
	return out
}

// userMembershipsLocked returns the user's memberships, oldest first.
func (s *Service) userMembershipsLocked(userID string) []*membershipRecord {
	var out []*membershipRecord
	for _, m := range s.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Service) renderMembershipsLocked(userID string) []authsdk.OrganizationMembership {
	list := s.userMembershipsLocked(userID)
	out := make([]authsdk.OrganizationMembership, 0, len(list))
	for _, m := range list {
		out = append(out, s.renderMembershipLocked(m))
	}
	return out
}

func (s *Service) renderMembershipLocked(m *membershipRecord) authsdk.OrganizationMembership {
	out := authsdk.OrganizationMembership{
		ID:        m.ID,
		Role:      m.Role,
		CreatedAt: ms(m.CreatedAt),
		UpdatedAt: ms(m.UpdatedAt),
	}
	if org, ok := s.orgs[m.OrgID]; ok {
		out.Organization = *s.renderOrgLocked(org)
	}
	return out
}

func (s *Service) renderOrgLocked(o *orgRecord) *authsdk.Organization {
	members := 0
	for _, m := range s.memberships {
		if m.OrgID == o.ID {
			members++
		}
	}
	return &authsdk.Organization{
		ID:           o.ID,
		Name:         o.Name,
		Slug:         o.Slug,
		MembersCount: members,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    ms(o.CreatedAt),
		UpdatedAt:    ms(o.UpdatedAt),
	}
}

func renderVerification(v *verificationRecord) *authsdk.Verification {
	if v == nil {
		return nil
	}
	return &authsdk.Verification{
		Status:   v.Status,
		Strategy: v.Strategy,
		Attempts: v.Attempts,
		ExpireAt: ms(v.ExpireAt),
	}
}

func (s *Service) renderSignInLocked(si *signInRecord) *authsdk.SignIn {
	out := &authsdk.SignIn{
		ID:                       si.ID,
		Status:                   si.Status,
		Identifier:               si.Identifier,
		SupportedIdentifiers:     []string{"email_address", "phone_number", "username"},
		SupportedFirstFactors:    []authsdk.Factor{},
		SupportedSecondFactors:   []authsdk.Factor{},
		FirstFactorVerification:  renderVerification(si.FirstFactor),
		SecondFactorVerification: renderVerification(si.SecondFactor),
		CreatedSessionID:         si.CreatedSessionID,
		AbandonAt:                ms(si.AbandonAt),
	}
	if u, ok := s.users[si.UserID]; ok {
		out.SupportedFirstFactors = firstFactors(u)
		if si.Status == authsdk.SignInNeedsSecondFactor {
			out.SupportedSecondFactors = secondFactors(u)
		}
	}
	return out
}

func firstFactors(u *userRecord) []authsdk.Factor {
	out := []authsdk.Factor{}
	if u.PasswordHash != "" {
		out = append(out, authsdk.Factor{Strategy: authsdk.StrategyPassword})
	}
	for _, e := range u.Emails {
		out = append(out, authsdk.Factor{
			Strategy:       authsdk.StrategyEmailCode,
			SafeIdentifier: maskEmail(e.Address),
			EmailAddressID: e.ID,
			Primary:        e.ID == u.PrimaryEmailID,
		})
	}
	for _, p := range u.Phones {
		out = append(out, authsdk.Factor{
			Strategy:       authsdk.StrategyPhoneCode,
			SafeIdentifier: maskPhone(p.Number),
			PhoneNumberID:  p.ID,
			Primary:        p.ID == u.PrimaryPhoneID,
		})
	}
	return out
}

func secondFactors(u *userRecord) []authsdk.Factor {
	if !u.secondFactorEnabled() {
		return []authsdk.Factor{}
	}
	out := []authsdk.Factor{
		{Strategy: authsdk.StrategyTOTP},
		{Strategy: authsdk.StrategyBackupCode},
	}
	for _, p := range u.Phones {
		out = append(out, authsdk.Factor{
			Strategy:       authsdk.StrategyPhoneCode,
			SafeIdentifier: maskPhone(p.Number),
			PhoneNumberID:  p.ID,
			Primary:        p.ID == u.PrimaryPhoneID,
		})
	}
	return out
}

func renderSignUp(su *signUpRecord) *authsdk.SignUp {
	out := &authsdk.SignUp{
		ID:               su.ID,
		Status:           su.Status,
		RequiredFields:   []string{authsdk.FieldEmailAddress, "password"},
		OptionalFields:   []string{authsdk.FieldPhoneNumber, "username", "first_name", "last_name"},
		MissingFields:    su.missingFields(),
		UnverifiedFields: su.unverifiedFields(),
		Verifications:    map[string]*authsdk.Verification{},
		EmailAddress:     su.EmailAddress,
		PhoneNumber:      su.PhoneNumber,
		Username:         su.Username,
		FirstName:        su.FirstName,
		LastName:         su.LastName,
		PasswordEnabled:  su.PasswordHash != "",
		CreatedSessionID: su.CreatedSessionID,
		CreatedUserID:    su.CreatedUserID,
		AbandonAt:        ms(su.AbandonAt),
	}
	for field, v := range su.Verifications {
		out.Verifications[field] = renderVerification(v)
	}
	return out
}

// maskEmail turns ada@example.com into a**@example.com.
func maskEmail(addr string) string {
	local, domain, ok := strings.Cut(addr, "@")
	if !ok || local == "" {
		return addr
	}
	return local[:1] + "**@" + domain
}

// maskPhone keeps the last four digits.
func maskPhone(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
