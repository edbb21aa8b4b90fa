package service

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/idx"
)

const (
	RoleAdmin  = "org:admin"
	RoleMember = "org:member"

	defaultPageSize = 10
	maxPageSize     = 500
)

func (s *Service) membershipLocked(userID, orgID string) *membershipRecord {
	for _, m := range s.memberships {
		if m.UserID == userID && m.OrgID == orgID {
			return m
		}
	}
	return nil
}

func (s *Service) addMemberLocked(orgID, userID, role string) *membershipRecord {
	now := s.now()
	m := &membershipRecord{
		ID:        s.newID(idx.KindMembership),
		OrgID:     orgID,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.memberships[m.ID] = m
	return m
}

// Memberships pages through the current user's memberships. limit <= 0
// takes the default page size.
func (s *Service) Memberships(clientID string, limit, offset int) (*authsdk.OrganizationList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, e := s.lastActiveSessionLocked(clientID)
	if e != nil {
		return nil, e
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)
	offset = max(offset, 0)

	all := s.userMembershipsLocked(sess.UserID)
	out := &authsdk.OrganizationList{
		Data:       []authsdk.OrganizationMembership{},
		TotalCount: len(all),
	}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		out.Data = append(out.Data, s.renderMembershipLocked(all[i]))
	}
	return out, nil
}

// CreateOrganization creates an organization with the current user as its
// admin. An empty slug is derived from name.
func (s *Service) CreateOrganization(clientID, name, slug string) (*authsdk.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, paramMissing("name")
	}
	if slug == "" {
		slug = slugify(name)
	}
	if slug == "" {
		return nil, paramInvalid("slug", "slug must contain letters or digits.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, e := s.lastActiveSessionLocked(clientID)
	if e != nil {
		return nil, e
	}
	for _, o := range s.orgs {
		if o.Slug == slug {
			return nil, &Error{
				Status:      http.StatusUnprocessableEntity,
				Code:        CodeOrganizationSlugExists,
				Message:     "This slug is already taken",
				LongMessage: "This slug is already taken. Please try another.",
				Param:       "slug",
			}
		}
	}

	now := s.now()
	org := &orgRecord{
		ID:        s.newID(idx.KindOrg),
		Name:      name,
		Slug:      slug,
		CreatedBy: sess.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orgs[org.ID] = org
	s.addMemberLocked(org.ID, sess.UserID, RoleAdmin)

	s.logger.Info("organization created", "organization_id", org.ID, "slug", slug, "user_id", sess.UserID)
	return s.renderOrgLocked(org), nil
}

// AddMember adds userID to orgID with role.
func (s *Service) AddMember(orgID, userID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgs[orgID]; !ok {
		return notFound("organization")
	}
	if _, ok := s.users[userID]; !ok {
		return notFound("user")
	}
	if s.membershipLocked(userID, orgID) == nil {
		s.addMemberLocked(orgID, userID, role)
	}
	return nil
}

// slugify lowercases name and joins its letter and digit runs with dashes.
func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
