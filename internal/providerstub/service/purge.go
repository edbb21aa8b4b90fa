package service

import (
	"slices"
	"time"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
)

// PurgeStats counts what one Purge removed.
type PurgeStats struct {
	SignIns  int
	SignUps  int
	Sessions int
	Codes    int
}

// Purge drops attempts past their abandon time and sessions that ended more
// than retention ago, along with outbox codes that can no longer be
// redeemed. Expired sessions are marked on the way.
func (s *Service) Purge(retention time.Duration) PurgeStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var stats PurgeStats

	for id, si := range s.signIns {
		if !now.Before(si.AbandonAt) {
			delete(s.signIns, id)
			if c, ok := s.clients[si.ClientID]; ok && c.SignInID == id {
				c.SignInID = ""
			}
			stats.SignIns++
		}
	}

	for id, su := range s.signUps {
		if !now.Before(su.AbandonAt) {
			delete(s.signUps, id)
			if c, ok := s.clients[su.ClientID]; ok && c.SignUpID == id {
				c.SignUpID = ""
			}
			stats.SignUps++
		}
	}

	for id, sess := range s.sessions {
		s.expireLocked(sess, now)
		if sess.Status == authsdk.SessionActive || now.Sub(sess.UpdatedAt) < retention {
			continue
		}
		delete(s.sessions, id)
		if c, ok := s.clients[sess.ClientID]; ok {
			c.SessionIDs = slices.DeleteFunc(c.SessionIDs, func(sid string) bool { return sid == id })
			if c.LastActiveSessionID == id {
				c.LastActiveSessionID = ""
			}
		}
		stats.Sessions++
	}

	for to, entry := range s.outbox {
		if now.Sub(entry.SentAt) >= s.codeTTL {
			delete(s.outbox, to)
			stats.Codes++
		}
	}

	return stats
}
