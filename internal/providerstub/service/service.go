package service

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/cryptox"
	"github.com/aussiebroadwan/frontauth/pkg/idx"
	"github.com/aussiebroadwan/frontauth/pkg/jwtx"
)

const (
	DefaultSessionTTL = 7 * 24 * time.Hour
	DefaultCodeTTL    = 10 * time.Minute
	DefaultAttemptTTL = 24 * time.Hour

	codeLength        = 6
	minPasswordLength = 8
	backupCodeCount   = 10
)

// Options configures a Service. Zero durations take the package defaults.
type Options struct {
	Signer jwtx.Signer
	Issuer string
	Pepper string
	Logger *slog.Logger
	Now    func() time.Time

	SessionTTL time.Duration
	CodeTTL    time.Duration
	AttemptTTL time.Duration
	TokenTTL   time.Duration

	// MultiSession lets a client hold several active sessions. Without it a
	// new sign-in or sign-up on a signed-in client fails with session_exists.
	MultiSession bool
}

// Service is an in-memory frontend API. It owns every client, session,
// attempt, user and organization, and is safe for concurrent use.
type Service struct {
	mu sync.Mutex

	users       map[string]*userRecord
	clients     map[string]*clientRecord
	sessions    map[string]*sessionRecord
	signIns     map[string]*signInRecord
	signUps     map[string]*signUpRecord
	orgs        map[string]*orgRecord
	memberships map[string]*membershipRecord
	devBrowsers map[string]string // token -> client id
	outbox      map[string]outboxEntry // keyed by lowercased email or phone

	signer       jwtx.Signer
	issuer       string
	pepper       string
	logger       *slog.Logger
	now          func() time.Time
	sessionTTL   time.Duration
	codeTTL      time.Duration
	attemptTTL   time.Duration
	tokenTTL     time.Duration
	multiSession bool
}

func New(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		users:        make(map[string]*userRecord),
		clients:      make(map[string]*clientRecord),
		sessions:     make(map[string]*sessionRecord),
		signIns:      make(map[string]*signInRecord),
		signUps:      make(map[string]*signUpRecord),
		orgs:         make(map[string]*orgRecord),
		memberships:  make(map[string]*membershipRecord),
		devBrowsers:  make(map[string]string),
		outbox:       make(map[string]outboxEntry),
		signer:       opts.Signer,
		issuer:       opts.Issuer,
		pepper:       opts.Pepper,
		logger:       opts.Logger,
		now:          opts.Now,
		sessionTTL:   orDefault(opts.SessionTTL, DefaultSessionTTL),
		codeTTL:      orDefault(opts.CodeTTL, DefaultCodeTTL),
		attemptTTL:   orDefault(opts.AttemptTTL, DefaultAttemptTTL),
		tokenTTL:     orDefault(opts.TokenTTL, jwtx.DefaultSessionTokenTTL),
		multiSession: opts.MultiSession,
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func (s *Service) newID(k idx.Kind) string {
	return idx.NewAt(k, s.now()).String()
}

// Ready reports whether the service can mint session tokens.
func (s *Service) Ready() bool {
	return s.signer != nil
}

// ============================================================================
// Clients
// ============================================================================

// CreateClient registers a new, empty client and returns its id.
func (s *Service) CreateClient() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createClientLocked().ID
}

func (s *Service) createClientLocked() *clientRecord {
	now := s.now()
	c := &clientRecord{ID: s.newID(idx.KindClient), CreatedAt: now, UpdatedAt: now}
	s.clients[c.ID] = c
	return c
}

// HasClient reports whether id names a known client.
func (s *Service) HasClient(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.clients[id]
	return ok
}

// CreateDevBrowser creates a client bound to a fresh dev-browser token.
func (s *Service) CreateDevBrowser() (token, clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.createClientLocked()
	token = s.newID(idx.KindDevBrowser)
	s.devBrowsers[token] = c.ID
	return token, c.ID
}

// ClientForDevBrowser resolves a dev-browser token to its client.
func (s *Service) ClientForDevBrowser(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.devBrowsers[token]
	return id, ok
}

// LastCode returns the most recent verification code sent to an email
// address or phone number.
func (s *Service) LastCode(identifier string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.outbox[strings.ToLower(identifier)]
	return entry.Code, ok
}

type outboxEntry struct {
	Code   string
	SentAt time.Time
}

// deliverLocked stands in for email and SMS delivery: the code lands in the
// outbox and the log.
func (s *Service) deliverLocked(to, strategy string) (string, error) {
	code, err := cryptox.NumericCode(codeLength)
	if err != nil {
		return "", err
	}
	s.outbox[strings.ToLower(to)] = outboxEntry{Code: code, SentAt: s.now()}
	s.logger.Info("verification code issued", "to", to, "strategy", strategy, "code", code)
	return code, nil
}

func (s *Service) clientLocked(id string) (*clientRecord, *Error) {
	c, ok := s.clients[id]
	if !ok {
		return nil, notFound("client")
	}
	return c, nil
}

// activeSessionsLocked returns the client's sessions that are still usable,
// marking lapsed ones expired on the way.
func (s *Service) activeSessionsLocked(c *clientRecord) []*sessionRecord {
	now := s.now()
	var out []*sessionRecord
	for _, sid := range c.SessionIDs {
		sess, ok := s.sessions[sid]
		if !ok {
			continue
		}
		s.expireLocked(sess, now)
		if sess.Status == authsdk.SessionActive {
			out = append(out, sess)
		}
	}
	return out
}

func (s *Service) expireLocked(sess *sessionRecord, now time.Time) {
	if sess.Status == authsdk.SessionActive && !now.Before(sess.ExpireAt) {
		sess.Status = authsdk.SessionExpired
		sess.UpdatedAt = now
	}
}

// lastActiveSessionLocked resolves the session /me style endpoints act on.
func (s *Service) lastActiveSessionLocked(clientID string) (*sessionRecord, *Error) {
	c, ok := s.clients[clientID]
	if !ok {
		return nil, signedOut()
	}
	active := s.activeSessionsLocked(c)
	for _, sess := range active {
		if sess.ID == c.LastActiveSessionID {
			return sess, nil
		}
	}
	if len(active) > 0 {
		return active[0], nil
	}
	return nil, signedOut()
}

func (s *Service) hasActiveSessionLocked(clientID string) bool {
	c, ok := s.clients[clientID]
	return ok && len(s.activeSessionsLocked(c)) > 0
}
