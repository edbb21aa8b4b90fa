// Package idx generates the resource ids handed out by the Frontend API:
// a kind prefix, an underscore and a ULID, e.g. "sess_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV".
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind names the resource an id belongs to.
type Kind string

const (
	KindClient     Kind = "client"
	KindSession    Kind = "sess"
	KindSignIn     Kind = "sia"
	KindSignUp     Kind = "sua"
	KindUser       Kind = "user"
	KindIdentifier Kind = "idn"
	KindOrg        Kind = "org"
	KindMembership Kind = "orgmem"
	KindDevBrowser Kind = "dvb"
)

// ErrInvalid reports a malformed id.
var ErrInvalid = errors.New("idx: invalid id")

const sep = "_"

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

func newULID(t time.Time) ulid.ULID {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t.UTC()), entropy)
}

// New returns a bare ULID string, used where no resource kind applies
// (request ids).
func New() string {
	return newULID(time.Now()).String()
}

// ID is a kind-tagged resource id.
type ID string

// NewAt returns an id of kind k whose timestamp is t. Ids minted in the same
// millisecond still sort in creation order.
func NewAt(k Kind, t time.Time) ID {
	return ID(string(k) + sep + newULID(t).String())
}

// Parse validates s and checks it is of kind k.
func Parse(s string, k Kind) (ID, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), string(k)+sep)
	if !ok {
		return "", ErrInvalid
	}
	if _, err := ulid.ParseStrict(rest); err != nil {
		return "", ErrInvalid
	}
	return ID(string(k) + sep + rest), nil
}

// Kind returns the resource kind, or "" when id has no separator.
func (id ID) Kind() Kind {
	k, _, ok := strings.Cut(string(id), sep)
	if !ok {
		return ""
	}
	return Kind(k)
}

// Time returns the creation time embedded in id, or the zero time.
func (id ID) Time() time.Time {
	_, rest, _ := strings.Cut(string(id), sep)
	u, err := ulid.ParseStrict(rest)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}

func (id ID) String() string { return string(id) }
