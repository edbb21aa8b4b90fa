package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
)

// backupAlphabet drops 0/o, 1/l/i so codes survive being read aloud.
const backupAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"

const backupGroup = 4

// NumericCode returns a random decimal code of the given length, the shape
// of the one-time codes sent by email or SMS.
func NumericCode(length int) (string, error) {
	return randomString(length, "0123456789")
}

// BackupCode returns a single-use second-factor recovery code formatted as
// two dash-separated groups, e.g. "k7dq-m2xa".
func BackupCode() (string, error) {
	s, err := randomString(2*backupGroup, backupAlphabet)
	if err != nil {
		return "", err
	}
	return s[:backupGroup] + "-" + s[backupGroup:], nil
}

func randomString(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}
	max := big.NewInt(int64(len(alphabet)))

	var b strings.Builder
	b.Grow(length)
	for range length {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// FingerprintCode returns a stable, non-reversible fingerprint of a one-time
// or backup code for storage and comparison. Case, spaces and dashes are
// ignored so "K7DQ M2XA" matches "k7dq-m2xa".
func FingerprintCode(code string) string {
	norm := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(code)))

	sum := sha256.Sum256([]byte(norm))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
