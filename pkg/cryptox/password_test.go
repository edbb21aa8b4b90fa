package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, "pepper")
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

			require.NoError(t, VerifyPassword(tt.password, "pepper", hash))
			require.ErrorIs(t, VerifyPassword(tt.password+"x", "pepper", hash), ErrPasswordMismatch)
			require.ErrorIs(t, VerifyPassword(tt.password, "other-pepper", hash), ErrPasswordMismatch)
		})
	}
}

func TestVerifyPasswordRejectsBadHashes(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{
		"",
		"$argon2i$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$aGFzaA",
	} {
		err := VerifyPassword("pw", "", bad)
		require.Error(t, err, bad)
		require.NotErrorIs(t, err, ErrPasswordMismatch, bad)
	}
}

func TestHashesAreSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same", "")
	require.NoError(t, err)
	b, err := HashPassword("same", "")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
