package idx_test

import (
	"sort"
	"testing"
	"time"

	"github.com/aussiebroadwan/frontauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAt(t *testing.T) {
	t.Parallel()

	at := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(idx.KindSession, at)

	require.Equal(t, idx.KindSession, id.Kind())
	require.WithinDuration(t, at, id.Time(), time.Millisecond)

	parsed, err := idx.Parse(id.String(), idx.KindSession)
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParse(t *testing.T) {
	t.Parallel()

	id := idx.NewAt(idx.KindClient, time.Now())

	t.Run("wrong kind", func(t *testing.T) {
		_, err := idx.Parse(id.String(), idx.KindUser)
		require.ErrorIs(t, err, idx.ErrInvalid)
	})

	t.Run("broken ulid", func(t *testing.T) {
		_, err := idx.Parse("client_notaulid", idx.KindClient)
		require.ErrorIs(t, err, idx.ErrInvalid)
	})

	t.Run("no separator", func(t *testing.T) {
		require.Equal(t, idx.Kind(""), idx.ID("garbage").Kind())
		require.True(t, idx.ID("garbage").Time().IsZero())
	})
}

func TestOrdering(t *testing.T) {
	t.Parallel()

	// Same millisecond, so ordering comes from the monotonic entropy.
	at := time.Unix(1700000000, 0)
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = idx.NewAt(idx.KindSignIn, at).String()
	}
	require.True(t, sort.StringsAreSorted(ids))
}

func TestNew(t *testing.T) {
	t.Parallel()
	require.Len(t, idx.New(), 26)
	require.NotEqual(t, idx.New(), idx.New())
}
