package kvstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
	redisstore "github.com/aussiebroadwan/frontauth/pkg/kvstore/drivers/redis"
)

// setupRedisContainer starts redis:7-alpine and returns its address.
func setupRedisContainer(t *testing.T) (string, func()) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return fmt.Sprintf("%s:%s", host, mappedPort.Port()), cleanup
}

func TestRedisStore(t *testing.T) {
	addr, cleanup := setupRedisContainer(t)
	defer cleanup()

	store, err := redisstore.Dial(t.Context(), addr, "", "frontauth:")
	require.NoError(t, err)
	defer store.Close()

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.SetString(t.Context(), "greeting", "hello"))
		v, err := store.GetString(t.Context(), "greeting")
		require.NoError(t, err)
		require.Equal(t, "hello", v)

		require.NoError(t, store.Remove(t.Context(), "greeting"))
		_, err = store.GetString(t.Context(), "greeting")
		require.ErrorIs(t, err, kvstore.ErrNotFound)

		require.NoError(t, store.Remove(t.Context(), "greeting"), "removing a missing key is not an error")
	})

	t.Run("prefixed instances do not collide", func(t *testing.T) {
		a := kvstore.Prefixed(store, "pk_a:")
		b := kvstore.Prefixed(store, "pk_b:")

		require.NoError(t, a.SetString(t.Context(), authsdk.DevBrowserKey, "token-a"))
		require.NoError(t, b.SetString(t.Context(), authsdk.DevBrowserKey, "token-b"))

		va, err := a.GetString(t.Context(), authsdk.DevBrowserKey)
		require.NoError(t, err)
		vb, err := b.GetString(t.Context(), authsdk.DevBrowserKey)
		require.NoError(t, err)
		require.Equal(t, "token-a", va)
		require.Equal(t, "token-b", vb)
	})
}
