package redis

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
	"github.com/redis/go-redis/v9"
)

// Store is a kvstore.Store backed by Redis string keys.
type Store struct {
	client redis.UniversalClient
	prefix string

	// TTL, when positive, is applied to every SetString. Zero keeps keys forever.
	TTL time.Duration
}

var _ kvstore.Store = (*Store)(nil)

// New wraps an existing Redis client. Every key is stored as prefix+key.
func New(client redis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Dial connects to the Redis instance at addr and verifies it is reachable.
func Dial(ctx context.Context, addr, password, prefix string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return New(client, prefix), nil
}

func (s *Store) key(k string) string { return s.prefix + k }

func (s *Store) GetString(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", kvstore.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *Store) SetString(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.TTL).Err()
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *Store) Close() error { return s.client.Close() }
