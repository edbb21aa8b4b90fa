package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kvstore: not found")

// Store is the minimal key-value contract the SDK persists through. It has no
// transactions; every call stands alone.
type Store interface {
	// GetString returns the value stored under key, or ErrNotFound.
	GetString(ctx context.Context, key string) (string, error)

	// SetString overwrites any previous value under key.
	SetString(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Prefixed namespaces every key of s with prefix, so several SDK instances
// can share one backing store.
func Prefixed(s Store, prefix string) Store {
	if prefix == "" {
		return s
	}
	return &prefixed{inner: s, prefix: prefix}
}

type prefixed struct {
	inner  Store
	prefix string
}

func (p *prefixed) GetString(ctx context.Context, key string) (string, error) {
	return p.inner.GetString(ctx, p.prefix+key)
}

func (p *prefixed) SetString(ctx context.Context, key, value string) error {
	return p.inner.SetString(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.inner.Remove(ctx, p.prefix+key)
}
