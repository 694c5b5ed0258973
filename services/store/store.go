package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for absent or expired keys
var ErrNotFound = errors.New("store: key not found")

// SessionStore is the persistence contract used by the session manager.
// A Get must observe the caller's own completed Put; concurrent writers to
// the same key are last-write-wins.
type SessionStore interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
