package redis

import (
	"context"
	"time"
)

// ResponseStore stores and replays responses keyed by idempotency key.
type ResponseStore interface {
	GetResponse(ctx context.Context, key string) (*CachedResponse, error)
	SetResponse(ctx context.Context, key string, resp *CachedResponse) error
}

// Locker guards a key while its first request is in flight.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Ensure concrete types implement interfaces.
var (
	_ ResponseStore = (*IdempotencyStore)(nil)
	_ Locker        = (*LockStore)(nil)
)
