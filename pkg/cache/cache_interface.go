package cache

import (
	"context"
	"time"
)

// Cache is the contract the repositories program against, so the redis
// implementation can be swapped for an in-memory one in tests.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
