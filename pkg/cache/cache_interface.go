package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// Keeping it behind an interface allows swapping Redis for an
// in-memory fake in tests.
type Cache interface {
	// Get fetches a key and unmarshals it into dest.
	// Returns (found, error); on a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	// Used to revoke all sessions of a user at once.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
