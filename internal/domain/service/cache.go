package service

import (
	"context"
	"time"
)

// Cache is a key-value store with per-entry TTL. Implementations must treat
// absence and expiry identically: a miss, never an error the caller has to
// distinguish. Cache is a performance optimization, not a correctness
// dependency.
type Cache interface {
	// Get returns the stored value and whether it was found. An expired
	// entry is a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes a key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error
}
