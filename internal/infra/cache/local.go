// Package cache implements the tiered cache: a preferred remote Redis tier
// with an automatic process-local fallback.
package cache

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	value     []byte
	expiresAt time.Time
}

// localCache is the in-process tier: a mutex-guarded map with absolute expiry
// timestamps. Eviction is lazy; an expired entry is deleted when a read
// encounters it, there is no background sweep.
type localCache struct {
	mu      sync.RWMutex
	entries map[string]localEntry
	now     func() time.Time
}

func newLocalCache() *localCache {
	return &localCache{
		entries: make(map[string]localEntry),
		now:     time.Now,
	}
}

// Get returns the stored value, treating an expired entry as a miss and
// deleting it as a side effect of the read.
func (c *localCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// replaced the entry with a fresh one.
		if cur, still := c.entries[key]; still && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		return nil, false, nil
	}

	return entry.value, true, nil
}

// Set stores a value with an absolute expiry computed from the TTL.
func (c *localCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = localEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()

	return nil
}

// Del removes a key.
func (c *localCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	return nil
}
