package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// remoteCache is the Redis tier.
type remoteCache struct {
	client redis.UniversalClient
}

func newRemoteCache(client redis.UniversalClient) *remoteCache {
	return &remoteCache{client: client}
}

// Get returns the stored value; a missing key is a miss, not an error.
func (c *remoteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, errors.Wrap(err, "redis get")
	}

	return value, true, nil
}

// Set stores a value with the given TTL; Redis enforces the expiry.
func (c *remoteCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}

	return nil
}

// Del removes a key; deleting a missing key is not an error.
func (c *remoteCache) Del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return errors.Wrap(err, "redis del")
	}

	return nil
}
