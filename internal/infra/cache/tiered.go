package cache

import (
	"context"
	"log/slog"
	"net"
	"time"

	"adsync/config"
	"adsync/internal/domain/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// tier is the internal contract both tiers satisfy.
type tier interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// TieredCache prefers the remote Redis tier and degrades silently to the
// local tier on any remote error. Callers never observe the degradation;
// cache misses and cache failures are indistinguishable because the cache is
// an optimization, not a correctness dependency.
type TieredCache struct {
	remote tier // nil when Redis is not configured
	local  tier
	logger *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New builds the tiered cache. The remote tier is gated on the presence of
// both Redis connection settings; without them the local tier serves alone.
func New(params Params) service.Cache {
	cache := &TieredCache{
		local:  newLocalCache(),
		logger: params.Logger,
	}

	redisCfg := params.Config.Redis
	if redisCfg == nil || redisCfg.Host == "" || redisCfg.Port == "" {
		return cache
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(redisCfg.Host, redisCfg.Port),
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	cache.remote = newRemoteCache(client)

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cache
}

// RemoteAvailable reports whether the remote tier is configured. It is a
// static capability probe, not a liveness check.
func (c *TieredCache) RemoteAvailable() bool {
	return c.remote != nil
}

// Get tries the remote tier first and falls back to the local tier on error.
func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.remote != nil {
		value, found, err := c.remote.Get(ctx, key)
		if err == nil {
			return value, found, nil
		}
		c.degrade(ctx, "get", key, err)
	}

	return c.local.Get(ctx, key)
}

// Set writes to the remote tier, falling back to the local tier on error.
func (c *TieredCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.remote != nil {
		err := c.remote.Set(ctx, key, value, ttl)
		if err == nil {
			return nil
		}
		c.degrade(ctx, "set", key, err)
	}

	return c.local.Set(ctx, key, value, ttl)
}

// Del removes the key from whichever tier holds it. Both tiers are cleared
// so a remote outage cannot resurrect a stale local entry later.
func (c *TieredCache) Del(ctx context.Context, key string) error {
	if c.remote != nil {
		if err := c.remote.Del(ctx, key); err != nil {
			c.degrade(ctx, "del", key, err)
		}
	}

	return c.local.Del(ctx, key)
}

func (c *TieredCache) degrade(ctx context.Context, op, key string, err error) {
	if c.logger == nil {
		return
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "cache remote tier degraded to local",
		slog.String("op", op),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}
