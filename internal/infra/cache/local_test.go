package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCache_SetThenGet(t *testing.T) {
	c := newLocalCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	value, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), value)
}

func TestLocalCache_ExpiredEntryIsAMissAndEvicted(t *testing.T) {
	c := newLocalCache()
	ctx := context.Background()

	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 30*time.Second))

	// Advance past the TTL.
	c.now = func() time.Time { return now.Add(31 * time.Second) }

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	// The expired entry was removed as a side effect of the read.
	c.mu.RLock()
	_, still := c.entries["k"]
	c.mu.RUnlock()
	assert.False(t, still)
}

func TestLocalCache_MissingKey(t *testing.T) {
	c := newLocalCache()

	_, found, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocalCache_Del(t *testing.T) {
	c := newLocalCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Del(ctx, "k"))

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}
