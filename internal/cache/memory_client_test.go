package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_SetThenGet(t *testing.T) {
	c := NewMemoryClient(10)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", []byte("v1"), time.Minute))

	got, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func TestMemoryClient_GetMissReturnsErrCacheMiss(t *testing.T) {
	c := NewMemoryClient(10)
	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_ExpiredEntryIsAMiss(t *testing.T) {
	c := NewMemoryClient(10)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k1", []byte("v1"), -time.Second))

	_, err := c.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_DeleteRemovesEntry(t *testing.T) {
	c := NewMemoryClient(10)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k1", []byte("v1"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k1"))

	_, err := c.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_DeleteByPrefix(t *testing.T) {
	c := NewMemoryClient(10)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "q:abc:milk", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "q:abc:eggs", []byte("2"), time.Minute))
	require.NoError(t, c.Set(ctx, "q:xyz:milk", []byte("3"), time.Minute))

	require.NoError(t, c.DeleteByPrefix(ctx, "q:abc:"))

	_, err := c.Get(ctx, "q:abc:milk")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "q:xyz:milk")
	assert.NoError(t, err)
}

func TestMemoryClient_EvictsWhenAtCapacity(t *testing.T) {
	c := NewMemoryClient(2)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k1", []byte("v1"), time.Minute))
	require.NoError(t, c.Set(ctx, "k2", []byte("v2"), time.Minute))
	require.NoError(t, c.Set(ctx, "k3", []byte("v3"), time.Minute))

	c.mu.RLock()
	size := len(c.data)
	c.mu.RUnlock()
	assert.LessOrEqual(t, size, 2)
}

func TestCacheKey_JoinsPartsWithColon(t *testing.T) {
	assert.Equal(t, "q:abc:10:milk", CacheKey("q", "abc", "10", "milk"))
}

func TestQueryCacheKey_ScopesByIndexHashAndTopK(t *testing.T) {
	a := QueryCacheKey("hash1", "milk", 10)
	b := QueryCacheKey("hash2", "milk", 10)
	c := QueryCacheKey("hash1", "milk", 20)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}
