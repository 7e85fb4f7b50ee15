package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/bhujal/registry/internal/models"
)

func setupRedis(t *testing.T) (*RedisMapCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisMapCache(rdb, time.Minute), mr
}

func TestRedisMapCacheRoundTrip(t *testing.T) {
	c, mr := setupRedis(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	entries := []models.MapEntry{{Name: "Asha", Phone: "+919876543210", Latitude: "12.9716", Longitude: "77.5946"}}
	require.NoError(t, c.Set(ctx, entries))
	require.True(t, mr.Exists(MapKey))
	require.Equal(t, time.Minute, mr.TTL(MapKey))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entries, got)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisMapCacheEmptyListingIsAHit(t *testing.T) {
	c, _ := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, nil))
	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, got)
}

func TestRedisMapCacheExpiry(t *testing.T) {
	c, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, []models.MapEntry{{Name: "Asha"}}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisMapCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := setupRedis(t)
	require.NoError(t, mr.Set(MapKey, "{not json"))

	_, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisMapCacheUnavailable(t *testing.T) {
	c, mr := setupRedis(t)
	mr.Close()

	_, _, err := c.Get(context.Background())
	require.Error(t, err)
}

func TestNoopMapCache(t *testing.T) {
	var c MapCache = NoopMapCache{}
	require.NoError(t, c.Set(context.Background(), []models.MapEntry{{Name: "x"}}))
	_, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, c.Invalidate(context.Background()))
}
