// Package cache keeps the public map listing in Redis so the unauthenticated
// listing endpoints do not hit the database on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bhujal/registry/internal/models"
)

// MapKey is the Redis key holding the serialized map listing.
const MapKey = "borewell:map"

// MapCache stores the flattened public listing.
type MapCache interface {
	// Get returns the cached listing. ok is false on a miss.
	Get(ctx context.Context) (entries []models.MapEntry, ok bool, err error)
	Set(ctx context.Context, entries []models.MapEntry) error
	Invalidate(ctx context.Context) error
}

type RedisMapCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ MapCache = (*RedisMapCache)(nil)

func NewRedisMapCache(rdb *redis.Client, ttl time.Duration) *RedisMapCache {
	return &RedisMapCache{rdb: rdb, ttl: ttl}
}

func (c *RedisMapCache) Get(ctx context.Context) ([]models.MapEntry, bool, error) {
	raw, err := c.rdb.Get(ctx, MapKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("map cache get: %w", err)
	}
	var entries []models.MapEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// A corrupt entry is a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return entries, true, nil
}

func (c *RedisMapCache) Set(ctx context.Context, entries []models.MapEntry) error {
	if entries == nil {
		entries = []models.MapEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("map cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, MapKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("map cache set: %w", err)
	}
	return nil
}

func (c *RedisMapCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, MapKey).Err(); err != nil {
		return fmt.Errorf("map cache invalidate: %w", err)
	}
	return nil
}

// NoopMapCache always misses. It is used when Redis is not configured.
type NoopMapCache struct{}

var _ MapCache = NoopMapCache{}

func (NoopMapCache) Get(context.Context) ([]models.MapEntry, bool, error) { return nil, false, nil }
func (NoopMapCache) Set(context.Context, []models.MapEntry) error          { return nil }
func (NoopMapCache) Invalidate(context.Context) error                       { return nil }
