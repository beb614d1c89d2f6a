package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "inventory"

// RedisEntityCache implements EntityCache with JSON values under a TTL
type RedisEntityCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisEntityCache creates a new Redis backed entity cache
func NewRedisEntityCache(client redis.UniversalClient, ttl time.Duration) repository.EntityCache {
	return &RedisEntityCache{
		client: client,
		ttl:    ttl,
	}
}

// CacheKey returns the Redis key an entity is cached under. The hash tag keeps
// it in the same cluster slot as its VersionKey.
func CacheKey(kind entity.Kind, key string) string {
	return fmt.Sprintf("%s:{%s:%s}", cacheKeyPrefix, kind, key)
}

// VersionKey returns the Redis key holding the invalidation generation of an entity.
// Generations never expire so a stale reader cannot see the counter reset.
func VersionKey(kind entity.Kind, key string) string {
	return fmt.Sprintf("%s:version:{%s:%s}", cacheKeyPrefix, kind, key)
}

// Get decodes the cached entity into dest; a miss returns false and no error
func (c *RedisEntityCache) Get(ctx context.Context, kind entity.Kind, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, CacheKey(kind, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s %s: %w", kind, key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s %s: %w", kind, key, err)
	}
	return true, nil
}

// Version reads the generation counter of the entity; a missing counter is 0
func (c *RedisEntityCache) Version(ctx context.Context, kind entity.Kind, key string) (int64, error) {
	version, err := c.client.Get(ctx, VersionKey(kind, key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache version %s %s: %w", kind, key, err)
	}
	return version, nil
}

// fencedSet writes ARGV[2] to KEYS[2] only while KEYS[1] still holds ARGV[1]
var fencedSet = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// Set stores the entity as JSON unless it was invalidated after version was read
func (c *RedisEntityCache) Set(ctx context.Context, kind entity.Kind, key string, value interface{}, version int64) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("cache encode %s %s: %w", kind, key, err)
	}

	keys := []string{VersionKey(kind, key), CacheKey(kind, key)}
	stored, err := fencedSet.Run(ctx, c.client, keys, strconv.FormatInt(version, 10), string(raw), c.ttl.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("cache set %s %s: %w", kind, key, err)
	}
	return stored == 1, nil
}

// Invalidate advances the generation, then drops the cached entity. A read
// that loaded before the advance can no longer store its value.
func (c *RedisEntityCache) Invalidate(ctx context.Context, kind entity.Kind, key string) error {
	if err := c.client.Incr(ctx, VersionKey(kind, key)).Err(); err != nil {
		return fmt.Errorf("cache version bump %s %s: %w", kind, key, err)
	}
	if err := c.client.Del(ctx, CacheKey(kind, key)).Err(); err != nil {
		return fmt.Errorf("cache del %s %s: %w", kind, key, err)
	}
	return nil
}
