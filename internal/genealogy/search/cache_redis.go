package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gimm:search:"

// RedisCache stores search entries in Redis with a fixed TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache creates a cache backed by client.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the entry for (version, key), or nil on a miss.
func (c *RedisCache) Get(ctx context.Context, version, key string) (*Entry, error) {
	raw, err := c.client.Get(ctx, redisKey(version, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode cached search: %w", err)
	}
	return &entry, nil
}

// Set stores entry under (version, key).
func (c *RedisCache) Set(ctx context.Context, version, key string, entry *Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode search entry: %w", err)
	}
	if err := c.client.Set(ctx, redisKey(version, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func redisKey(version, key string) string {
	sum := sha256.Sum256([]byte(key))
	return redisKeyPrefix + version + ":" + hex.EncodeToString(sum[:])
}
