package redis

import (
	"Perkdraft/services/store"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ store.SessionStore = (*RedisClient)(nil)

// Put stores value under key with the given TTL (0 means no expiry)
func (rc *RedisClient) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := rc.client.Set(rc.context(ctx), key, value, ttl).Err(); err != nil {
		return fmt.Errorf("error saving key %s: %v", key, err)
	}
	return nil
}

// Get returns the value under key, or store.ErrNotFound
func (rc *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := rc.client.Get(rc.context(ctx), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting key %s: %v", key, err)
	}
	return data, nil
}

func (rc *RedisClient) Delete(ctx context.Context, key string) error {
	if err := rc.client.Del(rc.context(ctx), key).Err(); err != nil {
		return fmt.Errorf("error deleting key %s: %v", key, err)
	}
	return nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}

func (rc *RedisClient) context(ctx context.Context) context.Context {
	if ctx == nil {
		return rc.ctx
	}
	return ctx
}
