package redis

import (
	"context"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations and implements store.SessionStore
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance. Addr is either a
// redis:// / rediss:// URL or a plain host:port.
func NewRedisClient(Addr string, DB int) (*RedisClient, error) {
	var client *redis.Client
	if strings.HasPrefix(Addr, "redis://") || strings.HasPrefix(Addr, "rediss://") {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			return nil, err
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}, nil
}
