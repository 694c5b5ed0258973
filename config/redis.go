package config

import (
	"Perkdraft/services/redis"
	"log"
)

// Connect to Redis
func Connect_redis(cfg *Config) (*redis.RedisClient, error) {
	redisClient, err := redis.InitRedis(cfg.RedisURL, cfg.RedisDB)
	if err != nil {
		log.Printf("Error connecting to Redis: %v", err)
		return nil, err
	}
	log.Println("Redis connection established")
	return redisClient, nil
}
