package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache backs the payload cache with Redis.
type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(host, port string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port),
		DB:   db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s:%s: %v", host, port, err)
	}

	log.Printf("Successfully connected to Redis at %s:%s (db %d)", host, port, db)
	return &RedisCache{Client: client}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get %s: %v", key, err)
	}
	return value, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.Client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %v", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %v", key, err)
	}
	return nil
}

// CheckConnection is used by the readiness probe.
func (r *RedisCache) CheckConnection() error {
	return r.Client.Ping(context.Background()).Err()
}

func (r *RedisCache) Close() error {
	return r.Client.Close()
}
