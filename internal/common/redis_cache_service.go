package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheService implements CacheInterface using Redis
type RedisCacheService struct {
	client *redis.Client
	ctx    context.Context
}

// Ensure RedisCacheService implements CacheInterface
var _ CacheInterface = (*RedisCacheService)(nil)

// NewRedisCacheService creates a new Redis-based cache service on top of an
// existing client.
func NewRedisCacheService(client *redis.Client) (*RedisCacheService, error) {
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCacheService{
		client: client,
		ctx:    ctx,
	}, nil
}

// Set stores a value in Redis with the given key and duration
func (r *RedisCacheService) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		fmt.Printf("Redis cache: failed to marshal value for key %s: %v\n", key, err)
		return
	}

	if err := r.client.Set(r.ctx, key, data, duration).Err(); err != nil {
		fmt.Printf("Redis cache: failed to set key %s: %v\n", key, err)
	}
}

// Get retrieves a value from Redis by key
func (r *RedisCacheService) Get(key string) (interface{}, bool) {
	data, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		// Key not found
		return nil, false
	}
	if err != nil {
		fmt.Printf("Redis cache: failed to get key %s: %v\n", key, err)
		return nil, false
	}

	var result interface{}
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		fmt.Printf("Redis cache: failed to unmarshal value for key %s: %v\n", key, err)
		return nil, false
	}

	return result, true
}

// Delete removes a value from Redis by key
func (r *RedisCacheService) Delete(key string) {
	if err := r.client.Del(r.ctx, key).Err(); err != nil {
		fmt.Printf("Redis cache: failed to delete key %s: %v\n", key, err)
	}
}

// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
func (r *RedisCacheService) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error),
) (interface{}, error) {
	if val, found := r.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	r.Set(key, val, duration)

	return val, nil
}

// Close closes the Redis connection
func (r *RedisCacheService) Close() error {
	return r.client.Close()
}
