// ABOUTME: Redis cache implementation using go-redis client
// ABOUTME: Provides distributed caching with TTL support, a key prefix and optional RedisJSON documents

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nitishm/go-rejson/v4"
	"github.com/redis/go-redis/v9"

	"mediacheck/core/interfaces"
	"mediacheck/pkg/config"
)

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	client  *redis.Client
	handler *rejson.Handler
	prefix  string
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	cache := &RedisCache{
		client: client,
		prefix: cfg.KeyPrefix,
	}
	if cfg.JSON {
		cache.handler = rejson.NewReJSONHandler()
		cache.handler.SetGoRedisClient(client)
	}
	return cache, nil
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, interfaces.ErrCacheMiss
		}
		return nil, err
	}

	return val, nil
}

// Set stores a value in Redis with the given TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Redis SET with 0 TTL means no expiration
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// SetDocument stores value as a RedisJSON document when enabled, and as encoded JSON otherwise
func (c *RedisCache) SetDocument(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.handler == nil {
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return c.Set(ctx, key, data, ttl)
	}

	if _, err := c.handler.JSONSet(c.prefix+key, ".", value); err != nil {
		return err
	}
	if ttl > 0 {
		return c.client.Expire(ctx, c.prefix+key, ttl).Err()
	}
	return nil
}

// GetDocument decodes the document stored under key into dest
func (c *RedisCache) GetDocument(ctx context.Context, key string, dest interface{}) error {
	if c.handler == nil {
		data, err := c.Get(ctx, key)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, dest)
	}

	res, err := c.handler.JSONGet(c.prefix+key, ".")
	if errors.Is(err, redis.Nil) || (err == nil && res == nil) {
		return interfaces.ErrCacheMiss
	}
	if err != nil {
		return err
	}

	var data []byte
	switch v := res.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unexpected RedisJSON reply %T", res)
	}
	return json.Unmarshal(data, dest)
}

// Delete removes a key from Redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Ping checks the connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
