package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 60 * time.Second
	keyPrefix  = "dugout:api:"
)

// ErrMiss is returned by Get when the key is not cached
var ErrMiss = errors.New("cache miss")

// RedisCache keeps stats service responses for a short TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect opens and pings a Redis connection
func Connect(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// NewRedisCache creates a response cache on an existing client
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Set stores a response body under key for the cache TTL
func (rc *RedisCache) Set(ctx context.Context, key string, body []byte) error {
	return rc.client.Set(ctx, keyPrefix+key, body, rc.ttl).Err()
}

// Get retrieves a cached body, returning ErrMiss when absent
func (rc *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := rc.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return body, err
}

// Delete removes cached responses
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	return rc.client.Del(ctx, prefixed...).Err()
}
