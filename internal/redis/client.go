package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Cache stores a JSON-serialized value under the given key.
func (c *Client) Cache(key string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return c.rdb.Set(ctx, "cache:"+key, jsonData, ttl).Err()
}

// GetCached loads a JSON value into dest. Returns redis.Nil on a cache miss.
func (c *Client) GetCached(key string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "cache:"+key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) Invalidate(key string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "cache:"+key).Err()
}

// IncrWindow increments a fixed-window rate-limit counter and returns the
// count within the current window. The key expires with the window.
func (c *Client) IncrWindow(key string, window time.Duration) (int64, error) {
	ctx := context.Background()
	count, err := c.rdb.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate-limit counter: %w", err)
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, "ratelimit:"+key, window).Err(); err != nil {
			return count, fmt.Errorf("failed to set rate-limit expiry: %w", err)
		}
	}
	return count, nil
}

// IsMiss reports whether err is a cache miss rather than a real failure.
func IsMiss(err error) bool {
	return err == redis.Nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
