package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache implements usecase.Cache using Redis. Keys live under
// "payproc:<namespace>:" so the rate cache can be flushed on its own.
type Cache struct {
	client redis.Cmdable
	prefix string
}

// NewCache creates a Cache scoped to namespace.
func NewCache(client redis.Cmdable, namespace string) *Cache {
	return &Cache{
		client: client,
		prefix: "payproc:" + namespace + ":",
	}
}

// Get retrieves a value by key. A missing key yields redis.Nil.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.prefix+key).Result()
}

// Set stores a value with TTL. A non-positive ttl stores the value without expiry.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
