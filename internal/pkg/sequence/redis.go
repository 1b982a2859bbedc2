package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisCounter stores sequences as plain integer keys and advances them with INCR,
// so values survive restarts and stay unique across replicas.
type RedisCounter struct {
	client    redis.Cmdable
	namespace string
}

func NewRedisCounter(client redis.Cmdable, namespace string) *RedisCounter {
	return &RedisCounter{client: client, namespace: namespace}
}

func (c *RedisCounter) Next(ctx context.Context, key string) (int64, error) {
	if key == "" {
		return 0, ErrEmptyKey
	}

	value, err := c.client.Incr(ctx, c.redisKey(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence %q: %w", key, err)
	}
	return value, nil
}

func (c *RedisCounter) redisKey(key string) string {
	if c.namespace == "" {
		return "seq:" + key
	}
	return c.namespace + ":seq:" + key
}
