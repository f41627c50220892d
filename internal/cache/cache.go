// Package cache — опциональный redis-кэш горячих чтений календаря.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis реализует кэш сериализованных ответов поверх go-redis.
type Redis struct {
	rdb *redis.Client
}

// New подключается к redis и проверяет соединение.
func New(ctx context.Context, addr string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{rdb: rdb}, nil
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (c *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	// Кэш best-effort: ошибку записи просто игнорируем.
	_ = c.rdb.Set(ctx, key, val, ttl).Err()
}

func (c *Redis) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}
