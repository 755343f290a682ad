package cache

import (
	"context"
	"errors"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements domain.Cache on a go-redis client.
type RedisCache struct {
	client redis.Cmdable
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

// Get translates redis.Nil to domain.ErrCacheMiss.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// NoopCache always misses. It stands in when no Redis address is configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, error)              { return "", domain.ErrCacheMiss }
func (NoopCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (NoopCache) Delete(context.Context, string) error                     { return nil }
func (NoopCache) Ping(context.Context) error                               { return nil }

var (
	_ domain.Cache = (*RedisCache)(nil)
	_ domain.Cache = NoopCache{}
)
