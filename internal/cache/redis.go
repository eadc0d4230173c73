package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis backs the same interface with a shared store, for deployments
// running more than one instance. Failures degrade to cache misses;
// the cache is a hint, never a source of truth.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Redis{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, val []byte) {
	r.client.Set(ctx, key, val, r.ttl)
}

func (r *Redis) Invalidate(ctx context.Context, key string) {
	r.client.Del(ctx, key)
}

func (r *Redis) InvalidatePrefix(ctx context.Context, prefix string) {
	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		r.client.Del(ctx, iter.Val())
	}
}

func (r *Redis) Close() error { return r.client.Close() }
