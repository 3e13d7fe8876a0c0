package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ttl: 5 * time.Minute}
}

func (r *RedisCache) Get(ctx context.Context, productID int) (*Product, error) {
	data, err := r.client.Get(ctx, cacheKey(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return &p, nil
}

func (r *RedisCache) Set(ctx context.Context, p *Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}
	if err := r.client.Set(ctx, cacheKey(p.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, productID int) error {
	if err := r.client.Del(ctx, cacheKey(productID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(productID int) string {
	return fmt.Sprintf("product:%d", productID)
}
