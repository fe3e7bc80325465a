package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const callbackKeyPrefix = "petspa:callback:"

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// CallbackGuard marks a gateway transaction as in flight. A concurrent
// delivery of the same callback is told to retry instead of being
// processed twice.
type CallbackGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCallbackGuard(client *redis.Client, ttl time.Duration) *CallbackGuard {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CallbackGuard{client: client, ttl: ttl}
}

// Acquire returns false when another request already holds the key.
func (g *CallbackGuard) Acquire(ctx context.Context, transactionID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, callbackKeyPrefix+transactionID, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

// Release frees the key after a failed attempt so the gateway retry can
// go through. Successful attempts keep the key until it expires.
func (g *CallbackGuard) Release(ctx context.Context, transactionID string) error {
	if err := g.client.Del(ctx, callbackKeyPrefix+transactionID).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// NopGuard always grants the key. The ledger's unique transaction id
// still prevents duplicates.
type NopGuard struct{}

func (NopGuard) Acquire(context.Context, string) (bool, error) { return true, nil }
func (NopGuard) Release(context.Context, string) error         { return nil }
