// Package ratelimit implements fixed-window request limits backed by Redis.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether another request for key fits the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter counts requests per key in a counter that expires with its window.
type RedisLimiter struct {
	client   *redis.Client
	prefix   string
	requests int
	window   time.Duration
}

// NewRedisLimiter allows requests calls per window for each key.
func NewRedisLimiter(client *redis.Client, prefix string, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, requests: requests, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.requests <= 0 || l.window <= 0 {
		return true, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	redisKey := l.prefix + ":" + hashKey(key)

	// SET NX and INCR share one MULTI/EXEC so a counter never outlives its window.
	pipe := l.client.TxPipeline()
	pipe.SetNX(ctx, redisKey, 0, l.window)
	incr := pipe.Incr(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= int64(l.requests), nil
}

// Keys are hashed so client addresses and emails never land in Redis verbatim.
func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
