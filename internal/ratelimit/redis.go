package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisLimiter keeps the sliding window in a Redis sorted set so the count
// survives restarts and is shared across instances.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, max: max, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	rkey := redisKeyPrefix + key
	now := time.Now()
	cutoff := strconv.FormatInt(now.Add(-l.window).UnixNano(), 10)

	if err := l.client.ZRemRangeByScore(ctx, rkey, "0", cutoff).Err(); err != nil {
		return false, err
	}

	count, err := l.client.ZCard(ctx, rkey).Result()
	if err != nil {
		return false, err
	}
	if count >= int64(l.max) {
		return false, nil
	}

	member := redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()}
	if err := l.client.ZAdd(ctx, rkey, member).Err(); err != nil {
		return false, err
	}

	return true, l.client.Expire(ctx, rkey, l.window).Err()
}
