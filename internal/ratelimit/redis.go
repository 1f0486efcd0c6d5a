package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/cosfat/kzone/internal/clock"
	"github.com/cosfat/kzone/internal/domain"
)

// RedisLimiter keeps the sliding window in a redis sorted set per key, scored
// by attempt time, so the limit holds across multiple processes.
type RedisLimiter struct {
	pool   *redis.Pool
	limit  int
	window time.Duration
	clock  clock.Clock
}

func NewRedisLimiter(pool *redis.Pool, limit int, window time.Duration, clk clock.Clock) *RedisLimiter {
	return &RedisLimiter{
		pool:   pool,
		limit:  limit,
		window: window,
		clock:  clk,
	}
}

// NewRedisPool returns a redigo pool for the given address with conservative
// idle settings.
func NewRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 4 * time.Minute,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr)
		},
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: redis: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer conn.Close()

	redisKey := l.redisKey(key)
	cutoff := l.clock.Now().Add(-l.window).UnixNano()
	if _, err := conn.Do("ZREMRANGEBYSCORE", redisKey, "-inf", cutoff); err != nil {
		return false, fmt.Errorf("%w: redis: %v", domain.ErrUpstreamUnavailable, err)
	}
	count, err := redis.Int(conn.Do("ZCARD", redisKey))
	if err != nil {
		return false, fmt.Errorf("%w: redis: %v", domain.ErrUpstreamUnavailable, err)
	}
	return count < l.limit, nil
}

func (l *RedisLimiter) Record(ctx context.Context, key string) error {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: redis: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer conn.Close()

	redisKey := l.redisKey(key)
	now := l.clock.Now().UnixNano()
	if _, err := conn.Do("ZADD", redisKey, now, now); err != nil {
		return fmt.Errorf("%w: redis: %v", domain.ErrUpstreamUnavailable, err)
	}
	// Let abandoned keys expire on their own once the window has passed.
	if _, err := conn.Do("EXPIRE", redisKey, int(l.window/time.Second)); err != nil {
		return fmt.Errorf("%w: redis: %v", domain.ErrUpstreamUnavailable, err)
	}
	return nil
}

func (l *RedisLimiter) redisKey(key string) string {
	return "ratelimit:verify:" + key
}
