// Package ratelimit provides Redis-based rate limiting for connection and room-code requests
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRateLimited is returned when a rate limit is exceeded
var ErrRateLimited = errors.New("rate limit exceeded")

// Limits defines how many requests of each kind a single client address may make per window
type Limits struct {
	ConnectLimit  int
	ConnectWindow time.Duration

	RoomCodeLimit  int
	RoomCodeWindow time.Duration
}

// DefaultLimits returns the recommended rate limits
func DefaultLimits() Limits {
	return Limits{
		ConnectLimit:   30,
		ConnectWindow:  time.Minute,
		RoomCodeLimit:  20,
		RoomCodeWindow: time.Minute,
	}
}

// Limiter provides rate limiting functionality using Redis
type Limiter struct {
	redis  *redis.Client
	limits Limits
}

// NewLimiter creates a new rate limiter. A nil client yields a limiter that allows everything.
func NewLimiter(client *redis.Client, limits Limits) *Limiter {
	return &Limiter{redis: client, limits: limits}
}

// Connect connects to Redis at addr and verifies the connection.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// CheckConnect limits websocket upgrades per client address
func (l *Limiter) CheckConnect(ctx context.Context, ip string) error {
	if l == nil {
		return nil
	}
	return l.checkLimit(ctx, fmt.Sprintf("ratelimit:connect:%s", ip), l.limits.ConnectLimit, l.limits.ConnectWindow)
}

// CheckRoomCode limits room code creation per client address
func (l *Limiter) CheckRoomCode(ctx context.Context, ip string) error {
	if l == nil {
		return nil
	}
	return l.checkLimit(ctx, fmt.Sprintf("ratelimit:roomcode:%s", ip), l.limits.RoomCodeLimit, l.limits.RoomCodeWindow)
}

// checkLimit performs the actual rate limit check using Redis INCR
func (l *Limiter) checkLimit(ctx context.Context, key string, limit int, window time.Duration) error {
	if l.redis == nil || limit <= 0 {
		// Without Redis, allow the request (fail-open for availability)
		return nil
	}

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("[RateLimit] Redis error for %s, allowing: %v", key, err)
		return nil
	}

	// If this is the first request, set the expiry
	if count == 1 {
		l.redis.Expire(ctx, key, window)
	}

	if int(count) > limit {
		log.Printf("[RateLimit] %s exceeded %d requests per %v", key, limit, window)
		return ErrRateLimited
	}

	return nil
}
