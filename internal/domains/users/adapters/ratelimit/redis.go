package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
)

// incrExpireScript counts a hit and starts the window on the first one.
// It returns the new count and the remaining window in milliseconds.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// RedisLimiter is a fixed window limiter shared by every API replica.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	prefix string
}

var _ ports.LoginLimiter = (*RedisLimiter)(nil)

// NewRedisLimiter allows max attempts per key within window.
func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, max: max, window: window, prefix: "rl:login:"}
}

// Allow records an attempt. Callers decide whether to fail open on error.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (ports.LimitResult, error) {
	res, err := incrExpireScript.Run(ctx, l.client, []string{l.prefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return ports.LimitResult{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return ports.LimitResult{}, fmt.Errorf("rate limit script: unexpected result %v", res)
	}
	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	if ttl < 0 {
		ttl = l.window
	}
	return decide(l.max, count, ttl), nil
}

func decide(max, count int, ttl time.Duration) ports.LimitResult {
	result := ports.LimitResult{Allowed: count <= max, Limit: max, Remaining: max - count}
	if result.Remaining < 0 {
		result.Remaining = 0
	}
	if !result.Allowed {
		result.RetryAfter = ttl
	}
	return result
}
