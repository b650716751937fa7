package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/online-bookstore/internal/config"
)

// RateLimit returns a Redis-backed token-bucket limiter keyed by client
// IP and route path. It protects the credential endpoints from brute
// force. When disabled, or when Redis is unavailable, every request
// passes through; losing the limiter must never take the API down.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	// The bucket state lives in a Redis hash and is refilled lazily on
	// each request; the script runs atomically so concurrent requests
	// cannot double-spend tokens.
	bucket := redis.NewScript(`
        local key = KEYS[1]
        local now_ms = tonumber(ARGV[1])
        local capacity = tonumber(ARGV[2])
        local refill = tonumber(ARGV[3])
        local interval_ms = tonumber(ARGV[4])
        local ttl = tonumber(ARGV[5])

        local state = redis.call('HMGET', key, 'tokens', 'refilled_ms')
        local tokens = tonumber(state[1])
        local refilled = tonumber(state[2])
        if tokens == nil or refilled == nil then
            tokens = capacity
            refilled = now_ms
        end

        if interval_ms > 0 and refill > 0 then
            local intervals = math.floor(math.max(0, now_ms - refilled) / interval_ms)
            if intervals > 0 then
                tokens = math.min(capacity, tokens + intervals * refill)
                refilled = refilled + intervals * interval_ms
            end
        end

        local allowed = 0
        if tokens > 0 then
            allowed = 1
            tokens = tokens - 1
        end

        redis.call('HMSET', key, 'tokens', tokens, 'refilled_ms', refilled)
        redis.call('EXPIRE', key, ttl)
        return allowed
    `)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("ratelimit:%s:%s", c.RealIP(), c.Path())
			res, err := bucket.Run(c.Request().Context(), rdb, []string{key},
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL/time.Second),
			).Int64()
			if err != nil {
				// Redis trouble: let the request through.
				return next(c)
			}
			if res != 1 {
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
			}
			return next(c)
		}
	}
}
