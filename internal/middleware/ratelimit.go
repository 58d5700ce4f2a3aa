package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movienight/internal/config"
)

// tokenBucket refills and takes one token atomically.
// Returns {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])
if tokens == nil or last_refill == nil then
  tokens = capacity
  last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
  tokens = math.min(capacity, tokens + intervals * refill_tokens)
  last_refill = last_refill + intervals * interval_ms
end

local allowed = 0
local retry_ms = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)
return { allowed, tokens, retry_ms }
`)

type bucketResult struct {
	Allowed   bool
	Remaining int64
	RetryMs   int64
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// NewTokenBucket limits requests per key (see RateLimitConfig.KeyStrategy).
// With Redis unavailable the limiter fails open.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	// Disabled, or Redis was unreachable at startup: nothing to count against.
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Runs after OptionalJWTAuth, so "user" parts see the token user.
			key := RateKey(cfg, c)
			// ARGV order must match the script: now, capacity, refill, interval, ttl.
			args := []any{
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL / time.Second),
			}
			// EVALSHA with an EVAL fallback; a Redis error lets the request through.
			raw, err := tokenBucket.Run(c.Request().Context(), rdb, []string{key}, args...).Result()
			if err != nil {
				c.Logger().Warnf("ratelimit: key=%s: %v", key, err)
				return next(c)
			}
			res, err := parseBucket(raw)
			if err != nil {
				c.Logger().Warnf("ratelimit: key=%s: %v", key, err)
				return next(c)
			}

			// Advertise the bucket on every response, allowed or not.
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			if cfg.Debug {
				h.Set("X-RateLimit-Key", key)
			}
			if !res.Allowed {
				// whole seconds, rounded up
				secs := int(math.Ceil(float64(res.RetryMs) / 1000))
				h.Set("Retry-After", strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "Too many requests", "retry_after": secs})
			}
			return next(c)
		}
	}
}

func parseBucket(v any) (bucketResult, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 3 {
		return bucketResult{}, fmt.Errorf("unexpected script result %#v", v)
	}
	return bucketResult{
		Allowed:   asInt64(arr[0]) == 1,
		Remaining: asInt64(arr[1]),
		RetryMs:   asInt64(arr[2]),
	}, nil
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	}
	return 0
}

// keyParts lists the identity parts each KeyStrategy combines.
var keyParts = map[string][]string{
	"ip":         {"ip"},
	"user":       {"user"},
	"route":      {"route"},
	"ip_user":    {"ip", "user"},
	"ip_route":   {"ip", "route"},
	"user_route": {"user", "route"},
}

var defaultKeyParts = []string{"ip", "user", "route"}

// RateKey joins the configured identity parts under the prefix, e.g.
// "rl:ip:10.0.0.1:user:7".
func RateKey(cfg config.RateLimitConfig, c echo.Context) string {
	names, ok := keyParts[strings.ToLower(cfg.KeyStrategy)]
	if !ok {
		names = defaultKeyParts
	}
	out := []string{cfg.Prefix}
	for _, name := range names {
		var v string
		switch name {
		case "ip":
			if v = c.RealIP(); v == "" {
				v = "unknown"
			}
		case "user":
			v = subject(c)
		case "route":
			v = c.Request().Method + " " + c.Path()
		}
		out = append(out, name, v)
	}
	return strings.Join(out, ":")
}
