package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig controls the token-bucket limiter applied to the
// register and login endpoints. Disabled unless RATE_LIMIT_ENABLED is
// truthy, so local development needs no Redis.
type RateLimitConfig struct {
	Enabled        bool          // master switch
	Capacity       int64         // bucket size per client
	RefillTokens   int64         // tokens added per interval
	RefillInterval time.Duration // refill cadence
	TTL            time.Duration // idle expiry of bucket state in Redis
}

// LoadRateLimit reads the limiter settings with sane defaults: 10
// requests burst, refilling 1 per second.
func LoadRateLimit() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        boolEnv("RATE_LIMIT_ENABLED"),
		Capacity:       int64Env("RATE_LIMIT_CAPACITY", 10),
		RefillTokens:   int64Env("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: time.Duration(int64Env("RATE_LIMIT_REFILL_MS", 1000)) * time.Millisecond,
		TTL:            time.Duration(int64Env("RATE_LIMIT_TTL_SEC", 600)) * time.Second,
	}
	return cfg
}

func boolEnv(key string) bool {
	v := os.Getenv(key)
	return v == "1" || v == "true" || v == "TRUE"
}

func int64Env(key string, fallback int64) int64 {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
