package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is disabled.
// Methods is derived from MethodList after parsing.
type CacheConfig struct {
	Enabled      bool            `env:"CACHE_ENABLED" envDefault:"true"`
	MethodList   []string        `env:"CACHE_METHODS" envDefault:"GET" envSeparator:","`
	Methods      map[string]bool `env:"-"`
	TTL          time.Duration   `env:"CACHE_TTL" envDefault:"5m"`
	KeyStrategy  string          `env:"CACHE_KEY_STRATEGY" envDefault:"route_query"`
	Prefix       string          `env:"CACHE_PREFIX" envDefault:"cache"`
	MaxBodyBytes int             `env:"CACHE_MAX_BODY_BYTES" envDefault:"1048576"`
}

// LoadCacheConfig reads CACHE_* variables.  All methods are upper-cased.
func LoadCacheConfig() CacheConfig {
	var cfg CacheConfig
	mustParse(&cfg)
	cfg.Methods = parseMethods(cfg.MethodList)
	return cfg
}

func parseMethods(list []string) map[string]bool {
	m := map[string]bool{}
	for _, p := range list {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
