package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tcases := []struct {
		name string
		env  map[string]string
		err  bool
	}{
		{
			name: "mysql defaults",
			env:  map[string]string{"JWT_SECRET": "s3cret", "DB_USER": "app"},
		},
		{
			name: "sqlite without mysql user",
			env:  map[string]string{"JWT_SECRET": "s3cret", "DB_DRIVER": "SQLite", "DB_PATH": "/tmp/x.db"},
		},
		{
			name: "missing secret",
			env:  map[string]string{"DB_USER": "app"},
			err:  true,
		},
		{
			name: "mysql without user",
			env:  map[string]string{"JWT_SECRET": "s3cret"},
			err:  true,
		},
		{
			name: "unknown driver",
			env:  map[string]string{"JWT_SECRET": "s3cret", "DB_DRIVER": "postgres"},
			err:  true,
		},
		{
			name: "bcrypt cost too low",
			env:  map[string]string{"JWT_SECRET": "s3cret", "DB_USER": "app", "BCRYPT_COST": "2"},
			err:  true,
		},
		{
			name: "non-numeric ttl",
			env:  map[string]string{"JWT_SECRET": "s3cret", "DB_USER": "app", "ACCESS_TOKEN_TTL_MIN": "soon"},
			err:  true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range []string{"JWT_SECRET", "DB_USER", "DB_DRIVER", "DB_PATH", "BCRYPT_COST", "ACCESS_TOKEN_TTL_MIN"} {
				t.Setenv(k, "")
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Parse()
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "5000", cfg.Port)
			assert.Equal(t, 60, cfg.AccessTTLMin)
			assert.Equal(t, 10, cfg.BcryptCost)
			assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
		})
	}
}

func TestParseNormalizesDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", " SQLITE ")
	t.Setenv("DB_PATH", "dev.db")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "dev.db", cfg.DBPath)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head ,")
	t.Setenv("CACHE_TTL", "45s")

	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	assert.Equal(t, 45*time.Second, cfg.TTL)
	assert.Equal(t, "route_query", cfg.KeyStrategy)
}

func TestRateLimitNormalize(t *testing.T) {
	tcases := []struct {
		name string
		in   RateLimitConfig
		want RateLimitConfig
	}{
		{
			name: "burst overrides capacity",
			in:   RateLimitConfig{Capacity: 60, Burst: 5, RefillTokens: 2, RefillInterval: time.Second, TTL: time.Minute},
			want: RateLimitConfig{Capacity: 5, Burst: 5, RefillTokens: 2, RefillInterval: time.Second, TTL: time.Minute},
		},
		{
			name: "refill every resets tokens",
			in:   RateLimitConfig{Capacity: 10, Burst: -1, RefillTokens: 4, RefillInterval: time.Second, RefillEvery: 3 * time.Second, TTL: time.Minute},
			want: RateLimitConfig{Capacity: 10, Burst: -1, RefillTokens: 1, RefillInterval: 3 * time.Second, RefillEvery: 3 * time.Second, TTL: time.Minute},
		},
		{
			name: "clamps invalid values",
			in:   RateLimitConfig{Burst: -1},
			want: RateLimitConfig{Capacity: 1, Burst: -1, RefillTokens: 1, RefillInterval: time.Second, TTL: 5 * time.Second},
		},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.normalize())
		})
	}
}

func TestLoadRedisConfigHostPort(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg := LoadRedisConfig()
	assert.Equal(t, "cache:6380", cfg.Addr)
}

func TestNewRedisClientDisabled(t *testing.T) {
	assert.Nil(t, NewRedisClient(RedisConfig{Enabled: false}))
}
