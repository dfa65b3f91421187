package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DB_DSN", "postgres://bot@localhost/bot")
	t.Setenv("SECRET_KEY", "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{"ENV", "MIGRATIONS_PATH", "REDIS_ADDR", "REDIS_DB", "CACHE_TTL",
		"PREFETCH_INTERVAL", "HTTP_ADDR", "UNTIS_TIMEOUT", "UNTIS_CLIENT_NAME", "TIMEZONE"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 6*time.Hour, cfg.PrefetchInterval)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Second, cfg.UntisTimeout)
	assert.Equal(t, "timetable-bot", cfg.UntisClientName)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("PREFETCH_INTERVAL", "0")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Zero(t, cfg.PrefetchInterval)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"missing token", "TELEGRAM_TOKEN", ""},
		{"missing dsn", "DB_DSN", ""},
		{"missing secret", "SECRET_KEY", ""},
		{"bad ttl", "CACHE_TTL", "soon"},
		{"bad redis db", "REDIS_DB", "first"},
		{"bad timezone", "TIMEZONE", "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
