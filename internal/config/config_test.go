package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT", "STORE_DRIVER",
		"DATABASE_URL", "MAX_DB_CONNS", "AUTO_MIGRATE", "BROTLI_MIN_LENGTH", "ALLOWED_ORIGINS",
		"RATE_LIMIT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, int32(16), cfg.MaxDBConns)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 1024, cfg.BrotliMinLength)
	assert.Equal(t, 120, cfg.RateLimit)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORE_DRIVER", " Memory ")
	t.Setenv("MAX_DB_CONNS", "4")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("RATE_LIMIT", "0")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, int32(4), cfg.MaxDBConns)
	assert.True(t, cfg.AutoMigrate)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MAX_DB_CONNS", "many")
	t.Setenv("AUTO_MIGRATE", "perhaps")
	t.Setenv("STORE_DRIVER", "sqlite")

	cfg := Load()

	assert.Equal(t, int32(16), cfg.MaxDBConns)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
}
