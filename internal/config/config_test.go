package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, "M", cfg.DefaultSize)
	assert.Equal(t, "500", cfg.FreeShippingThreshold.String())
	assert.Equal(t, "25", cfg.FlatShippingFee.String())
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.MongoURI)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_IDLE_TTL", "5m")
	t.Setenv("FLAT_SHIPPING_FEE", "12.50")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, "12.5", cfg.FlatShippingFee.String())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEFAULT_SIZE=L\nMONGO_DB_NAME=maison\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DEFAULT_SIZE")
		os.Unsetenv("MONGO_DB_NAME")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "L", cfg.DefaultSize)
	assert.Equal(t, "maison", cfg.MongoDBName)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value, msg string
	}{
		{"REQUEST_TIMEOUT", "soon", "REQUEST_TIMEOUT must be a duration"},
		{"FREE_SHIPPING_THRESHOLD", "lots", "FREE_SHIPPING_THRESHOLD must be a number"},
		{"FLAT_SHIPPING_FEE", "-1", "FLAT_SHIPPING_FEE must not be negative"},
		{"SESSION_IDLE_TTL", "0s", "SESSION_IDLE_TTL must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(noEnvFile(t))
			require.ErrorContains(t, err, tt.msg)
		})
	}
}
