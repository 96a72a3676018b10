package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "homeHorizonDB", cfg.Mongo.Database)
	assert.False(t, cfg.Mongo.UseTransactions)
	assert.Equal(t, "bdt", cfg.Stripe.Currency)
	assert.Contains(t, cfg.Stripe.SuccessURL, "{CHECKOUT_SESSION_ID}")
	assert.True(t, cfg.RateLimit.Enabled)
	assert.NotEmpty(t, cfg.Seed.Locations)
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig("/nonexistent/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := `
server:
  port: "8080"
mongodb:
  database: testDB
  use_transactions: true
  timeout_seconds: 5
auth:
  token_ttl_hours: 24
search:
  enabled: true
  meilisearch:
    host: http://meili:7700
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "testDB", cfg.Mongo.Database)
		assert.True(t, cfg.Mongo.UseTransactions)
		assert.True(t, cfg.Search.Enabled)
		assert.Equal(t, "http://meili:7700", cfg.Search.Meilisearch.Host)

		// Sections absent from the file keep their defaults
		assert.Equal(t, "bdt", cfg.Stripe.Currency)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: ["), 0644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 10*time.Second, cfg.Mongo.GetTimeout())
	assert.Equal(t, 168*time.Hour, cfg.Auth.GetTokenTTL())

	zero := Config{}
	assert.Equal(t, 10*time.Second, zero.Mongo.GetTimeout())
	assert.Equal(t, 168*time.Hour, zero.Auth.GetTokenTTL())
}
