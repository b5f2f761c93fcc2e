package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "catalog:\n  csvPath: data/products.csv\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "data/products.csv", cfg.Catalog.CSVPath)
	assert.Equal(t, 30, cfg.Search.DefaultLimit)
	assert.Equal(t, 100, cfg.Search.MaxResults)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "search.analytics.events", cfg.Kafka.Topics.AnalyticsEvents)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
search:
  defaultLimit: 10
  maxResults: 50
redis:
  addr: localhost:6379
  cacheTTL: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PS_SERVER_PORT", "7777")
	t.Setenv("PS_PRODUCTS_CSV", "/srv/catalog.csv")
	t.Setenv("PS_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PS_LOGGING_LEVEL", "debug")

	path := writeConfig(t, "server:\n  port: 9090\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "/srv/catalog.csv", cfg.Catalog.CSVPath)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad port", "server:\n  port: 0\n", "server.port"},
		{"empty csv path", "catalog:\n  csvPath: \"\"\n", "catalog.csvPath"},
		{"zero limit", "search:\n  defaultLimit: 0\n", "search.defaultLimit"},
		{"max below default", "search:\n  defaultLimit: 20\n  maxResults: 5\n", "search.maxResults"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host: "db", Port: 5432, User: "search", Password: "secret",
		Database: "analytics", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=search password=secret dbname=analytics sslmode=disable",
		cfg.DSN())
}
