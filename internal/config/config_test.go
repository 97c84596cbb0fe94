package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, ":memory:", cfg.CatalogDB)
	assert.Equal(t, 2*time.Second, cfg.CopiedFor)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ORDERSHEET_CATALOG_DIR", " /srv/catalog ")
	t.Setenv("ORDERSHEET_CATALOG_DB", "/tmp/index.db")
	t.Setenv("ORDERSHEET_POLICY_FILE", "/etc/ordersheet/policies.yaml")
	t.Setenv("ORDERSHEET_LOG_LEVEL", "debug")
	t.Setenv("ORDERSHEET_LOG_FORMAT", "json")
	t.Setenv("ORDERSHEET_LOG_FILE", "/tmp/ordersheet.log")
	t.Setenv("ORDERSHEET_MESSAGE_URL", "https://example.com/chat")
	t.Setenv("ORDERSHEET_COPIED_FOR", "500ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/catalog", cfg.CatalogDir)
	assert.Equal(t, "/tmp/index.db", cfg.CatalogDB)
	assert.Equal(t, "/etc/ordersheet/policies.yaml", cfg.PolicyFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/tmp/ordersheet.log", cfg.LogFile)
	assert.Equal(t, "https://example.com/chat", cfg.MessageURL)
	assert.Equal(t, 500*time.Millisecond, cfg.CopiedFor)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("ORDERSHEET_COPIED_FOR", "soon")
	t.Setenv("ORDERSHEET_CATALOG_DB", "   ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.CopiedFor)
	assert.Equal(t, ":memory:", cfg.CatalogDB)
}

func TestLoad_IgnoresUnprefixedVariables(t *testing.T) {
	t.Setenv("LOG_LEVEL", "trace")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseDuration_RejectsNonPositive(t *testing.T) {
	assert.Equal(t, time.Second, parseDuration("-1s", time.Second))
	assert.Equal(t, time.Second, parseDuration("0s", time.Second))
	assert.Equal(t, 3*time.Second, parseDuration("3s", time.Second))
}
