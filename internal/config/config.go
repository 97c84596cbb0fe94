// Package config reads ordersheet settings from ORDERSHEET_* environment
// variables and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "ORDERSHEET_"

// DefaultMessageURL is the open chat the finished order is sent to.
const DefaultMessageURL = "https://open.kakao.com/o/sHuV7wSh"

type Config struct {
	// CatalogDir overrides the bundled reference files when set.
	CatalogDir string
	// CatalogDB is the SQLite DSN of the catalog index.
	CatalogDB  string
	PolicyFile string

	LogLevel  string
	LogFormat string
	// LogFile receives logs while the wizard owns the terminal.
	LogFile string

	MessageURL string
	CopiedFor  time.Duration
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		CatalogDB:  ":memory:",
		LogLevel:   "warn",
		LogFormat:  "console",
		MessageURL: DefaultMessageURL,
		CopiedFor:  2 * time.Second,
	}
}

// Load reads configuration from the environment, falling back to defaults
// for unset or invalid values.
func Load() (Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(s, envPrefix)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	def := DefaultConfig()
	return Config{
		CatalogDir: strings.TrimSpace(k.String("CATALOG_DIR")),
		CatalogDB:  valueOrDefault(k.String("CATALOG_DB"), def.CatalogDB),
		PolicyFile: strings.TrimSpace(k.String("POLICY_FILE")),
		LogLevel:   valueOrDefault(k.String("LOG_LEVEL"), def.LogLevel),
		LogFormat:  valueOrDefault(k.String("LOG_FORMAT"), def.LogFormat),
		LogFile:    strings.TrimSpace(k.String("LOG_FILE")),
		MessageURL: valueOrDefault(k.String("MESSAGE_URL"), def.MessageURL),
		CopiedFor:  parseDuration(k.String("COPIED_FOR"), def.CopiedFor),
	}, nil
}

func valueOrDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
