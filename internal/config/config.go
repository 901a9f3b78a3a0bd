package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPPort string

	// CatalogDBPath is the SQLite file holding the seeded product
	// catalog. ":memory:" works for local runs.
	CatalogDBPath string

	// SessionTTL is how long an idle session keeps its cart before the
	// timeout clear drops it.
	SessionTTL time.Duration

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		HTTPPort:        getenv("HTTP_PORT", "8080"),
		CatalogDBPath:   getenv("CATALOG_DB_PATH", "./storefront.db"),
		SessionTTL:      parseDuration(getenv("SESSION_TTL", "15m"), 15*time.Minute),
		RequestTimeout:  parseDuration(getenv("REQUEST_TIMEOUT", "30s"), 30*time.Second),
		ShutdownTimeout: parseDuration(getenv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
