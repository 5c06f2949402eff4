// Package config defines service configuration and its layered loader.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Default values.
const (
	defaultAddr            = ":9080"
	defaultCacheTTL        = 15 * time.Minute
	defaultCacheMaxEntries = 10_000
	defaultMaxBodyBytes    = 1 << 20
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CacheEnabled toggles the cached GET route.
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheTTL is how long a cached response stays valid.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// CacheMaxEntries bounds the response cache.
	CacheMaxEntries int `koanf:"cache_max_entries"`

	// MaxBodyBytes caps POST /prime request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            defaultAddr,
		CacheEnabled:    true,
		CacheTTL:        defaultCacheTTL,
		CacheMaxEntries: defaultCacheMaxEntries,
		MaxBodyBytes:    defaultMaxBodyBytes,
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CacheEnabled && c.CacheTTL <= 0:
		return fmt.Errorf("%w: cache_ttl must be positive", ErrInvalidConfig)
	case c.CacheEnabled && c.CacheMaxEntries <= 0:
		return fmt.Errorf("%w: cache_max_entries must be positive", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
