// Package config defines the top-level configuration for the market signal
// service and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by MKTSIG_* environment variables.
type Config struct {
	Polymarket PlatformConfig  `toml:"polymarket"`
	Kalshi     PlatformConfig  `toml:"kalshi"`
	Matching   MatchingConfig  `toml:"matching"`
	Arbitrage  ArbitrageConfig `toml:"arbitrage"`
	History    HistoryConfig   `toml:"history"`
	Redis      RedisConfig     `toml:"redis"`
	Pipeline   PipelineConfig  `toml:"pipeline"`
	Server     ServerConfig    `toml:"server"`
	Mode       string          `toml:"mode"`
	LogLevel   string          `toml:"log_level"`
}

// PlatformConfig holds the ingestion parameters for one prediction-market
// platform API.
type PlatformConfig struct {
	BaseURL     string   `toml:"base_url"`
	TargetCount int      `toml:"target_count"`
	MaxPages    int      `toml:"max_pages"`
	Timeout     duration `toml:"timeout"`
}

// MatchingConfig holds the text-to-market matching parameters.
type MatchingConfig struct {
	Strategy      string  `toml:"strategy"`
	MinConfidence float64 `toml:"min_confidence"`
	MaxResults    int     `toml:"max_results"`
}

// ArbitrageConfig holds cross-platform arbitrage detection parameters.
type ArbitrageConfig struct {
	MinSpread     float64 `toml:"min_spread"`
	MinConfidence float64 `toml:"min_confidence"`
	Limit         int     `toml:"limit"`
}

// HistoryConfig selects and tunes the price-history backend.
type HistoryConfig struct {
	// Backend is "memory" or "redis".
	Backend   string  `toml:"backend"`
	MinChange float64 `toml:"min_change"`
}

// RedisConfig holds Redis connection parameters. Only used when the history
// backend is "redis" or rate limiting is enabled.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// PipelineConfig holds the background refresh loop parameters.
type PipelineConfig struct {
	Enabled         bool     `toml:"enabled"`
	RefreshInterval duration `toml:"refresh_interval"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled         bool     `toml:"enabled"`
	Port            int      `toml:"port"`
	CORSOrigins     []string `toml:"cors_origins"`
	APIKey          string   `toml:"api_key"`
	RateLimitPerMin int      `toml:"rate_limit_per_min"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
// These match the values in config.example.toml.
func Defaults() Config {
	return Config{
		Polymarket: PlatformConfig{
			BaseURL:     "https://gamma-api.polymarket.com",
			TargetCount: 500,
			MaxPages:    10,
			Timeout:     duration{5 * time.Second},
		},
		Kalshi: PlatformConfig{
			BaseURL:     "https://api.elections.kalshi.com/trade-api/v2",
			TargetCount: 400,
			MaxPages:    15,
			Timeout:     duration{5 * time.Second},
		},
		Matching: MatchingConfig{
			Strategy:      "enhanced",
			MinConfidence: 0.3,
			MaxResults:    5,
		},
		Arbitrage: ArbitrageConfig{
			MinSpread:     0.03,
			MinConfidence: 0.5,
			Limit:         20,
		},
		History: HistoryConfig{
			Backend:   "memory",
			MinChange: 0.05,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		Pipeline: PipelineConfig{
			Enabled:         true,
			RefreshInterval: duration{5 * time.Minute},
		},
		Server: ServerConfig{
			Enabled:         true,
			Port:            8080,
			CORSOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimitPerMin: 0, // disabled
		},
		Mode:     "full",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"serve": true,
	"scan":  true,
	"full":  true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validHistoryBackends enumerates the accepted values for History.Backend.
var validHistoryBackends = map[string]bool{
	"memory": true,
	"redis":  true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: serve, scan, full)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	for name, p := range map[string]PlatformConfig{"polymarket": c.Polymarket, "kalshi": c.Kalshi} {
		if p.BaseURL == "" {
			errs = append(errs, name+": base_url must not be empty")
		}
		if p.TargetCount <= 0 {
			errs = append(errs, name+": target_count must be > 0")
		}
		if p.MaxPages <= 0 {
			errs = append(errs, name+": max_pages must be > 0")
		}
	}

	if c.Matching.MinConfidence < 0 || c.Matching.MinConfidence > 1 {
		errs = append(errs, fmt.Sprintf("matching: min_confidence must be in [0,1], got %g", c.Matching.MinConfidence))
	}
	if c.Matching.MaxResults < 1 {
		errs = append(errs, "matching: max_results must be >= 1")
	}

	if c.Arbitrage.MinSpread < 0 || c.Arbitrage.MinSpread >= 1 {
		errs = append(errs, fmt.Sprintf("arbitrage: min_spread must be in [0,1), got %g", c.Arbitrage.MinSpread))
	}
	if c.Arbitrage.MinConfidence < 0 || c.Arbitrage.MinConfidence > 1 {
		errs = append(errs, fmt.Sprintf("arbitrage: min_confidence must be in [0,1], got %g", c.Arbitrage.MinConfidence))
	}

	if !validHistoryBackends[strings.ToLower(c.History.Backend)] {
		errs = append(errs, fmt.Sprintf("history: unknown backend %q (valid: memory, redis)", c.History.Backend))
	}
	if c.History.MinChange < 0 || c.History.MinChange >= 1 {
		errs = append(errs, fmt.Sprintf("history: min_change must be in [0,1), got %g", c.History.MinChange))
	}

	if strings.ToLower(c.History.Backend) == "redis" && c.Redis.Addr == "" {
		errs = append(errs, "redis: addr must not be empty when history backend is redis")
	}
	if c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}

	if c.Pipeline.Enabled && c.Pipeline.RefreshInterval.Duration < time.Second {
		errs = append(errs, "pipeline: refresh_interval must be at least 1s")
	}

	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
		if c.Server.RateLimitPerMin < 0 {
			errs = append(errs, "server: rate_limit_per_min must be >= 0")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
