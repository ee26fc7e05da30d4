package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies MKTSIG_* environment variable overrides, and
// returns the final Config. A missing file is not an error; the defaults
// plus env overrides are used. The returned Config has NOT been validated;
// the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known MKTSIG_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Polymarket.BaseURL, "MKTSIG_POLYMARKET_BASE_URL")
	setInt(&cfg.Polymarket.TargetCount, "MKTSIG_POLYMARKET_TARGET_COUNT")
	setInt(&cfg.Polymarket.MaxPages, "MKTSIG_POLYMARKET_MAX_PAGES")
	setDuration(&cfg.Polymarket.Timeout, "MKTSIG_POLYMARKET_TIMEOUT")

	setStr(&cfg.Kalshi.BaseURL, "MKTSIG_KALSHI_BASE_URL")
	setInt(&cfg.Kalshi.TargetCount, "MKTSIG_KALSHI_TARGET_COUNT")
	setInt(&cfg.Kalshi.MaxPages, "MKTSIG_KALSHI_MAX_PAGES")
	setDuration(&cfg.Kalshi.Timeout, "MKTSIG_KALSHI_TIMEOUT")

	setStr(&cfg.Matching.Strategy, "MKTSIG_MATCHING_STRATEGY")
	setFloat64(&cfg.Matching.MinConfidence, "MKTSIG_MATCHING_MIN_CONFIDENCE")
	setInt(&cfg.Matching.MaxResults, "MKTSIG_MATCHING_MAX_RESULTS")

	setFloat64(&cfg.Arbitrage.MinSpread, "MKTSIG_ARBITRAGE_MIN_SPREAD")
	setFloat64(&cfg.Arbitrage.MinConfidence, "MKTSIG_ARBITRAGE_MIN_CONFIDENCE")
	setInt(&cfg.Arbitrage.Limit, "MKTSIG_ARBITRAGE_LIMIT")

	setStr(&cfg.History.Backend, "MKTSIG_HISTORY_BACKEND")
	setFloat64(&cfg.History.MinChange, "MKTSIG_HISTORY_MIN_CHANGE")

	setStr(&cfg.Redis.Addr, "MKTSIG_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "MKTSIG_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "MKTSIG_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "MKTSIG_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "MKTSIG_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "MKTSIG_REDIS_TLS_ENABLED")

	setBool(&cfg.Pipeline.Enabled, "MKTSIG_PIPELINE_ENABLED")
	setDuration(&cfg.Pipeline.RefreshInterval, "MKTSIG_PIPELINE_REFRESH_INTERVAL")

	setBool(&cfg.Server.Enabled, "MKTSIG_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "MKTSIG_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "MKTSIG_SERVER_CORS_ORIGINS")
	setStr(&cfg.Server.APIKey, "MKTSIG_SERVER_API_KEY")
	setInt(&cfg.Server.RateLimitPerMin, "MKTSIG_SERVER_RATE_LIMIT_PER_MIN")

	setStr(&cfg.Mode, "MKTSIG_MODE")
	setStr(&cfg.LogLevel, "MKTSIG_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
