// Package config loads service settings from an optional config file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Scoring   ScoringConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port        int
	CORSOrigins string
}

// DatabaseConfig holds the PostgreSQL connection settings
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds the optional round cache settings. An empty URL disables the cache.
type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

// ScoringConfig holds scoring defaults
type ScoringConfig struct {
	DefaultMinRating float64
	Labels           string
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       []string
	Blacklist       []string
}

var envBindings = map[string]string{
	"server.port":                "PORT",
	"server.cors_origins":        "CORS_ORIGINS",
	"database.url":               "DATABASE_URL",
	"redis.url":                  "REDIS_URL",
	"redis.cache_ttl":            "REDIS_CACHE_TTL",
	"scoring.default_min_rating": "DEFAULT_MIN_RATING",
	"scoring.labels":             "SCORE_LABELS",
	"ratelimit.enabled":          "RATE_LIMIT_ENABLED",
	"ratelimit.default_limit":    "RATE_LIMIT_DEFAULT_LIMIT",
	"ratelimit.default_window":   "RATE_LIMIT_DEFAULT_WINDOW",
	"ratelimit.cleanup_interval": "RATE_LIMIT_CLEANUP_INTERVAL",
	"ratelimit.whitelist":        "RATE_LIMIT_WHITELIST",
	"ratelimit.blacklist":        "RATE_LIMIT_BLACKLIST",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("database.url", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.cache_ttl", "5m")
	v.SetDefault("scoring.default_min_rating", 6.0)
	v.SetDefault("scoring.labels", "selected")
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.default_limit", 1000)
	v.SetDefault("ratelimit.default_window", "1m")
	v.SetDefault("ratelimit.cleanup_interval", "5m")
	v.SetDefault("ratelimit.whitelist", "")
	v.SetDefault("ratelimit.blacklist", "")
}

// Load reads configuration from defaults, the optional file at path (yaml, json, toml or env)
// and environment variables, later sources winning.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Printf("[config] Config file %s not found, using defaults and environment", path)
		} else {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetInt("server.port"),
			CORSOrigins: v.GetString("server.cors_origins"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database.url"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("redis.url"),
			CacheTTL: v.GetDuration("redis.cache_ttl"),
		},
		Scoring: ScoringConfig{
			DefaultMinRating: v.GetFloat64("scoring.default_min_rating"),
			Labels:           v.GetString("scoring.labels"),
		},
		RateLimit: RateLimitConfig{
			Enabled:         v.GetBool("ratelimit.enabled"),
			DefaultLimit:    v.GetInt("ratelimit.default_limit"),
			DefaultWindow:   v.GetDuration("ratelimit.default_window"),
			CleanupInterval: v.GetDuration("ratelimit.cleanup_interval"),
			Whitelist:       splitList(v.GetString("ratelimit.whitelist")),
			Blacklist:       splitList(v.GetString("ratelimit.blacklist")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
// The database URL is not required here since only some commands need it.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Scoring.Labels != "selected" && c.Scoring.Labels != "good" {
		return fmt.Errorf("config error: labels must be 'selected' or 'good', got %q", c.Scoring.Labels)
	}
	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit < 1 || c.RateLimit.DefaultWindow <= 0) {
		return fmt.Errorf("config error: rate limit needs a positive limit and window")
	}
	if c.Redis.CacheTTL < 0 {
		return fmt.Errorf("config error: redis cache TTL must be non-negative")
	}
	return nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
