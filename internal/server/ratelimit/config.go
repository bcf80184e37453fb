package ratelimit

import (
	"time"
)

// EndpointConfig is the limit applied to one route.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method, or "*" for any
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a limiter configuration with the default endpoint tiers.
func NewConfig(enabled bool, limit int, window, cleanup time.Duration, whitelist, blacklist []string) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    limit,
		DefaultWindow:   window,
		CleanupInterval: cleanup,
		Whitelist:       toSet(whitelist),
		Blacklist:       toSet(blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the endpoint tiers.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Credentials
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/register", Method: "POST", Limit: 5, Window: time.Minute, Burst: 2},

		// Writes
		{Path: "/interviews/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/interviews/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/interviews", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/skills", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/skills/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/jobs", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/jobs/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/candidates", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/interview-types", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/users/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},

		// Reads use the default limit; /health is unlimited
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
