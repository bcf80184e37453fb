package ratelimit

import (
	"strings"
)

// unlimited is returned for routes that are never limited.
var unlimited = &EndpointConfig{}

// MatchEndpoint returns the configuration for a request, nil when none applies.
// Exact paths win over prefixes, and longer prefixes win over shorter ones.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return unlimited
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method && config.Method != "*" {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if best == nil || len(config.Path) > len(best.Path) {
				best = config
			}
		}
	}
	return best
}
