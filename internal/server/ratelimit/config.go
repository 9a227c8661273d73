package ratelimit

import (
	"strings"
	"time"
)

// TailorPath is the model-backed endpoint with the strictest limit
const TailorPath = "/api/v1/tailor"

// EndpointConfig is the limit applied to one method and path.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // Buckets unused this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig limits tailoring to perMinute requests per client per minute.
// Other API calls get ten times that, and health checks are unlimited.
func NewConfig(perMinute int) *Config {
	if perMinute <= 0 {
		return &Config{Enabled: false}
	}
	burst := perMinute / 4
	if burst < 1 {
		burst = 1
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    perMinute * 10,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: []EndpointConfig{
			{Path: "/health", Method: "GET"},
			{Path: "/api/v1/health", Method: "GET"},
			{Path: TailorPath, Method: "POST", Limit: perMinute, Window: time.Minute, Burst: burst},
		},
	}
}

// ParseIPList parses a comma-separated list of addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
