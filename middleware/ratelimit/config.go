package ratelimit

import (
	"time"
)

// Config holds rate limiter configuration.
type Config struct {
	// RedisAddr is the Redis server address (e.g., "localhost:6379")
	RedisAddr string

	// RedisPassword is the Redis authentication password (optional)
	RedisPassword string

	// RedisDB is the Redis database number (default: 0)
	RedisDB int

	// DefaultLimit is the limit applied to routes without a specific limit
	DefaultLimit int

	// DefaultWindow is the default time window for rate limiting
	DefaultWindow time.Duration

	// RouteLimits maps route names to their specific rate limits
	RouteLimits map[string]RouteLimit

	// KeyPrefix is the prefix for Redis keys (default: "ratelimit:")
	KeyPrefix string
}

// RouteLimit defines rate limits for a specific route.
type RouteLimit struct {
	// Limit is the maximum number of requests allowed in the window
	Limit int

	// Window is the time window for the rate limit
	Window time.Duration
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RedisAddr:     "localhost:6379",
		RedisPassword: "",
		RedisDB:       0,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		RouteLimits:   make(map[string]RouteLimit),
		KeyPrefix:     "ratelimit:",
	}
}

// Option is a function that modifies Config.
type Option func(*Config)

// WithRedisAddr sets the Redis server address.
func WithRedisAddr(addr string) Option {
	return func(c *Config) {
		c.RedisAddr = addr
	}
}

// WithRedisPassword sets the Redis authentication password.
func WithRedisPassword(password string) Option {
	return func(c *Config) {
		c.RedisPassword = password
	}
}

// WithRedisDB sets the Redis database number.
func WithRedisDB(db int) Option {
	return func(c *Config) {
		c.RedisDB = db
	}
}

// WithDefaultLimit sets the default rate limit.
func WithDefaultLimit(limit int, window time.Duration) Option {
	return func(c *Config) {
		c.DefaultLimit = limit
		c.DefaultWindow = window
	}
}

// WithRouteLimit sets a specific rate limit for a named route.
func WithRouteLimit(route string, limit int, window time.Duration) Option {
	return func(c *Config) {
		c.RouteLimits[route] = RouteLimit{
			Limit:  limit,
			Window: window,
		}
	}
}

// WithKeyPrefix sets the Redis key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(c *Config) {
		c.KeyPrefix = prefix
	}
}

// limitFor returns the limit and window configured for a route.
func (c *Config) limitFor(route string) (int, time.Duration) {
	if rl, ok := c.RouteLimits[route]; ok {
		return rl.Limit, rl.Window
	}
	return c.DefaultLimit, c.DefaultWindow
}
