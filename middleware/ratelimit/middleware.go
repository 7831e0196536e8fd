package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Middleware throttles HTTP routes using the Redis-backed sliding
// window limiter. Requests are keyed by route name and client IP, so
// one client hammering the login endpoint does not consume the budget
// of others.
type Middleware struct {
	config  Config
	client  *redis.Client
	limiter *Limiter
	logger  *slog.Logger
}

// ExceededError is the response body sent when a limit is exceeded.
type ExceededError struct {
	Message   string    `json:"error"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
	Limit     int       `json:"limit"`
}

// New creates a rate limiting middleware and verifies the Redis
// connection.
func New(ctx context.Context, opts ...Option) (*Middleware, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.RedisAddr,
		Password:     config.RedisPassword,
		DB:           config.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", config.RedisAddr, err)
	}

	return &Middleware{
		config:  config,
		client:  client,
		limiter: NewLimiter(client, config.KeyPrefix),
		logger:  slog.Default(),
	}, nil
}

// Handler returns a Fiber handler that enforces the limit configured
// for the named route.
func (m *Middleware) Handler(route string) fiber.Handler {
	limit, window := m.config.limitFor(route)

	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", route, c.IP())

		result, err := m.limiter.Allow(c.UserContext(), key, limit, window)
		if err != nil {
			m.logger.Error("Rate limit check failed",
				"route", route,
				"ip", c.IP(),
				"error", err)
			// On Redis error, allow the request (fail-open)
			return c.Next()
		}

		if !result.Allowed {
			m.logger.Warn("Rate limit exceeded",
				"route", route,
				"ip", c.IP(),
				"limit", result.Limit,
				"reset_at", result.ResetAt)

			return c.Status(fiber.StatusTooManyRequests).JSON(ExceededError{
				Message:   fmt.Sprintf("rate limit exceeded for %s", route),
				Remaining: result.Remaining,
				ResetAt:   result.ResetAt,
				Limit:     result.Limit,
			})
		}

		return c.Next()
	}
}

// Close releases the Redis connection.
func (m *Middleware) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}
