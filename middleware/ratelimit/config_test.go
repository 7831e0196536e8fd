package ratelimit

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected RedisAddr 'localhost:6379', got %q", cfg.RedisAddr)
	}
	if cfg.RedisPassword != "" {
		t.Errorf("expected empty RedisPassword, got %q", cfg.RedisPassword)
	}
	if cfg.RedisDB != 0 {
		t.Errorf("expected RedisDB 0, got %d", cfg.RedisDB)
	}
	if cfg.DefaultLimit != 100 {
		t.Errorf("expected DefaultLimit 100, got %d", cfg.DefaultLimit)
	}
	if cfg.DefaultWindow != time.Minute {
		t.Errorf("expected DefaultWindow 1m, got %v", cfg.DefaultWindow)
	}
	if cfg.KeyPrefix != "ratelimit:" {
		t.Errorf("expected KeyPrefix 'ratelimit:', got %q", cfg.KeyPrefix)
	}
	if cfg.RouteLimits == nil {
		t.Error("expected RouteLimits to be initialized")
	}
}

func TestWithRedisAddr(t *testing.T) {
	cfg := DefaultConfig()
	WithRedisAddr("redis.example.com:6380")(&cfg)

	if cfg.RedisAddr != "redis.example.com:6380" {
		t.Errorf("expected RedisAddr 'redis.example.com:6380', got %q", cfg.RedisAddr)
	}
}

func TestWithDefaultLimit(t *testing.T) {
	cfg := DefaultConfig()
	WithDefaultLimit(200, 30*time.Second)(&cfg)

	if cfg.DefaultLimit != 200 {
		t.Errorf("expected DefaultLimit 200, got %d", cfg.DefaultLimit)
	}
	if cfg.DefaultWindow != 30*time.Second {
		t.Errorf("expected DefaultWindow 30s, got %v", cfg.DefaultWindow)
	}
}

func TestWithRouteLimit(t *testing.T) {
	cfg := DefaultConfig()
	WithRouteLimit("auth.login", 10, time.Minute)(&cfg)
	WithRouteLimit("auth.register", 20, 10*time.Second)(&cfg)

	limit1, ok := cfg.RouteLimits["auth.login"]
	if !ok {
		t.Fatal("expected 'auth.login' to be in RouteLimits")
	}
	if limit1.Limit != 10 {
		t.Errorf("expected limit 10, got %d", limit1.Limit)
	}
	if limit1.Window != time.Minute {
		t.Errorf("expected window 1m, got %v", limit1.Window)
	}

	limit2, ok := cfg.RouteLimits["auth.register"]
	if !ok {
		t.Fatal("expected 'auth.register' to be in RouteLimits")
	}
	if limit2.Limit != 20 {
		t.Errorf("expected limit 20, got %d", limit2.Limit)
	}
	if limit2.Window != 10*time.Second {
		t.Errorf("expected window 10s, got %v", limit2.Window)
	}
}

func TestLimitFor(t *testing.T) {
	cfg := DefaultConfig()
	WithRouteLimit("auth.login", 10, 30*time.Second)(&cfg)

	limit, window := cfg.limitFor("auth.login")
	if limit != 10 || window != 30*time.Second {
		t.Errorf("limitFor(auth.login) = (%d, %v), want (10, 30s)", limit, window)
	}

	limit, window = cfg.limitFor("auth.register")
	if limit != cfg.DefaultLimit || window != cfg.DefaultWindow {
		t.Errorf("limitFor(auth.register) = (%d, %v), want defaults", limit, window)
	}
}

func TestMultipleOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts := []Option{
		WithRedisAddr("redis:6379"),
		WithRedisPassword("pass"),
		WithRedisDB(3),
		WithDefaultLimit(500, 5*time.Minute),
		WithRouteLimit("auth.login", 10, time.Minute),
		WithKeyPrefix("test:"),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("expected RedisAddr 'redis:6379', got %q", cfg.RedisAddr)
	}
	if cfg.RedisPassword != "pass" {
		t.Errorf("expected RedisPassword 'pass', got %q", cfg.RedisPassword)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("expected RedisDB 3, got %d", cfg.RedisDB)
	}
	if cfg.DefaultLimit != 500 {
		t.Errorf("expected DefaultLimit 500, got %d", cfg.DefaultLimit)
	}
	if cfg.KeyPrefix != "test:" {
		t.Errorf("expected KeyPrefix 'test:', got %q", cfg.KeyPrefix)
	}
	if len(cfg.RouteLimits) != 1 {
		t.Errorf("expected 1 route limit, got %d", len(cfg.RouteLimits))
	}
}
