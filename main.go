package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-tracker-api/middleware/ratelimit"
	"github.com/example/task-tracker-api/modules/api"
	"github.com/example/task-tracker-api/modules/auth"
	"github.com/example/task-tracker-api/modules/tasks"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Tracker API ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Credential endpoints get a Redis-backed limiter when REDIS_ADDR
	// is configured; without it the API runs unthrottled.
	limiter := setupRateLimiter()

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())       // Independent module (credential services)
	app.Register(tasks.NewModule())      // Independent module (task resource)
	app.Register(api.NewModule(limiter)) // Depends on auth and task modules

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// setupRateLimiter builds the auth-endpoint limiter from environment
// configuration. Returns nil when Redis is not configured or not
// reachable, which disables throttling rather than blocking startup.
func setupRateLimiter() *ratelimit.Middleware {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Println("REDIS_ADDR not set, rate limiting disabled")
		return nil
	}

	limiter, err := ratelimit.New(
		context.Background(),
		ratelimit.WithRedisAddr(redisAddr),
		ratelimit.WithRedisPassword(os.Getenv("REDIS_PASSWORD")),
		ratelimit.WithKeyPrefix("tasktracker:ratelimit:"),
		// Default: 100 requests per minute
		ratelimit.WithDefaultLimit(100, time.Minute),
		// Login is the credential-guessing surface
		ratelimit.WithRouteLimit("auth.login", 10, time.Minute),
		ratelimit.WithRouteLimit("auth.register", 20, time.Minute),
		ratelimit.WithRouteLimit("auth.reset-password", 10, time.Minute),
	)
	if err != nil {
		log.Printf("Rate limiter unavailable, continuing without it: %v", err)
		return nil
	}

	return limiter
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register        - Register a new user")
	log.Println("  POST   /api/v1/auth/login           - Login and get an access token")
	log.Println("  POST   /api/v1/auth/reset-password  - Reset password")
	log.Println("  GET    /health                      - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/tasks                - List tasks")
	log.Println("  POST   /api/v1/tasks                - Create a task")
	log.Println("  GET    /api/v1/tasks/:id            - Get a task")
	log.Println("  PUT    /api/v1/tasks/:id            - Update a task")
	log.Println("  DELETE /api/v1/tasks/:id            - Delete a task")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
