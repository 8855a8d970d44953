// Package bootstrap establishes process-wide runtime dependencies for the
// command entrypoints: database, Redis, and tracing.
package bootstrap

import (
	"context"
	"fmt"

	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/middleware"
	"devconnect/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime holds the initialized shared dependencies.
type Runtime struct {
	DB              *gorm.DB
	Redis           *redis.Client
	tracingShutdown func(context.Context) error
}

// InitRuntime connects to the database, initializes Redis (nil client when
// unreachable), and starts the tracing provider when enabled.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	rt := &Runtime{
		DB:    db,
		Redis: cache.GetClient(),
	}

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(observability.TracingConfig{
			ServiceName:  "devconnect-api",
			Enabled:      cfg.TracingEnabled,
			Exporter:     cfg.TracingExporter,
			OTLPEndpoint: cfg.OTLPEndpoint,
			SamplerRatio: cfg.TracingSampler,
			Environment:  cfg.Env,
		})
		if err != nil {
			return nil, fmt.Errorf("tracing init failed: %w", err)
		}
		rt.tracingShutdown = shutdown
	}

	return rt, nil
}

// Close flushes and releases runtime resources.
func (rt *Runtime) Close(ctx context.Context) {
	if rt.tracingShutdown != nil {
		if err := rt.tracingShutdown(ctx); err != nil {
			middleware.Logger.Error("tracing shutdown failed", "error", err)
		}
	}
}
