// Package bootstrap wires the process-wide dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"scribe/internal/cache"
	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/middleware"
	"scribe/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const localPageCacheBytes = 32 << 20

// Runtime holds the connections a server process needs.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	Pages cache.PageCache

	shutdownTracing func(context.Context) error
}

// InitRuntime connects to the database, tracing and, when configured, Redis.
// A missing Redis is not fatal: the page cache falls back to process memory.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	middleware.Logger = middleware.NewLogger(cfg.Env, "")

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "scribe-api",
		ServiceVersion: "1.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var rdb *redis.Client
	if cfg.CacheBackend != "memory" {
		rdb = cache.InitRedis(cfg.RedisURL)
	}

	pages, err := NewPageCache(cfg, rdb)
	if err != nil {
		return nil, err
	}

	return &Runtime{DB: db, Redis: rdb, Pages: pages, shutdownTracing: shutdown}, nil
}

// NewPageCache picks the global feed page cache for cfg. Redis is used when a
// client is available and the backend is not forced to memory.
func NewPageCache(cfg *config.Config, rdb *redis.Client) (cache.PageCache, error) {
	if rdb != nil && cfg.CacheBackend != "memory" {
		return cache.NewRedisPageCache(rdb), nil
	}

	local, err := cache.NewLocalPageCache(localPageCacheBytes)
	if err != nil {
		return nil, fmt.Errorf("page cache init failed: %w", err)
	}
	middleware.Logger.Info("using in-process page cache", slog.String("backend", cfg.CacheBackend))
	return local, nil
}

// Close flushes traces. Database and Redis are closed by the server shutdown.
func (r *Runtime) Close(ctx context.Context) error {
	if r.shutdownTracing == nil {
		return nil
	}
	return r.shutdownTracing(ctx)
}
