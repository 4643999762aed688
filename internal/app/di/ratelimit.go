package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"task_backend/internal/platform/config"
	"task_backend/internal/platform/ratelimit"
	infraredis "task_backend/internal/platform/redis"
)

// NewRateLimitStore returns a Redis-backed store when Redis is configured
// and reachable, and an in-process store otherwise. The returned client is
// nil unless Redis is in use; the caller closes it.
func NewRateLimitStore(ctx context.Context, cfg config.RedisConfig) (ratelimit.Store, *redis.Client) {
	if cfg.Host == "" {
		return ratelimit.NewMemoryStore(), nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Addr(), cfg.Password)
	if err != nil {
		slog.Warn("Redis unavailable, using in-process rate limiting", "addr", cfg.Addr(), "error", err)
		return ratelimit.NewMemoryStore(), nil
	}
	return ratelimit.NewRedisStore(rdb, "ratelimit"), rdb
}
