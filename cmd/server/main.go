package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task_backend/internal/app/di"
	"task_backend/internal/app/router"
	"task_backend/internal/platform/config"
	"task_backend/internal/platform/http/handler"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/logger"
	"task_backend/internal/platform/metrics"
	"task_backend/internal/platform/password"

	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.Checker{}

	// db
	var gdb *gorm.DB
	if cfg.RepositoryType == config.RepositorySQL {
		gdb, err = di.OpenSQL(cfg.DB)
		if err != nil {
			return err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}()
		checks["database"] = sqlDB.PingContext
	}

	// Repository
	repos, err := di.NewRepositories(cfg.RepositoryType, gdb)
	if err != nil {
		return err
	}

	// Redis（未設定・接続不可ならプロセス内でレート制限）
	limiter, rdb := di.NewRateLimitStore(ctx, cfg.Redis)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.TokenExpiration())

	// Usecase / Handler
	handlers := di.NewHandlers(repos, password.NewHasher(cfg.BcryptCost), tokens)

	// ルータ生成
	engine := router.NewRouter(router.Deps{
		Config:   cfg,
		Logger:   log,
		Handlers: handlers,
		Verifier: tokens,
		Limiter:  limiter,
		Metrics:  metrics.New(),
		Checks:   checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.Env, "repository", cfg.RepositoryType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
