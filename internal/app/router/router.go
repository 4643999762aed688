// Package router assembles the Gin engine and mounts every route.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"task_backend/internal/app/di"
	"task_backend/internal/platform/config"
	"task_backend/internal/platform/http/handler"
	"task_backend/internal/platform/http/middleware"
	"task_backend/internal/platform/http/response"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/metrics"
	"task_backend/internal/platform/ratelimit"
)

// Deps are the collaborators the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Handlers *di.Handlers
	Verifier jwtmw.TokenVerifier
	Limiter  ratelimit.Store
	Metrics  *metrics.Metrics
	Checks   map[string]handler.Checker
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(d.Metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(response.ErrorHandler(cfg.IsDevelopment()))
	r.NoRoute(response.NoRoute)

	// 認証不要
	// 導通確認用
	health := handler.Health(d.Checks)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	general := ratelimit.Middleware(d.Limiter, ratelimit.Policy{
		Name:   "general",
		Limit:  int64(cfg.RateLimit.MaxRequests),
		Window: cfg.RateLimit.Window(),
	})
	authLimit := ratelimit.Middleware(d.Limiter, ratelimit.Policy{
		Name:           "auth",
		Limit:          int64(cfg.RateLimit.AuthMax),
		Window:         cfg.RateLimit.Window(),
		Code:           "AUTH_RATE_LIMIT_EXCEEDED",
		Message:        "Too many authentication attempts, please try again in 15 minutes",
		SkipSuccessful: true,
	})
	createLimit := ratelimit.Middleware(d.Limiter, ratelimit.Policy{
		Name:    "create",
		Limit:   int64(cfg.RateLimit.CreateMax),
		Window:  cfg.RateLimit.CreateWindow(),
		Code:    "CREATE_RATE_LIMIT_EXCEEDED",
		Message: "Too many create operations, please slow down",
		// AuthRequired が先に走るのでユーザー単位で数える
		KeyFunc: ratelimit.ByContextValue(jwtmw.ContextUserID),
	})
	authRequired := jwtmw.AuthRequired(d.Verifier)

	api := r.Group("/api", general)

	auth := api.Group("/auth")
	{
		// 新規ユーザー登録
		auth.POST("/register", authLimit, d.Handlers.Auth.Register)
		// ログイン（JWT 発行）
		auth.POST("/login", authLimit, d.Handlers.Auth.Login)

		account := auth.Group("", authRequired)
		account.GET("/me", d.Handlers.Auth.Me)
		account.PUT("/password", d.Handlers.Auth.UpdatePassword)
		account.DELETE("/account", d.Handlers.Auth.DeleteAccount)
	}

	// 認証必須のルート
	lists := api.Group("/lists", authRequired)
	{
		lists.GET("", d.Handlers.Lists.List)
		lists.POST("", createLimit, d.Handlers.Lists.Create)
		lists.GET("/summary", d.Handlers.Lists.Summary)
		lists.GET("/:id", d.Handlers.Lists.Get)
		lists.GET("/:id/tasks", d.Handlers.Lists.Tasks)
		lists.PUT("/:id", d.Handlers.Lists.Update)
		lists.DELETE("/:id", d.Handlers.Lists.Delete)
	}

	tasks := api.Group("/tasks", authRequired)
	{
		tasks.GET("", d.Handlers.Tasks.List)
		tasks.POST("", createLimit, d.Handlers.Tasks.Create)
		tasks.GET("/due-this-week", d.Handlers.Tasks.DueThisWeek)
		tasks.GET("/overdue", d.Handlers.Tasks.Overdue)
		tasks.GET("/stats", d.Handlers.Tasks.Stats)
		tasks.GET("/:id", d.Handlers.Tasks.Get)
		tasks.PUT("/:id", d.Handlers.Tasks.Update)
		tasks.PATCH("/:id/complete", d.Handlers.Tasks.Toggle)
		tasks.DELETE("/:id", d.Handlers.Tasks.Delete)
	}

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	origins := cfg.CORSOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}
