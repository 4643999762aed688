// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"task_backend/internal/platform/db"
	jwtmw "task_backend/internal/platform/jwt"
)

// Repository backends.
const (
	RepositoryMemory = "memory"
	RepositorySQL    = "sql"
)

// FallbackJWTSecret must never be used outside development.
const FallbackJWTSecret = "fallback-secret-key-change-in-production"

// Config is the full process configuration.
type Config struct {
	Port     string `env:"PORT,default=3000"`
	Env      string `env:"NODE_ENV,default=development"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	JWTSecret    string `env:"JWT_SECRET"`
	JWTExpiresIn string `env:"JWT_EXPIRES_IN,default=24h"`
	BcryptCost   int    `env:"BCRYPT_COST,default=12"`

	RepositoryType string `env:"REPOSITORY_TYPE,default=memory"`
	DB             db.Config

	Redis     RedisConfig
	RateLimit RateLimitConfig

	CORSOrigin string `env:"CORS_ORIGIN,default=*"`
}

// RedisConfig configures the optional Redis rate-limit store.
// An empty Host disables Redis.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT,default=6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// RateLimitConfig holds the window sizes (milliseconds) and request budgets.
type RateLimitConfig struct {
	WindowMs       int `env:"RATE_LIMIT_WINDOW_MS,default=900000"`
	MaxRequests    int `env:"RATE_LIMIT_MAX_REQUESTS,default=100"`
	AuthMax        int `env:"AUTH_RATE_LIMIT_MAX,default=5"`
	CreateWindowMs int `env:"CREATE_RATE_LIMIT_WINDOW_MS,default=300000"`
	CreateMax      int `env:"CREATE_RATE_LIMIT_MAX,default=20"`
}

// Window returns the general (and auth) window.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMs) * time.Millisecond
}

// CreateWindow returns the window applied to create operations.
func (r RateLimitConfig) CreateWindow() time.Duration {
	return time.Duration(r.CreateWindowMs) * time.Millisecond
}

// Load reads an optional .env file and decodes the environment into a Config.
// The result is not validated; call Validate.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv decodes the current environment into a Config.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	cfg.RepositoryType = strings.ToLower(strings.TrimSpace(cfg.RepositoryType))
	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	return &cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() && c.JWTSecret == FallbackJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set to a secure value in production"))
	}
	if _, err := jwtmw.ParseExpiresIn(c.JWTExpiresIn); err != nil {
		errs = append(errs, fmt.Errorf("JWT_EXPIRES_IN: %w", err))
	}

	switch c.RepositoryType {
	case RepositoryMemory:
	case RepositorySQL:
		if err := c.DB.Validate(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("REPOSITORY_TYPE must be %q or %q, got %q",
			RepositoryMemory, RepositorySQL, c.RepositoryType))
	}

	if c.RateLimit.WindowMs <= 0 || c.RateLimit.CreateWindowMs <= 0 {
		errs = append(errs, errors.New("rate limit windows must be positive"))
	}
	if c.RateLimit.MaxRequests <= 0 || c.RateLimit.AuthMax <= 0 || c.RateLimit.CreateMax <= 0 {
		errs = append(errs, errors.New("rate limit maximums must be positive"))
	}

	return errors.Join(errs...)
}

// TokenExpiration returns the parsed JWT_EXPIRES_IN.
func (c *Config) TokenExpiration() time.Duration {
	return jwtmw.ExpirationFromString(c.JWTExpiresIn)
}

// IsDevelopment reports whether NODE_ENV is development.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// IsProduction reports whether NODE_ENV is production.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// CORSOrigins splits CORS_ORIGIN on commas.
func (c *Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
