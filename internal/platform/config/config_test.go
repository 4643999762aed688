package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/platform/db"
)

func validConfig() *Config {
	return &Config{
		Env:            "development",
		JWTSecret:      "test-secret",
		JWTExpiresIn:   "24h",
		RepositoryType: RepositoryMemory,
		RateLimit: RateLimitConfig{
			WindowMs: 900000, MaxRequests: 100, AuthMax: 5, CreateWindowMs: 300000, CreateMax: 20,
		},
	}
}

var configKeys = []string{
	"PORT", "NODE_ENV", "LOG_LEVEL", "JWT_SECRET", "JWT_EXPIRES_IN", "BCRYPT_COST", "REPOSITORY_TYPE",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "SQLITE_PATH",
	"RUN_MIGRATIONS", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "RATE_LIMIT_WINDOW_MS",
	"RATE_LIMIT_MAX_REQUESTS", "AUTH_RATE_LIMIT_MAX", "CREATE_RATE_LIMIT_WINDOW_MS", "CREATE_RATE_LIMIT_MAX",
	"CORS_ORIGIN",
}

// clearEnv unsets every configuration key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		if old, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { _ = os.Setenv(key, old) })
		}
	}
}

// TestFromEnv_Defaults は環境変数未設定時にデフォルト値が使われることを検証します。
func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "24h", cfg.JWTExpiresIn)
	assert.Equal(t, RepositoryMemory, cfg.RepositoryType)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.CreateWindow())
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 5, cfg.RateLimit.AuthMax)
	assert.Equal(t, 20, cfg.RateLimit.CreateMax)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins())
	assert.NoError(t, cfg.Validate())
}

// TestFromEnv_Overrides は環境変数がデフォルト値を上書きすることを検証します。
func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PORT", "8080")
	t.Setenv("REPOSITORY_TYPE", " SQL ")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/tasks.db")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "7")
	t.Setenv("CORS_ORIGIN", "http://a.test, http://b.test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, RepositorySQL, cfg.RepositoryType)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/tasks.db", cfg.DB.SQLitePath)
	assert.Equal(t, 7, cfg.RateLimit.MaxRequests)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.NoError(t, cfg.Validate())
}

// TestConfig_Validate は設定の検証ルールを検証します。
func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.JWTSecret = " " }, "JWT_SECRET is required"},
		{"fallback secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = FallbackJWTSecret
		}, "secure value in production"},
		{"fallback secret allowed in development", func(c *Config) { c.JWTSecret = FallbackJWTSecret }, ""},
		{"malformed expiry", func(c *Config) { c.JWTExpiresIn = "one day" }, "JWT_EXPIRES_IN"},
		{"overflowing expiry", func(c *Config) { c.JWTExpiresIn = "999999999999d" }, "JWT_EXPIRES_IN"},
		{"bare seconds expiry", func(c *Config) { c.JWTExpiresIn = "3600" }, ""},
		{"unknown repository", func(c *Config) { c.RepositoryType = "mongo" }, "REPOSITORY_TYPE"},
		{"sql postgres without host", func(c *Config) {
			c.RepositoryType = RepositorySQL
			c.DB = db.Config{Driver: db.DriverPostgres, User: "u", Name: "n"}
		}, "DB_HOST"},
		{"sql sqlite needs no host", func(c *Config) {
			c.RepositoryType = RepositorySQL
			c.DB = db.Config{Driver: db.DriverSQLite, SQLitePath: ":memory:"}
		}, ""},
		{"non-positive window", func(c *Config) { c.RateLimit.WindowMs = 0 }, "windows must be positive"},
		{"non-positive max", func(c *Config) { c.RateLimit.AuthMax = 0 }, "maximums must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_TokenExpiration(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiration())

	cfg.JWTExpiresIn = "garbage"
	assert.Equal(t, time.Hour, cfg.TokenExpiration())
}

func TestConfig_Modes(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.Env = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}
