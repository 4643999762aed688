// Package db opens the gorm connection used by the relational repository backend.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const connectTimeout = 60 * time.Second

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config describes the relational database.
type Config struct {
	Driver        string `env:"DB_DRIVER,default=postgres"`
	Host          string `env:"DB_HOST"`
	Port          string `env:"DB_PORT,default=5432"`
	User          string `env:"DB_USER"`
	Password      string `env:"DB_PASSWORD"`
	Name          string `env:"DB_NAME"`
	SSLMode       string `env:"DB_SSLMODE,default=disable"`
	SQLitePath    string `env:"SQLITE_PATH,default=task_backend.db"`
	RunMigrations bool   `env:"RUN_MIGRATIONS,default=true"`
}

// Validate checks the fields the selected driver needs.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		var missing []string
		if c.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if c.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Name == "" {
			missing = append(missing, "DB_NAME")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required environment variables: %v", missing)
		}
		return nil
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
		return nil
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Driver)
	}
}

// BuildDSN returns the pgx key/value DSN for cfg.
func BuildDSN(cfg Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode)
}

// GormConfig is shared by every connection. Driver errors such as unique
// violations are translated into gorm sentinel errors.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// Open connects using cfg.Driver. Postgres connections are retried for up to
// a minute so the service can start before the database is ready.
func Open(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case DriverSQLite:
		gdb, err := gorm.Open(sqlite.Open(cfg.SQLitePath), GormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite %q: %w", cfg.SQLitePath, err)
		}
		// SQLite allows a single writer; one connection also keeps
		// ":memory:" databases from splitting across the pool.
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return gdb, nil
	case DriverPostgres:
		return ConnectWithRetry(BuildDSN(cfg), connectTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), GormConfig())
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		gdb, err := opener(dsn)
		if err == nil {
			return gdb, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(min(retryInterval, remaining))
	}
}

// Migrate creates or updates the tables for models.
func Migrate(gdb *gorm.DB, models ...any) error {
	if err := gdb.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
