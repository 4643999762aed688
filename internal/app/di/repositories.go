// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	authadapters "task_backend/internal/feature/auth/adapters"
	authrepo "task_backend/internal/feature/auth/domain/repository"
	listadapters "task_backend/internal/feature/lists/adapters"
	listrepo "task_backend/internal/feature/lists/domain/repository"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskrepo "task_backend/internal/feature/tasks/domain/repository"
	"task_backend/internal/platform/config"
	"task_backend/internal/platform/db"
)

// Repositories is one consistent set of repositories sharing a backend.
type Repositories struct {
	Users authrepo.UserRepository
	Lists listrepo.ListRepository
	Tasks taskrepo.TaskRepository
}

// Models returns the GORM models of every SQL-backed repository.
func Models() []any {
	return []any{&authadapters.UserModel{}, &listadapters.ListModel{}, &taskadapters.TaskModel{}}
}

// OpenSQL opens the configured database and migrates it when enabled.
func OpenSQL(cfg db.Config) (*gorm.DB, error) {
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := db.Migrate(gdb, Models()...); err != nil {
			return nil, err
		}
		slog.Info("database migrated", "driver", cfg.Driver)
	}
	return gdb, nil
}

// NewRepositories builds a fresh repository graph for repoType. gdb is only
// used, and then required, for the SQL backend.
func NewRepositories(repoType string, gdb *gorm.DB) (*Repositories, error) {
	switch repoType {
	case config.RepositoryMemory:
		return &Repositories{
			Users: authadapters.NewUserMemory(),
			Lists: listadapters.NewListMemory(),
			Tasks: taskadapters.NewTaskMemory(),
		}, nil
	case config.RepositorySQL:
		if gdb == nil {
			return nil, fmt.Errorf("repository type %q requires a database", repoType)
		}
		return &Repositories{
			Users: authadapters.NewUserSQL(gdb),
			Lists: listadapters.NewListSQL(gdb),
			Tasks: taskadapters.NewTaskSQL(gdb),
		}, nil
	default:
		return nil, fmt.Errorf("unknown repository type %q", repoType)
	}
}
