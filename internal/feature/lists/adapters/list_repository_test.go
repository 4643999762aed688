package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task_backend/internal/feature/lists/domain"
	"task_backend/internal/feature/lists/domain/entity"
	"task_backend/internal/feature/lists/domain/repository"
	platformdb "task_backend/internal/platform/db"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), platformdb.GormConfig())
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&ListModel{}), "failed to migrate table")
	return db
}

func backends(t *testing.T) map[string]repository.ListRepository {
	t.Helper()
	return map[string]repository.ListRepository{
		"memory": NewListMemory(),
		"sql":    NewListSQL(setupTestDB(t)),
	}
}

func strPtr(s string) *string { return &s }

func TestListRepository_Create(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := &entity.List{Name: "Work", Description: strPtr("office"), UserID: "u1"}

			require.NoError(t, repo.Create(ctx, l))
			_, err := uuid.Parse(l.ID)
			assert.NoError(t, err, "ID is a UUID")
			assert.False(t, l.CreatedAt.IsZero())
			assert.True(t, l.CreatedAt.Equal(l.UpdatedAt))
			require.NotNil(t, l.Description)
			assert.Equal(t, "office", *l.Description)

			dup := &entity.List{Name: "WORK", UserID: "u1"}
			assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrListNameTaken, "names are case-insensitive per user")

			other := &entity.List{Name: "Work", UserID: "u2"}
			assert.NoError(t, repo.Create(ctx, other), "another user may reuse the name")

			empty := &entity.List{Name: "Blank", Description: strPtr(""), UserID: "u1"}
			require.NoError(t, repo.Create(ctx, empty))
			assert.Nil(t, empty.Description, "empty description is stored as absent")

			assert.Error(t, repo.Create(ctx, nil))
		})
	}
}

func TestListRepository_FindByUserID(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, n := range []string{"first", "second", "third"} {
				require.NoError(t, repo.Create(ctx, &entity.List{Name: n, UserID: "u1"}))
				time.Sleep(time.Millisecond)
			}
			require.NoError(t, repo.Create(ctx, &entity.List{Name: "foreign", UserID: "u2"}))

			lists, err := repo.FindByUserID(ctx, "u1")
			require.NoError(t, err)
			require.Len(t, lists, 3)
			assert.Equal(t, "first", lists[0].Name)
			assert.Equal(t, "second", lists[1].Name)
			assert.Equal(t, "third", lists[2].Name)

			none, err := repo.FindByUserID(ctx, "nobody")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestListRepository_FindByIDAndUserID(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := &entity.List{Name: "Home", UserID: "u1"}
			require.NoError(t, repo.Create(ctx, l))

			found, err := repo.FindByIDAndUserID(ctx, l.ID, "u1")
			require.NoError(t, err)
			assert.Equal(t, "Home", found.Name)
			assert.True(t, found.CreatedAt.Equal(l.CreatedAt))

			_, err = repo.FindByIDAndUserID(ctx, l.ID, "u2")
			assert.ErrorIs(t, err, domain.ErrListNotFound, "foreign list looks missing")

			_, err = repo.FindByIDAndUserID(ctx, uuid.NewString(), "u1")
			assert.ErrorIs(t, err, domain.ErrListNotFound)
		})
	}
}

func TestListRepository_IsNameUniqueForUser(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := &entity.List{Name: "Groceries", UserID: "u1"}
			require.NoError(t, repo.Create(ctx, l))

			tests := []struct {
				name      string
				userID    string
				listName  string
				excludeID string
				want      bool
			}{
				{"same name", "u1", "Groceries", "", false},
				{"different case", "u1", "groceries", "", false},
				{"excluded self", "u1", "GROCERIES", l.ID, true},
				{"other user", "u2", "Groceries", "", true},
				{"new name", "u1", "Errands", "", true},
			}
			for _, tt := range tests {
				got, err := repo.IsNameUniqueForUser(ctx, tt.userID, tt.listName, tt.excludeID)
				require.NoError(t, err, tt.name)
				assert.Equal(t, tt.want, got, tt.name)
			}
		})
	}
}

func TestListRepository_Update(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := &entity.List{Name: "Old", Description: strPtr("desc"), UserID: "u1"}
			require.NoError(t, repo.Create(ctx, l))
			require.NoError(t, repo.Create(ctx, &entity.List{Name: "Taken", UserID: "u1"}))

			time.Sleep(2 * time.Millisecond)
			updated, err := repo.Update(ctx, l.ID, "u1", entity.ListPatch{Name: strPtr("New")})
			require.NoError(t, err)
			assert.Equal(t, "New", updated.Name)
			require.NotNil(t, updated.Description, "untouched fields are kept")
			assert.Equal(t, "desc", *updated.Description)
			assert.True(t, updated.UpdatedAt.After(l.UpdatedAt))
			assert.True(t, updated.CreatedAt.Equal(l.CreatedAt))

			cleared, err := repo.Update(ctx, l.ID, "u1", entity.ListPatch{Description: strPtr("")})
			require.NoError(t, err)
			assert.Nil(t, cleared.Description)

			recased, err := repo.Update(ctx, l.ID, "u1", entity.ListPatch{Name: strPtr("NEW")})
			require.NoError(t, err, "renaming to a different case of its own name is allowed")
			assert.Equal(t, "NEW", recased.Name)

			_, err = repo.Update(ctx, l.ID, "u1", entity.ListPatch{Name: strPtr("taken")})
			assert.ErrorIs(t, err, domain.ErrListNameTaken)

			_, err = repo.Update(ctx, l.ID, "u2", entity.ListPatch{Name: strPtr("x")})
			assert.ErrorIs(t, err, domain.ErrListNotFound)
		})
	}
}

func TestListRepository_Delete(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := &entity.List{Name: "Gone", UserID: "u1"}
			require.NoError(t, repo.Create(ctx, l))

			deleted, err := repo.Delete(ctx, l.ID, "u2")
			require.NoError(t, err)
			assert.False(t, deleted, "other users cannot delete")

			deleted, err = repo.Delete(ctx, l.ID, "u1")
			require.NoError(t, err)
			assert.True(t, deleted)

			deleted, err = repo.Delete(ctx, l.ID, "u1")
			require.NoError(t, err)
			assert.False(t, deleted)

			assert.NoError(t, repo.Create(ctx, &entity.List{Name: "Gone", UserID: "u1"}), "name is reusable after delete")
		})
	}
}

func TestListMemory_ReturnsCopies(t *testing.T) {
	repo := NewListMemory()
	ctx := context.Background()
	l := &entity.List{Name: "Copy", Description: strPtr("orig"), UserID: "u1"}
	require.NoError(t, repo.Create(ctx, l))

	found, err := repo.FindByIDAndUserID(ctx, l.ID, "u1")
	require.NoError(t, err)
	*found.Description = "tampered"

	again, err := repo.FindByIDAndUserID(ctx, l.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "orig", *again.Description)
}

// TestListSQL_PostgresUniqueViolation は、Postgresの一意制約違反が
// ErrListNameTaken に変換されることを検証します。
func TestListSQL_PostgresUniqueViolation(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), platformdb.GormConfig())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "lists"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err = NewListSQL(gdb).Create(context.Background(), &entity.List{Name: "Dup", UserID: "u1"})

	assert.ErrorIs(t, err, domain.ErrListNameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListModel_Conversion(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	l := &entity.List{ID: "id-1", Name: "Mixed Case", Description: strPtr("d"), UserID: "u1", CreatedAt: now, UpdatedAt: now}

	m := ListModelFromEntity(l)
	assert.Equal(t, "lists", m.TableName())
	assert.Equal(t, "mixed case", m.NameKey)
	assert.Equal(t, l, m.ToEntity())
}
