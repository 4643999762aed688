// Package repository defines the persistence contract for tasks.
package repository

import (
	"context"
	"time"

	"task_backend/internal/feature/tasks/domain/entity"
)

// TaskRepository is owner-scoped: every read and write filters by userID.
// Unless stated otherwise results are ordered by creation time ascending.
type TaskRepository interface {
	// Create assigns ID and timestamps and stores t.
	Create(ctx context.Context, t *entity.Task) error

	FindByUserID(ctx context.Context, userID string) ([]entity.Task, error)

	FindByListID(ctx context.Context, listID, userID string) ([]entity.Task, error)

	// FindByIDAndUserID returns domain.ErrTaskNotFound when the task is
	// missing or owned by another user.
	FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.Task, error)

	// FindDueInRange returns tasks whose deadline is within [from, to],
	// ordered by deadline, then creation time.
	FindDueInRange(ctx context.Context, userID string, from, to time.Time) ([]entity.Task, error)

	// FindSortedByDeadline returns only tasks that have a deadline, ordered
	// by deadline in the requested direction, ties by creation time.
	FindSortedByDeadline(ctx context.Context, userID string, ascending bool) ([]entity.Task, error)

	// Update applies patch, refreshes UpdatedAt and returns the stored task.
	Update(ctx context.Context, id, userID string, patch entity.TaskPatch) (*entity.Task, error)

	// Delete removes the task and reports whether it existed.
	Delete(ctx context.Context, id, userID string) (bool, error)

	// DeleteByListID removes every task of the list and returns how many were removed.
	DeleteByListID(ctx context.Context, listID, userID string) (int64, error)
}
