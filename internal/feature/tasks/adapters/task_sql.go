// Package adapters provides the task repository backends.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task_backend/internal/feature/tasks/domain"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/domain/repository"
	"task_backend/internal/shared/clock"
)

const createdOrder = "created_at ASC, id ASC"

type taskSQL struct {
	db  *gorm.DB
	now func() time.Time
}

var _ repository.TaskRepository = (*taskSQL)(nil)

// NewTaskSQL returns the gorm-backed TaskRepository.
func NewTaskSQL(db *gorm.DB) *taskSQL {
	return &taskSQL{db: db, now: clock.Now}
}

func (r *taskSQL) Create(ctx context.Context, t *entity.Task) error {
	if t == nil {
		return errors.New("task is nil")
	}
	now := r.now()
	m := TaskModelFromEntity(t)
	m.ID = uuid.NewString()
	m.Description = descriptionValue(t.Description)
	m.Deadline = deadlineValue(t.Deadline)
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	*t = *m.ToEntity()
	return nil
}

func (r *taskSQL) find(ctx context.Context, order string, where string, args ...any) ([]entity.Task, error) {
	var models []TaskModel
	if err := r.db.WithContext(ctx).Where(where, args...).Order(order).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	tasks := make([]entity.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, *models[i].ToEntity())
	}
	return tasks, nil
}

func (r *taskSQL) FindByUserID(ctx context.Context, userID string) ([]entity.Task, error) {
	return r.find(ctx, createdOrder, "user_id = ?", userID)
}

func (r *taskSQL) FindByListID(ctx context.Context, listID, userID string) ([]entity.Task, error) {
	return r.find(ctx, createdOrder, "list_id = ? AND user_id = ?", listID, userID)
}

func (r *taskSQL) FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.Task, error) {
	var m TaskModel
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return m.ToEntity(), nil
}

func (r *taskSQL) FindDueInRange(ctx context.Context, userID string, from, to time.Time) ([]entity.Task, error) {
	return r.find(ctx, "deadline ASC, "+createdOrder,
		"user_id = ? AND deadline IS NOT NULL AND deadline >= ? AND deadline <= ?",
		userID, from.UTC(), to.UTC())
}

func (r *taskSQL) FindSortedByDeadline(ctx context.Context, userID string, ascending bool) ([]entity.Task, error) {
	order := "deadline ASC, " + createdOrder
	if !ascending {
		order = "deadline DESC, " + createdOrder
	}
	return r.find(ctx, order, "user_id = ? AND deadline IS NOT NULL", userID)
}

func (r *taskSQL) Update(ctx context.Context, id, userID string, patch entity.TaskPatch) (*entity.Task, error) {
	fields := map[string]any{"updated_at": r.now()}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = descriptionValue(patch.Description)
	}
	switch {
	case patch.ClearDeadline:
		fields["deadline"] = nil
	case patch.Deadline != nil:
		fields["deadline"] = deadlineValue(patch.Deadline)
	}
	if patch.IsCompleted != nil {
		fields["is_completed"] = *patch.IsCompleted
	}

	result := r.db.WithContext(ctx).Model(&TaskModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return r.FindByIDAndUserID(ctx, id, userID)
}

func (r *taskSQL) Delete(ctx context.Context, id, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&TaskModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete task: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *taskSQL) DeleteByListID(ctx context.Context, listID, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("list_id = ? AND user_id = ?", listID, userID).Delete(&TaskModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete tasks of list: %w", result.Error)
	}
	return result.RowsAffected, nil
}
