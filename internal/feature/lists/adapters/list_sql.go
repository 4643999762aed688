// Package adapters provides the list repository backends.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task_backend/internal/feature/lists/domain"
	"task_backend/internal/feature/lists/domain/entity"
	"task_backend/internal/feature/lists/domain/repository"
	"task_backend/internal/platform/db"
	"task_backend/internal/shared/clock"
)

type listSQL struct {
	db  *gorm.DB
	now func() time.Time
}

var _ repository.ListRepository = (*listSQL)(nil)

// NewListSQL returns the gorm-backed ListRepository.
func NewListSQL(db *gorm.DB) *listSQL {
	return &listSQL{db: db, now: clock.Now}
}

func (r *listSQL) Create(ctx context.Context, l *entity.List) error {
	if l == nil {
		return errors.New("list is nil")
	}
	now := r.now()
	m := ListModelFromEntity(l)
	m.ID = uuid.NewString()
	m.Description = descriptionValue(l.Description)
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrListNameTaken
		}
		return fmt.Errorf("failed to create list: %w", err)
	}
	*l = *m.ToEntity()
	return nil
}

func (r *listSQL) FindByUserID(ctx context.Context, userID string) ([]entity.List, error) {
	var models []ListModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find lists: %w", err)
	}

	lists := make([]entity.List, 0, len(models))
	for i := range models {
		lists = append(lists, *models[i].ToEntity())
	}
	return lists, nil
}

func (r *listSQL) FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.List, error) {
	var m ListModel
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}
	return m.ToEntity(), nil
}

func (r *listSQL) IsNameUniqueForUser(ctx context.Context, userID, name, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&ListModel{}).Where("user_id = ? AND name_key = ?", userID, nameKey(name))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check list name: %w", err)
	}
	return count == 0, nil
}

func (r *listSQL) Update(ctx context.Context, id, userID string, patch entity.ListPatch) (*entity.List, error) {
	fields := map[string]any{"updated_at": r.now()}
	if patch.Name != nil {
		fields["name"] = *patch.Name
		fields["name_key"] = nameKey(*patch.Name)
	}
	if patch.Description != nil {
		fields["description"] = descriptionValue(patch.Description)
	}

	result := r.db.WithContext(ctx).Model(&ListModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		if db.IsUniqueViolation(result.Error) {
			return nil, domain.ErrListNameTaken
		}
		return nil, fmt.Errorf("failed to update list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrListNotFound
	}
	return r.FindByIDAndUserID(ctx, id, userID)
}

func (r *listSQL) Delete(ctx context.Context, id, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&ListModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete list: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
