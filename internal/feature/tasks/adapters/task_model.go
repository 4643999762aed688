package adapters

import (
	"time"

	"task_backend/internal/feature/tasks/domain/entity"
)

// TaskModel is the GORM model for the tasks table.
type TaskModel struct {
	ID          string     `gorm:"primaryKey;size:36"`
	Title       string     `gorm:"size:255;not null"`
	Description *string    `gorm:"size:1000"`
	Deadline    *time.Time `gorm:"index:idx_tasks_user_deadline,priority:2"`
	IsCompleted bool       `gorm:"not null;default:false"`
	ListID      string     `gorm:"size:36;not null;index"`
	UserID      string     `gorm:"size:36;not null;index;index:idx_tasks_user_deadline,priority:1"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}

// ToEntity converts the GORM model to a domain entity.
func (m *TaskModel) ToEntity() *entity.Task {
	t := &entity.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		IsCompleted: m.IsCompleted,
		ListID:      m.ListID,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.Deadline != nil {
		d := m.Deadline.UTC()
		t.Deadline = &d
	}
	return t
}

// TaskModelFromEntity converts a domain entity to a GORM model.
func TaskModelFromEntity(t *entity.Task) *TaskModel {
	return &TaskModel{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		IsCompleted: t.IsCompleted,
		ListID:      t.ListID,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func descriptionValue(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	v := *d
	return &v
}

func deadlineValue(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	v := d.UTC().Truncate(time.Microsecond)
	return &v
}
