package adapters

import (
	"strings"
	"time"

	"task_backend/internal/feature/lists/domain/entity"
)

// ListModel is the GORM model for the lists table. NameKey holds the
// lowercased name so the (user_id, name_key) unique index enforces
// case-insensitive uniqueness per owner.
type ListModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"size:100;not null"`
	NameKey     string    `gorm:"size:100;not null;uniqueIndex:idx_lists_user_name_key,priority:2"`
	Description *string   `gorm:"size:500"`
	UserID      string    `gorm:"size:36;not null;index;uniqueIndex:idx_lists_user_name_key,priority:1"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (ListModel) TableName() string {
	return "lists"
}

// ToEntity converts the GORM model to a domain entity.
func (m *ListModel) ToEntity() *entity.List {
	return &entity.List{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// ListModelFromEntity converts a domain entity to a GORM model.
func ListModelFromEntity(l *entity.List) *ListModel {
	return &ListModel{
		ID:          l.ID,
		Name:        l.Name,
		NameKey:     nameKey(l.Name),
		Description: l.Description,
		UserID:      l.UserID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// nameKey is the comparison form of a list name.
func nameKey(name string) string {
	return strings.ToLower(name)
}

// descriptionValue maps an empty description to NULL.
func descriptionValue(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	v := *d
	return &v
}
