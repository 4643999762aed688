// Package repository defines the persistence contract for lists.
package repository

import (
	"context"

	"task_backend/internal/feature/lists/domain/entity"
)

// ListRepository is owner-scoped: every read and write filters by userID.
// A list owned by someone else behaves exactly like a missing one.
type ListRepository interface {
	// Create assigns ID and timestamps and stores l.
	// Returns domain.ErrListNameTaken if l.UserID already owns the name.
	Create(ctx context.Context, l *entity.List) error

	// FindByUserID returns the user's lists ordered by creation time.
	FindByUserID(ctx context.Context, userID string) ([]entity.List, error)

	// FindByIDAndUserID returns domain.ErrListNotFound when the list is
	// missing or owned by another user.
	FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.List, error)

	// IsNameUniqueForUser reports whether no list of userID other than
	// excludeID has name, compared case-insensitively.
	IsNameUniqueForUser(ctx context.Context, userID, name, excludeID string) (bool, error)

	// Update applies patch, refreshes UpdatedAt and returns the stored list.
	Update(ctx context.Context, id, userID string, patch entity.ListPatch) (*entity.List, error)

	// Delete removes the list and reports whether it existed. Tasks are not touched.
	Delete(ctx context.Context, id, userID string) (bool, error)
}
