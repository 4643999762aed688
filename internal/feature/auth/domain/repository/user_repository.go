// Package repository defines the persistence contract for users.
package repository

import (
	"context"

	"task_backend/internal/feature/auth/domain/entity"
)

// UserRepository is implemented by the in-memory and SQL backends with
// identical observable behavior.
type UserRepository interface {
	// Create assigns ID and timestamps and stores u.
	// Returns domain.ErrUserAlreadyExists if the email is taken.
	Create(ctx context.Context, u *entity.User) error

	// FindByID returns domain.ErrUserNotFound when no user has id.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail looks up by normalized email.
	// Returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update applies patch, refreshes UpdatedAt and returns the stored user.
	// Returns domain.ErrUserNotFound when no user has id.
	Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)

	// Delete removes the user and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
}
