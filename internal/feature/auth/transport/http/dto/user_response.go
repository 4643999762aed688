package dto

import (
	"time"

	"task_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public JSON shape of a user.
type UserRes struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthRes is returned by register and login.
type AuthRes struct {
	User  UserRes `json:"user"`
	Token string  `json:"token"`
}

// UserEnvelope wraps a single user.
type UserEnvelope struct {
	User UserRes `json:"user"`
}

// NewUserRes converts a sanitized user.
func NewUserRes(u *entity.PublicUser) UserRes {
	return UserRes{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}
