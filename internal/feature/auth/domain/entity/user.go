// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the UUID assigned by the repository on creation.
	ID string

	// Email is the normalized (trimmed, lowercased) address used for authentication.
	// It must be unique across all users.
	Email string

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// PublicUser is a User without its password hash. It is the only user shape
// returned across the usecase boundary.
type PublicUser struct {
	ID        string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sanitize drops the password hash.
func (u *User) Sanitize() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPatch lists the fields an update may change. Nil fields are left untouched.
type UserPatch struct {
	Email    *string
	Password *string
}
