// Package entity defines the domain entities for the lists feature.
package entity

import "time"

// List is a named collection of tasks owned by one user.
type List struct {
	ID string
	// Name is unique per owner, compared case-insensitively.
	Name        string
	Description *string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListPatch lists the fields an update may change. Nil fields are left
// untouched; a non-nil empty Description clears it.
type ListPatch struct {
	Name        *string
	Description *string
}
