// Package domain defines domain-level errors for the lists feature.
package domain

import "errors"

var (
	// ErrListNotFound is returned when a list does not exist or belongs to another user.
	ErrListNotFound = errors.New("list not found")

	// ErrListNameTaken is returned when the owner already has a list with the same
	// name, compared case-insensitively.
	ErrListNameTaken = errors.New("list name already taken")
)
