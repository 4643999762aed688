// Package domain defines domain-level errors for the tasks feature.
package domain

import "errors"

// ErrTaskNotFound is returned when a task does not exist or belongs to another user.
var ErrTaskNotFound = errors.New("task not found")
