// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Task is a unit of work inside a list. UserID always equals the owning list's UserID.
type Task struct {
	ID          string
	Title       string
	Description *string
	Deadline    *time.Time
	IsCompleted bool
	ListID      string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue reports whether the task is incomplete and its deadline is before now.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.IsCompleted && t.Deadline != nil && t.Deadline.Before(now)
}

// DueWithin reports whether the deadline falls in [from, to].
func (t *Task) DueWithin(from, to time.Time) bool {
	return t.Deadline != nil && !t.Deadline.Before(from) && !t.Deadline.After(to)
}

// TaskPatch lists the fields an update may change. Nil fields are left
// untouched. A non-nil empty Description clears it; ClearDeadline removes
// the deadline and takes precedence over Deadline.
type TaskPatch struct {
	Title         *string
	Description   *string
	Deadline      *time.Time
	ClearDeadline bool
	IsCompleted   *bool
}
