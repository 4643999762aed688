// Package usecase implements the business rules of the tasks feature.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	listdomain "task_backend/internal/feature/lists/domain"
	listentity "task_backend/internal/feature/lists/domain/entity"
	"task_backend/internal/feature/tasks/domain"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/domain/repository"
	"task_backend/internal/shared/apperror"
	"task_backend/internal/shared/clock"
)

const (
	msgEmptyTitle      = "Task title cannot be empty"
	msgInvalidDeadline = "Invalid deadline format. Please use ISO date format."
	unknownListName    = "Unknown List"
)

// Sort orders accepted by GetUserTasks.
const (
	SortDeadlineAsc  = "deadline"
	SortDeadlineDesc = "-deadline"
)

// OwnerLists is the part of the list store the task rules depend on.
type OwnerLists interface {
	FindByIDAndUserID(ctx context.Context, id, userID string) (*listentity.List, error)
}

// TaskWithListName is a task annotated with the name of its list.
type TaskWithListName struct {
	entity.Task
	ListName string
}

// TaskStatistics holds per-user task counters.
type TaskStatistics struct {
	TotalTasks       int
	CompletedTasks   int
	PendingTasks     int
	OverdueTasks     int
	TasksDueThisWeek int
}

// TaskFilter narrows GetUserTasks. Zero values mean no filter.
type TaskFilter struct {
	Completed *bool
	ListID    string
	Sort      string
}

// DeadlineUpdate distinguishes "leave as is" (Set false) from "clear"
// (Set true, Value nil) and "replace" (Set true, Value non-nil).
type DeadlineUpdate struct {
	Set   bool
	Value *string
}

// TaskUpdate carries the optional fields of a task update.
type TaskUpdate struct {
	Title       *string
	Description *string
	Deadline    DeadlineUpdate
	IsCompleted *bool
}

type taskUsecase struct {
	tasks repository.TaskRepository
	lists OwnerLists
	now   func() time.Time
}

// NewTaskUsecase returns the task business logic.
func NewTaskUsecase(tasks repository.TaskRepository, lists OwnerLists) *taskUsecase {
	return &taskUsecase{tasks: tasks, lists: lists, now: clock.Now}
}

// CreateTask adds a task to an owned list. Ownership is checked before the
// input is validated.
func (u *taskUsecase) CreateTask(ctx context.Context, userID, listID, title string, description, deadline *string) (*entity.Task, error) {
	if err := u.requireList(ctx, userID, listID); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, apperror.Validation(msgEmptyTitle)
	}

	t := &entity.Task{
		Title:       trimmed,
		Description: trimDescription(description),
		ListID:      listID,
		UserID:      userID,
	}
	if deadline != nil && strings.TrimSpace(*deadline) != "" {
		d, ok := parseDeadline(*deadline)
		if !ok {
			return nil, apperror.Validation(msgInvalidDeadline)
		}
		t.Deadline = &d
	}

	if err := u.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTaskByID returns an owned task.
func (u *taskUsecase) GetTaskByID(ctx context.Context, userID, taskID string) (*entity.Task, error) {
	t, err := u.tasks.FindByIDAndUserID(ctx, taskID, userID)
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

// GetUserTasks returns the user's tasks. A deadline sort drops undated tasks.
func (u *taskUsecase) GetUserTasks(ctx context.Context, userID string, f TaskFilter) ([]entity.Task, error) {
	if f.ListID != "" {
		if err := u.requireList(ctx, userID, f.ListID); err != nil {
			return nil, err
		}
	}

	var (
		tasks []entity.Task
		err   error
	)
	switch {
	case f.Sort == SortDeadlineAsc || f.Sort == SortDeadlineDesc:
		tasks, err = u.tasks.FindSortedByDeadline(ctx, userID, f.Sort == SortDeadlineAsc)
	case f.ListID != "":
		tasks, err = u.tasks.FindByListID(ctx, f.ListID, userID)
	default:
		tasks, err = u.tasks.FindByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	out := tasks[:0]
	for _, t := range tasks {
		if f.ListID != "" && t.ListID != f.ListID {
			continue
		}
		if f.Completed != nil && t.IsCompleted != *f.Completed {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// GetTasksSortedByDeadline returns only tasks with a deadline.
func (u *taskUsecase) GetTasksSortedByDeadline(ctx context.Context, userID string, ascending bool) ([]entity.Task, error) {
	return u.tasks.FindSortedByDeadline(ctx, userID, ascending)
}

// UpdateTask applies a partial update to an owned task.
func (u *taskUsecase) UpdateTask(ctx context.Context, userID, taskID string, upd TaskUpdate) (*entity.Task, error) {
	if _, err := u.tasks.FindByIDAndUserID(ctx, taskID, userID); err != nil {
		return nil, translate(err)
	}

	var patch entity.TaskPatch
	if upd.Title != nil {
		trimmed := strings.TrimSpace(*upd.Title)
		if trimmed == "" {
			return nil, apperror.Validation(msgEmptyTitle)
		}
		patch.Title = &trimmed
	}
	if upd.Description != nil {
		d := strings.TrimSpace(*upd.Description)
		patch.Description = &d
	}
	if upd.Deadline.Set {
		if upd.Deadline.Value == nil {
			patch.ClearDeadline = true
		} else {
			d, ok := parseDeadline(*upd.Deadline.Value)
			if !ok {
				return nil, apperror.Validation(msgInvalidDeadline)
			}
			patch.Deadline = &d
		}
	}
	patch.IsCompleted = upd.IsCompleted

	updated, err := u.tasks.Update(ctx, taskID, userID, patch)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// ToggleTaskCompletion flips the completion flag.
func (u *taskUsecase) ToggleTaskCompletion(ctx context.Context, userID, taskID string) (*entity.Task, error) {
	existing, err := u.tasks.FindByIDAndUserID(ctx, taskID, userID)
	if err != nil {
		return nil, translate(err)
	}
	flipped := !existing.IsCompleted
	updated, err := u.tasks.Update(ctx, taskID, userID, entity.TaskPatch{IsCompleted: &flipped})
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// DeleteTask removes an owned task.
func (u *taskUsecase) DeleteTask(ctx context.Context, userID, taskID string) error {
	deleted, err := u.tasks.Delete(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Task")
	}
	return nil
}

// GetTasksDueThisWeek returns tasks due between the start of today and the
// end of the seventh day ahead, earliest first.
func (u *taskUsecase) GetTasksDueThisWeek(ctx context.Context, userID string) ([]TaskWithListName, error) {
	start, end := next7Days(u.now())
	tasks, err := u.tasks.FindDueInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return u.withListNames(ctx, userID, tasks)
}

// GetOverdueTasks returns incomplete tasks whose deadline has passed.
func (u *taskUsecase) GetOverdueTasks(ctx context.Context, userID string) ([]TaskWithListName, error) {
	all, err := u.tasks.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := u.now()
	overdue := make([]entity.Task, 0, len(all))
	for i := range all {
		if all[i].IsOverdue(now) {
			overdue = append(overdue, all[i])
		}
	}
	return u.withListNames(ctx, userID, overdue)
}

// GetTaskStatistics counts the user's tasks by state.
func (u *taskUsecase) GetTaskStatistics(ctx context.Context, userID string) (*TaskStatistics, error) {
	all, err := u.tasks.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := u.now()
	start, end := next7Days(now)

	stats := &TaskStatistics{TotalTasks: len(all)}
	for i := range all {
		t := &all[i]
		if t.IsCompleted {
			stats.CompletedTasks++
		} else {
			stats.PendingTasks++
		}
		if t.IsOverdue(now) {
			stats.OverdueTasks++
		}
		if t.DueWithin(start, end) {
			stats.TasksDueThisWeek++
		}
	}
	return stats, nil
}

func (u *taskUsecase) requireList(ctx context.Context, userID, listID string) error {
	if _, err := u.lists.FindByIDAndUserID(ctx, listID, userID); err != nil {
		if errors.Is(err, listdomain.ErrListNotFound) {
			return apperror.NotFound("List")
		}
		return err
	}
	return nil
}

// withListNames annotates tasks with their list's name, looking each list up once.
func (u *taskUsecase) withListNames(ctx context.Context, userID string, tasks []entity.Task) ([]TaskWithListName, error) {
	names := make(map[string]string)
	out := make([]TaskWithListName, 0, len(tasks))
	for _, t := range tasks {
		name, ok := names[t.ListID]
		if !ok {
			l, err := u.lists.FindByIDAndUserID(ctx, t.ListID, userID)
			switch {
			case err == nil:
				name = l.Name
			case errors.Is(err, listdomain.ErrListNotFound):
				name = unknownListName
			default:
				return nil, err
			}
			names[t.ListID] = name
		}
		out = append(out, TaskWithListName{Task: t, ListName: name})
	}
	return out, nil
}

func translate(err error) error {
	if errors.Is(err, domain.ErrTaskNotFound) {
		return apperror.NotFound("Task")
	}
	return err
}

func trimDescription(d *string) *string {
	if d == nil {
		return nil
	}
	v := strings.TrimSpace(*d)
	if v == "" {
		return nil
	}
	return &v
}
