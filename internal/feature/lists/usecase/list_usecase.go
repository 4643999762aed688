// Package usecase implements the business rules of the lists feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	authdomain "task_backend/internal/feature/auth/domain"
	authentity "task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/lists/domain"
	"task_backend/internal/feature/lists/domain/entity"
	"task_backend/internal/feature/lists/domain/repository"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/shared/apperror"
	"task_backend/internal/shared/keylock"
)

const (
	msgEmptyName = "List name cannot be empty"
	msgNameTaken = "A list with this name already exists"
	msgNoOwner   = "User not found"
)

// Accounts looks up list owners. A list is only created for an owner that
// still exists.
type Accounts interface {
	FindByID(ctx context.Context, id string) (*authentity.User, error)
}

// ListTasks is the part of the task store the list rules depend on.
type ListTasks interface {
	FindByListID(ctx context.Context, listID, userID string) ([]taskentity.Task, error)
	DeleteByListID(ctx context.Context, listID, userID string) (int64, error)
}

// ListWithTasks is a list together with every task it holds.
type ListWithTasks struct {
	entity.List
	Tasks []taskentity.Task
}

// ListSummary is a list with task counters.
type ListSummary struct {
	entity.List
	TaskCount          int
	CompletedTaskCount int
	PendingTaskCount   int
}

// ListUpdate carries an optional new name and description.
type ListUpdate struct {
	Name        *string
	Description *string
}

type listUsecase struct {
	lists repository.ListRepository
	tasks ListTasks
	// locks serializes name checks and writes per owner. Account deletion
	// takes the same per-owner lock when it is shared.
	locks    *keylock.Locker
	accounts Accounts
}

// NewListUsecase returns the list business logic. owners may be shared with
// the auth usecase; nil gets a private Locker. A nil accounts skips the owner
// existence check.
func NewListUsecase(lists repository.ListRepository, tasks ListTasks, owners *keylock.Locker, accounts Accounts) *listUsecase {
	if owners == nil {
		owners = keylock.New()
	}
	return &listUsecase{lists: lists, tasks: tasks, locks: owners, accounts: accounts}
}

// CreateList stores a new list under userID. The name is trimmed and must be
// unique for the owner regardless of case.
func (u *listUsecase) CreateList(ctx context.Context, userID, name string, description *string) (*entity.List, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperror.Validation(msgEmptyName)
	}

	unlock := u.locks.Lock(userID)
	defer unlock()

	if err := u.requireOwner(ctx, userID); err != nil {
		return nil, err
	}

	unique, err := u.lists.IsNameUniqueForUser(ctx, userID, trimmed, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperror.Conflict(msgNameTaken)
	}

	l := &entity.List{Name: trimmed, Description: trimDescription(description), UserID: userID}
	if err := u.lists.Create(ctx, l); err != nil {
		if errors.Is(err, domain.ErrListNameTaken) {
			return nil, apperror.Conflict(msgNameTaken)
		}
		return nil, err
	}
	return l, nil
}

// GetUserLists returns every list of the user with its tasks.
func (u *listUsecase) GetUserLists(ctx context.Context, userID string) ([]ListWithTasks, error) {
	lists, err := u.lists.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ListWithTasks, 0, len(lists))
	for _, l := range lists {
		tasks, err := u.tasks.FindByListID(ctx, l.ID, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, ListWithTasks{List: l, Tasks: tasks})
	}
	return out, nil
}

// GetListByID returns the list, or NotFound when it is missing or not owned by userID.
func (u *listUsecase) GetListByID(ctx context.Context, userID, listID string) (*entity.List, error) {
	l, err := u.lists.FindByIDAndUserID(ctx, listID, userID)
	if err != nil {
		return nil, translate(err)
	}
	return l, nil
}

// GetListWithTasks returns the list and its tasks.
func (u *listUsecase) GetListWithTasks(ctx context.Context, userID, listID string) (*ListWithTasks, error) {
	l, err := u.GetListByID(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	tasks, err := u.tasks.FindByListID(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	return &ListWithTasks{List: *l, Tasks: tasks}, nil
}

// GetTasksByList returns the tasks of an owned list.
func (u *listUsecase) GetTasksByList(ctx context.Context, userID, listID string) ([]taskentity.Task, error) {
	if _, err := u.GetListByID(ctx, userID, listID); err != nil {
		return nil, err
	}
	return u.tasks.FindByListID(ctx, listID, userID)
}

// UpdateList renames and/or redescribes a list. Uniqueness is only checked
// when the trimmed name differs from the stored one.
func (u *listUsecase) UpdateList(ctx context.Context, userID, listID string, upd ListUpdate) (*entity.List, error) {
	unlock := u.locks.Lock(userID)
	defer unlock()

	existing, err := u.lists.FindByIDAndUserID(ctx, listID, userID)
	if err != nil {
		return nil, translate(err)
	}

	var patch entity.ListPatch
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			return nil, apperror.Validation(msgEmptyName)
		}
		if trimmed != existing.Name {
			unique, err := u.lists.IsNameUniqueForUser(ctx, userID, trimmed, listID)
			if err != nil {
				return nil, err
			}
			if !unique {
				return nil, apperror.Conflict(msgNameTaken)
			}
		}
		patch.Name = &trimmed
	}
	if upd.Description != nil {
		d := strings.TrimSpace(*upd.Description)
		patch.Description = &d
	}

	updated, err := u.lists.Update(ctx, listID, userID, patch)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// DeleteList removes the list's tasks and then the list.
func (u *listUsecase) DeleteList(ctx context.Context, userID, listID string) error {
	if _, err := u.lists.FindByIDAndUserID(ctx, listID, userID); err != nil {
		return translate(err)
	}

	removed, err := u.tasks.DeleteByListID(ctx, listID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tasks of list: %w", err)
	}
	deleted, err := u.lists.Delete(ctx, listID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("List")
	}
	slog.Debug("list deleted", "list_id", listID, "tasks_removed", removed)
	return nil
}

// GetListsSummary returns each list with its task counters.
func (u *listUsecase) GetListsSummary(ctx context.Context, userID string) ([]ListSummary, error) {
	withTasks, err := u.GetUserLists(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ListSummary, 0, len(withTasks))
	for _, lw := range withTasks {
		completed := 0
		for _, t := range lw.Tasks {
			if t.IsCompleted {
				completed++
			}
		}
		out = append(out, ListSummary{
			List:               lw.List,
			TaskCount:          len(lw.Tasks),
			CompletedTaskCount: completed,
			PendingTaskCount:   len(lw.Tasks) - completed,
		})
	}
	return out, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, domain.ErrListNotFound):
		return apperror.NotFound("List")
	case errors.Is(err, domain.ErrListNameTaken):
		return apperror.Conflict(msgNameTaken)
	default:
		return err
	}
}

// trimDescription trims d and drops it when nothing remains.
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

// requireOwner fails when the owner's account is gone.
func (u *listUsecase) requireOwner(ctx context.Context, userID string) error {
	if u.accounts == nil {
		return nil
	}
	if _, err := u.accounts.FindByID(ctx, userID); err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			return apperror.Authentication(msgNoOwner)
		}
		return fmt.Errorf("failed to find list owner: %w", err)
	}
	return nil
}
