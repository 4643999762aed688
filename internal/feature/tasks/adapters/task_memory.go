package adapters

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"task_backend/internal/feature/tasks/domain"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/domain/repository"
	"task_backend/internal/shared/clock"
)

type idSet map[string]struct{}

// taskMemory keeps tasks by id with secondary indexes per user and per list.
type taskMemory struct {
	mu     sync.RWMutex
	tasks  map[string]entity.Task
	byUser map[string]idSet
	byList map[string]idSet
	now    func() time.Time
}

var _ repository.TaskRepository = (*taskMemory)(nil)

// NewTaskMemory returns an empty in-memory TaskRepository.
func NewTaskMemory() *taskMemory {
	return &taskMemory{
		tasks:  make(map[string]entity.Task),
		byUser: make(map[string]idSet),
		byList: make(map[string]idSet),
		now:    clock.Now,
	}
}

func addIndex(idx map[string]idSet, key, id string) {
	ids, ok := idx[key]
	if !ok {
		ids = make(idSet)
		idx[key] = ids
	}
	ids[id] = struct{}{}
}

func removeIndex(idx map[string]idSet, key, id string) {
	delete(idx[key], id)
	if len(idx[key]) == 0 {
		delete(idx, key)
	}
}

func (r *taskMemory) Create(_ context.Context, t *entity.Task) error {
	if t == nil {
		return errors.New("task is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := *t
	stored.ID = uuid.NewString()
	stored.Description = descriptionValue(t.Description)
	stored.Deadline = deadlineValue(t.Deadline)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.tasks[stored.ID] = stored
	addIndex(r.byUser, stored.UserID, stored.ID)
	addIndex(r.byList, stored.ListID, stored.ID)

	*t = copyTask(stored)
	return nil
}

// collect copies the tasks in ids that satisfy keep. Callers hold r.mu.
func (r *taskMemory) collect(ids idSet, keep func(entity.Task) bool) []entity.Task {
	out := make([]entity.Task, 0, len(ids))
	for id := range ids {
		t := r.tasks[id]
		if keep == nil || keep(t) {
			out = append(out, copyTask(t))
		}
	}
	return out
}

func createdBefore(a, b entity.Task) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func sortByCreated(tasks []entity.Task) {
	sort.Slice(tasks, func(i, j int) bool { return createdBefore(tasks[i], tasks[j]) })
}

// sortByDeadline expects every task to carry a deadline.
func sortByDeadline(tasks []entity.Task, ascending bool) {
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if !a.Deadline.Equal(*b.Deadline) {
			if ascending {
				return a.Deadline.Before(*b.Deadline)
			}
			return a.Deadline.After(*b.Deadline)
		}
		return createdBefore(a, b)
	})
}

func (r *taskMemory) FindByUserID(_ context.Context, userID string) ([]entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(r.byUser[userID], nil)
	sortByCreated(out)
	return out, nil
}

func (r *taskMemory) FindByListID(_ context.Context, listID, userID string) ([]entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(r.byList[listID], func(t entity.Task) bool { return t.UserID == userID })
	sortByCreated(out)
	return out, nil
}

func (r *taskMemory) FindByIDAndUserID(_ context.Context, id, userID string) (*entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	c := copyTask(t)
	return &c, nil
}

func (r *taskMemory) FindDueInRange(_ context.Context, userID string, from, to time.Time) ([]entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(r.byUser[userID], func(t entity.Task) bool { return t.DueWithin(from, to) })
	sortByDeadline(out, true)
	return out, nil
}

func (r *taskMemory) FindSortedByDeadline(_ context.Context, userID string, ascending bool) ([]entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.collect(r.byUser[userID], func(t entity.Task) bool { return t.Deadline != nil })
	sortByDeadline(out, ascending)
	return out, nil
}

func (r *taskMemory) Update(_ context.Context, id, userID string, patch entity.TaskPatch) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = descriptionValue(patch.Description)
	}
	switch {
	case patch.ClearDeadline:
		t.Deadline = nil
	case patch.Deadline != nil:
		t.Deadline = deadlineValue(patch.Deadline)
	}
	if patch.IsCompleted != nil {
		t.IsCompleted = *patch.IsCompleted
	}
	t.UpdatedAt = r.now()

	r.tasks[id] = t
	c := copyTask(t)
	return &c, nil
}

func (r *taskMemory) Delete(_ context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	r.remove(t)
	return true, nil
}

func (r *taskMemory) DeleteByListID(_ context.Context, listID, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id := range r.byList[listID] {
		t := r.tasks[id]
		if t.UserID != userID {
			continue
		}
		r.remove(t)
		n++
	}
	return n, nil
}

// remove drops t from every index. Callers hold r.mu for writing.
func (r *taskMemory) remove(t entity.Task) {
	delete(r.tasks, t.ID)
	removeIndex(r.byUser, t.UserID, t.ID)
	removeIndex(r.byList, t.ListID, t.ID)
}

func copyTask(t entity.Task) entity.Task {
	t.Description = descriptionValue(t.Description)
	if t.Deadline != nil {
		d := *t.Deadline
		t.Deadline = &d
	}
	return t
}
