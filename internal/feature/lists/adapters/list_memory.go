package adapters

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"task_backend/internal/feature/lists/domain"
	"task_backend/internal/feature/lists/domain/entity"
	"task_backend/internal/feature/lists/domain/repository"
	"task_backend/internal/shared/clock"
)

// listMemory keeps lists in a map keyed by id plus a per-user index.
// Ordering is computed at read time.
type listMemory struct {
	mu     sync.RWMutex
	lists  map[string]entity.List
	byUser map[string]map[string]struct{}
	now    func() time.Time
}

var _ repository.ListRepository = (*listMemory)(nil)

// NewListMemory returns an empty in-memory ListRepository.
func NewListMemory() *listMemory {
	return &listMemory{
		lists:  make(map[string]entity.List),
		byUser: make(map[string]map[string]struct{}),
		now:    clock.Now,
	}
}

func (r *listMemory) Create(_ context.Context, l *entity.List) error {
	if l == nil {
		return errors.New("list is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.nameFree(l.UserID, l.Name, "") {
		return domain.ErrListNameTaken
	}

	now := r.now()
	stored := *l
	stored.ID = uuid.NewString()
	stored.Description = descriptionValue(l.Description)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.lists[stored.ID] = stored
	ids, ok := r.byUser[stored.UserID]
	if !ok {
		ids = make(map[string]struct{})
		r.byUser[stored.UserID] = ids
	}
	ids[stored.ID] = struct{}{}

	*l = copyList(stored)
	return nil
}

func (r *listMemory) FindByUserID(_ context.Context, userID string) ([]entity.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.List, 0, len(r.byUser[userID]))
	for id := range r.byUser[userID] {
		out = append(out, copyList(r.lists[id]))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *listMemory) FindByIDAndUserID(_ context.Context, id, userID string) (*entity.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lists[id]
	if !ok || l.UserID != userID {
		return nil, domain.ErrListNotFound
	}
	c := copyList(l)
	return &c, nil
}

func (r *listMemory) IsNameUniqueForUser(_ context.Context, userID, name, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nameFree(userID, name, excludeID), nil
}

// nameFree reports whether userID has no list other than excludeID named name.
// Callers hold r.mu.
func (r *listMemory) nameFree(userID, name, excludeID string) bool {
	key := nameKey(name)
	for id := range r.byUser[userID] {
		if id != excludeID && nameKey(r.lists[id].Name) == key {
			return false
		}
	}
	return true
}

func (r *listMemory) Update(_ context.Context, id, userID string, patch entity.ListPatch) (*entity.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[id]
	if !ok || l.UserID != userID {
		return nil, domain.ErrListNotFound
	}
	if patch.Name != nil {
		if !r.nameFree(userID, *patch.Name, id) {
			return nil, domain.ErrListNameTaken
		}
		l.Name = *patch.Name
	}
	if patch.Description != nil {
		l.Description = descriptionValue(patch.Description)
	}
	l.UpdatedAt = r.now()

	r.lists[id] = l
	c := copyList(l)
	return &c, nil
}

func (r *listMemory) Delete(_ context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[id]
	if !ok || l.UserID != userID {
		return false, nil
	}
	delete(r.lists, id)
	delete(r.byUser[userID], id)
	if len(r.byUser[userID]) == 0 {
		delete(r.byUser, userID)
	}
	return true, nil
}

// copyList detaches the Description pointer from the stored value.
func copyList(l entity.List) entity.List {
	l.Description = descriptionValue(l.Description)
	return l
}
