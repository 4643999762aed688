package adapters

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/domain/repository"
	"task_backend/internal/shared/clock"
)

// userMemory はUserRepositoryのインメモリ実装です。
// emailインデックスを保持し、メールアドレス検索を全件走査なしで行います。
type userMemory struct {
	mu      sync.RWMutex
	users   map[string]entity.User
	byEmail map[string]string
	now     func() time.Time
}

var _ repository.UserRepository = (*userMemory)(nil)

// NewUserMemory は空のインメモリリポジトリを生成します。
func NewUserMemory() *userMemory {
	return &userMemory{
		users:   make(map[string]entity.User),
		byEmail: make(map[string]string),
		now:     clock.Now,
	}
}

func (r *userMemory) Create(_ context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return domain.ErrUserAlreadyExists
	}

	now := r.now()
	stored := *u
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.users[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	*u = stored
	return nil
}

func (r *userMemory) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *userMemory) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.users[id]
	return &u, nil
}

func (r *userMemory) Update(_ context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil && *patch.Email != u.Email {
		if _, taken := r.byEmail[*patch.Email]; taken {
			return nil, domain.ErrUserAlreadyExists
		}
		delete(r.byEmail, u.Email)
		u.Email = *patch.Email
		r.byEmail[u.Email] = id
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	u.UpdatedAt = r.now()

	r.users[id] = u
	return &u, nil
}

func (r *userMemory) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	delete(r.users, id)
	delete(r.byEmail, u.Email)
	return true, nil
}
