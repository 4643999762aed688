// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/domain/repository"
	"task_backend/internal/platform/db"
	"task_backend/internal/shared/clock"
)

// userSQL はUserRepositoryインターフェースのSQL実装です。
// GORMを使用し、PostgreSQLとSQLiteの両方で動作します。
type userSQL struct {
	db  *gorm.DB
	now func() time.Time
}

// userSQLがUserRepositoryを実装していることをコンパイル時に検証します。
var _ repository.UserRepository = (*userSQL)(nil)

// NewUserSQL は指定されたgorm.DB接続でuserSQLの新しいインスタンスを生成します。
func NewUserSQL(db *gorm.DB) *userSQL {
	return &userSQL{db: db, now: clock.Now}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrUserAlreadyExistsを返します。
func (r *userSQL) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	now := r.now()
	m := UserModelFromEntity(u)
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	*u = *m.ToEntity()
	return nil
}

// FindByID はIDでユーザーを取得します。
func (r *userSQL) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *userSQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userSQL) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return m.ToEntity(), nil
}

// Update はパッチを適用し、UpdatedAtを更新したユーザーを返します。
func (r *userSQL) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	fields := map[string]any{"updated_at": r.now()}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Password != nil {
		fields["password"] = *patch.Password
	}

	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if db.IsUniqueViolation(result.Error) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete はユーザーを削除し、存在していたかどうかを返します。
func (r *userSQL) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete user: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
