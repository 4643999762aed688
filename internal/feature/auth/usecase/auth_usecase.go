// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/domain/repository"
	listentity "task_backend/internal/feature/lists/domain/entity"
	"task_backend/internal/shared/apperror"
	"task_backend/internal/shared/keylock"
	"task_backend/internal/shared/validate"
)

// dummyHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
const dummyHash = "$2a$12$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const (
	msgInvalidEmail        = "Invalid email format"
	msgWeakPassword        = "Password must be at least 8 characters long and contain at least one letter and one number"
	msgWeakNewPassword     = "New password must be at least 8 characters long and contain at least one letter and one number"
	msgEmailTaken          = "User with this email already exists"
	msgInvalidCredentials  = "Invalid email or password"
	msgUserNotFound        = "User not found"
	msgWrongCurrentPasswd  = "Current password is incorrect"
	msgWrongDeletePassword = "Password is incorrect"
)

// PasswordHasher はパスワードのハッシュ化と検証を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/password）ではなくコンシューマー（usecase）が定義します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenGenerator はJWTトークン生成のインターフェースを定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID, email string) (string, error)
}

// OwnedLists はアカウント削除時のカスケードに必要なリスト操作です。
type OwnedLists interface {
	FindByUserID(ctx context.Context, userID string) ([]listentity.List, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// OwnedTasks はアカウント削除時のカスケードに必要なタスク操作です。
type OwnedTasks interface {
	DeleteByListID(ctx context.Context, listID, userID string) (int64, error)
}

// AuthResult は登録・ログイン成功時の結果です。
type AuthResult struct {
	User  *entity.PublicUser
	Token string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  repository.UserRepository
	lists  OwnedLists
	tasks  OwnedTasks
	hasher PasswordHasher
	tokens TokenGenerator
	locks  *keylock.Locker
	// owners is the per-user lock shared with list creation.
	owners *keylock.Locker
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users repository.UserRepository, lists OwnedLists, tasks OwnedTasks,
	hasher PasswordHasher, tokens TokenGenerator, owners *keylock.Locker) *authUsecase {
	if owners == nil {
		owners = keylock.New()
	}
	return &authUsecase{
		users:  users,
		lists:  lists,
		tasks:  tasks,
		hasher: hasher,
		tokens: tokens,
		locks:  keylock.New(),
		owners: owners,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを発行します。
// メールアドレス単位でロックし、存在確認と作成を不可分に行います。
func (u *authUsecase) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	if !validate.IsValidEmail(email) {
		return nil, apperror.Validation(msgInvalidEmail)
	}
	if !validate.PasswordStrength(password) {
		return nil, apperror.Validation(msgWeakPassword)
	}
	normalized := validate.NormalizeEmail(email)

	unlock := u.locks.Lock(normalized)
	defer unlock()

	_, err := u.users.FindByEmail(ctx, normalized)
	switch {
	case err == nil:
		return nil, apperror.Conflict(msgEmailTaken)
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{Email: normalized, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, apperror.Conflict(msgEmailTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u.issue(user)
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// メール未登録とパスワード不一致は区別せず同じエラーを返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if !validate.IsValidEmail(email) {
		return nil, apperror.Validation(msgInvalidEmail)
	}

	user, err := u.users.FindByEmail(ctx, validate.NormalizeEmail(email))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	// 常にパスワードを検証する
	matched := u.hasher.Verify(password, passwordHash)

	if err != nil || !matched {
		return nil, &apperror.Error{
			Kind:    apperror.KindAuthentication,
			Message: msgInvalidCredentials,
			Err:     domain.ErrInvalidCredentials,
		}
	}

	return u.issue(user)
}

func (u *authUsecase) issue(user *entity.User) (*AuthResult, error) {
	token, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user.Sanitize(), Token: token}, nil
}

// GetUser はIDでユーザーを取得します（パスワードは含みません）。
func (u *authUsecase) GetUser(ctx context.Context, userID string) (*entity.PublicUser, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user.Sanitize(), nil
}

// UpdatePassword は現在のパスワードを再検証したうえでパスワードを変更します。
func (u *authUsecase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*entity.PublicUser, error) {
	user, err := u.authenticate(ctx, userID, currentPassword, msgWrongCurrentPasswd)
	if err != nil {
		return nil, err
	}
	if !validate.PasswordStrength(newPassword) {
		return nil, apperror.Validation(msgWeakNewPassword)
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	updated, err := u.users.Update(ctx, user.ID, entity.UserPatch{Password: &hashed})
	if err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	return updated.Sanitize(), nil
}

// DeleteUser はパスワードを再検証し、所有するタスク・リスト・ユーザーの順に削除します。
func (u *authUsecase) DeleteUser(ctx context.Context, userID, password string) error {
	user, err := u.authenticate(ctx, userID, password, msgWrongDeletePassword)
	if err != nil {
		return err
	}

	// 同じユーザーのリスト作成とカスケード削除を直列化する
	unlock := u.owners.Lock(user.ID)
	defer unlock()

	lists, err := u.lists.FindByUserID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load lists for cascade: %w", err)
	}
	for _, l := range lists {
		if _, err := u.tasks.DeleteByListID(ctx, l.ID, user.ID); err != nil {
			return fmt.Errorf("failed to delete tasks of list %s: %w", l.ID, err)
		}
		if _, err := u.lists.Delete(ctx, l.ID, user.ID); err != nil {
			return fmt.Errorf("failed to delete list %s: %w", l.ID, err)
		}
	}

	deleted, err := u.users.Delete(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return apperror.NotFound("User")
	}
	slog.Info("user account deleted", "user_id", user.ID, "lists_removed", len(lists))
	return nil
}

// authenticate はユーザーを取得し、パスワードが一致しなければ認証エラーを返します。
func (u *authUsecase) authenticate(ctx context.Context, userID, password, mismatchMsg string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperror.Authentication(msgUserNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !u.hasher.Verify(password, user.Password) {
		return nil, apperror.Authentication(mismatchMsg)
	}
	return user, nil
}
