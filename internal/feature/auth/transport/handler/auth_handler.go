// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/transport/http/dto"
	"task_backend/internal/feature/auth/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/http/response"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、トークンを発行します。
	Register(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	GetUser(ctx context.Context, userID string) (*entity.PublicUser, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*entity.PublicUser, error)
	DeleteUser(ctx context.Context, userID, password string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// エラーは c.Error で登録し、エラーミドルウェアがレスポンスに変換します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - 成功時は201とユーザー・トークンを返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(response.BindingError(err))
		return
	}
	res, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("register failed", "error", err, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	slog.Info("user registered", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	response.Created(c, authRes(res), "User registered successfully")
}

// Login はユーザーログインAPIエンドポイントを処理します。
// メール未登録とパスワード不一致は同じ401になります。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(response.BindingError(err))
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、メールアドレスはログに残さない
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	response.OK(c, authRes(res), "Login successful")
}

// Me は認証済みユーザーの情報を返します。
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.auth.GetUser(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.UserEnvelope{User: dto.NewUserRes(u)}, "User retrieved successfully")
}

// UpdatePassword は現在のパスワードを確認してから変更します。
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(response.BindingError(err))
		return
	}
	u, err := h.auth.UpdatePassword(c.Request.Context(), jwtmw.UserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		_ = c.Error(err)
		return
	}
	slog.Info("password updated", "user_id", u.ID)
	response.OK(c, dto.UserEnvelope{User: dto.NewUserRes(u)}, "Password updated successfully")
}

// DeleteAccount はアカウントと所有データをすべて削除します。
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req dto.DeleteAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(response.BindingError(err))
		return
	}
	if err := h.auth.DeleteUser(c.Request.Context(), jwtmw.UserID(c), req.Password); err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, nil, "Account deleted successfully")
}

func authRes(r *usecase.AuthResult) dto.AuthRes {
	return dto.AuthRes{User: dto.NewUserRes(r.User), Token: r.Token}
}
