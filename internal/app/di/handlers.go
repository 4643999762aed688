package di

import (
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	listhandler "task_backend/internal/feature/lists/transport/handler"
	listusecase "task_backend/internal/feature/lists/usecase"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/shared/keylock"
)

// Handlers groups the feature HTTP handlers.
type Handlers struct {
	Auth  *authhandler.AuthHandler
	Lists *listhandler.ListHandler
	Tasks *taskhandler.TaskHandler
}

// NewHandlers wires usecases and handlers over repos.
func NewHandlers(repos *Repositories, hasher authusecase.PasswordHasher, tokens authusecase.TokenGenerator) *Handlers {
	// ユーザー単位のロックはアカウント削除とリスト作成で共有する
	owners := keylock.New()
	authUC := authusecase.NewAuthUsecase(repos.Users, repos.Lists, repos.Tasks, hasher, tokens, owners)
	listUC := listusecase.NewListUsecase(repos.Lists, repos.Tasks, owners, repos.Users)
	taskUC := taskusecase.NewTaskUsecase(repos.Tasks, repos.Lists)

	return &Handlers{
		Auth:  authhandler.NewAuthHandler(authUC),
		Lists: listhandler.NewListHandler(listUC),
		Tasks: taskhandler.NewTaskHandler(taskUC),
	}
}
