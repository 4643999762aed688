// Package handler provides the HTTP handlers of the lists feature.
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/lists/domain/entity"
	"task_backend/internal/feature/lists/transport/http/dto"
	"task_backend/internal/feature/lists/usecase"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
	taskdto "task_backend/internal/feature/tasks/transport/http/dto"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/http/response"
	"task_backend/internal/shared/apperror"
)

// ListUsecase is the list logic the handlers call.
type ListUsecase interface {
	CreateList(ctx context.Context, userID, name string, description *string) (*entity.List, error)
	GetUserLists(ctx context.Context, userID string) ([]usecase.ListWithTasks, error)
	GetListWithTasks(ctx context.Context, userID, listID string) (*usecase.ListWithTasks, error)
	GetTasksByList(ctx context.Context, userID, listID string) ([]taskentity.Task, error)
	UpdateList(ctx context.Context, userID, listID string, upd usecase.ListUpdate) (*entity.List, error)
	DeleteList(ctx context.Context, userID, listID string) error
	GetListsSummary(ctx context.Context, userID string) ([]usecase.ListSummary, error)
}

// ListHandler serves /lists.
type ListHandler struct {
	lists ListUsecase
}

// NewListHandler returns a ListHandler.
func NewListHandler(lists ListUsecase) *ListHandler {
	return &ListHandler{lists: lists}
}

// List handles GET /lists. Every list carries its tasks.
func (h *ListHandler) List(c *gin.Context) {
	lists, err := h.lists.GetUserLists(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.ListsEnvelope{Lists: dto.NewListsRes(lists)}, "Lists retrieved successfully")
}

// Create handles POST /lists.
func (h *ListHandler) Create(c *gin.Context) {
	var req dto.CreateListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(response.BindingError(err))
		return
	}
	l, err := h.lists.CreateList(c.Request.Context(), jwtmw.UserID(c), req.Name, req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, dto.ListEnvelope{List: dto.NewListRes(l)}, "List created successfully")
}

// Summary handles GET /lists/summary.
func (h *ListHandler) Summary(c *gin.Context) {
	summary, err := h.lists.GetListsSummary(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.SummaryEnvelope{Lists: dto.NewSummaryRes(summary)}, "Lists summary retrieved successfully")
}

// Get handles GET /lists/:id.
func (h *ListHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	lw, err := h.lists.GetListWithTasks(c.Request.Context(), jwtmw.UserID(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.ListWithTasksEnvelope{List: dto.NewListWithTasksRes(lw)}, "List retrieved successfully")
}

// Tasks handles GET /lists/:id/tasks.
func (h *ListHandler) Tasks(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	tasks, err := h.lists.GetTasksByList(c.Request.Context(), jwtmw.UserID(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, taskdto.TasksEnvelope{Tasks: taskdto.NewTaskList(tasks)}, "Tasks retrieved successfully")
}

// Update handles PUT /lists/:id.
func (h *ListHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.UpdateListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(response.BindingError(err))
		return
	}
	if req.Empty() {
		_ = c.Error(apperror.Validation("At least one field must be provided"))
		return
	}
	l, err := h.lists.UpdateList(c.Request.Context(), jwtmw.UserID(c), id, usecase.ListUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.ListEnvelope{List: dto.NewListRes(l)}, "List updated successfully")
}

// Delete handles DELETE /lists/:id and removes the list's tasks too.
func (h *ListHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.lists.DeleteList(c.Request.Context(), jwtmw.UserID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, nil, "List deleted successfully")
}

func bindID(c *gin.Context) (string, bool) {
	var uri dto.ListURI
	if err := c.ShouldBindUri(&uri); err != nil {
		_ = c.Error(response.BindingError(err))
		return "", false
	}
	return uri.ID, true
}
