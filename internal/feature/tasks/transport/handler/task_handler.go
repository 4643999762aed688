// Package handler provides the HTTP handlers of the tasks feature.
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/http/response"
	"task_backend/internal/shared/apperror"
)

// TaskUsecase is the task logic the handlers call.
type TaskUsecase interface {
	CreateTask(ctx context.Context, userID, listID, title string, description, deadline *string) (*entity.Task, error)
	GetTaskByID(ctx context.Context, userID, taskID string) (*entity.Task, error)
	GetUserTasks(ctx context.Context, userID string, f usecase.TaskFilter) ([]entity.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, upd usecase.TaskUpdate) (*entity.Task, error)
	ToggleTaskCompletion(ctx context.Context, userID, taskID string) (*entity.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	GetTasksDueThisWeek(ctx context.Context, userID string) ([]usecase.TaskWithListName, error)
	GetOverdueTasks(ctx context.Context, userID string) ([]usecase.TaskWithListName, error)
	GetTaskStatistics(ctx context.Context, userID string) (*usecase.TaskStatistics, error)
}

// TaskHandler serves /tasks.
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler returns a TaskHandler.
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List handles GET /tasks with optional completed, listId and sort filters.
func (h *TaskHandler) List(c *gin.Context) {
	var q dto.TaskQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(response.BindingError(err))
		return
	}
	tasks, err := h.tasks.GetUserTasks(c.Request.Context(), jwtmw.UserID(c), usecase.TaskFilter{
		Completed: q.Completed,
		ListID:    q.ListID,
		Sort:      q.Sort,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.TasksEnvelope{Tasks: dto.NewTaskList(tasks)}, "Tasks retrieved successfully")
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(response.BindingError(err))
		return
	}
	t, err := h.tasks.CreateTask(c.Request.Context(), jwtmw.UserID(c), req.ListID, req.Title, req.Description, req.Deadline)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, dto.TaskEnvelope{Task: dto.NewTaskRes(t)}, "Task created successfully")
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	t, err := h.tasks.GetTaskByID(c.Request.Context(), jwtmw.UserID(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.TaskEnvelope{Task: dto.NewTaskRes(t)}, "Task retrieved successfully")
}

// Update handles PUT /tasks/:id. A JSON null deadline clears it.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(response.BindingError(err))
		return
	}
	if req.Empty() {
		_ = c.Error(apperror.Validation("At least one field must be provided"))
		return
	}
	t, err := h.tasks.UpdateTask(c.Request.Context(), jwtmw.UserID(c), id, usecase.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    usecase.DeadlineUpdate{Set: req.Deadline.Set, Value: req.Deadline.Value},
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.TaskEnvelope{Task: dto.NewTaskRes(t)}, "Task updated successfully")
}

// Toggle handles PATCH /tasks/:id/complete.
func (h *TaskHandler) Toggle(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	t, err := h.tasks.ToggleTaskCompletion(c.Request.Context(), jwtmw.UserID(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.TaskEnvelope{Task: dto.NewTaskRes(t)}, "Task completion toggled")
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.tasks.DeleteTask(c.Request.Context(), jwtmw.UserID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, nil, "Task deleted successfully")
}

// DueThisWeek handles GET /tasks/due-this-week.
func (h *TaskHandler) DueThisWeek(c *gin.Context) {
	tasks, err := h.tasks.GetTasksDueThisWeek(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.NamedTasksEnvelope{Tasks: dto.NewNamedTaskList(tasks)}, "Tasks due this week retrieved successfully")
}

// Overdue handles GET /tasks/overdue.
func (h *TaskHandler) Overdue(c *gin.Context) {
	tasks, err := h.tasks.GetOverdueTasks(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.NamedTasksEnvelope{Tasks: dto.NewNamedTaskList(tasks)}, "Overdue tasks retrieved successfully")
}

// Stats handles GET /tasks/stats.
func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.tasks.GetTaskStatistics(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, dto.StatsEnvelope{Stats: dto.NewStatsRes(stats)}, "Task statistics retrieved successfully")
}

func bindID(c *gin.Context) (string, bool) {
	var uri dto.TaskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		_ = c.Error(response.BindingError(err))
		return "", false
	}
	return uri.ID, true
}
