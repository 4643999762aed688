package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/http/response"
	"task_backend/internal/shared/apperror"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const (
	userID = "user-1"
	taskID = "22222222-2222-2222-2222-222222222222"
	listID = "33333333-3333-3333-3333-333333333333"
)

// mockTaskUsecase is a mock implementation of TaskUsecase. Unset funcs
// return a canned task or empty result.
type mockTaskUsecase struct {
	CreateTaskFunc    func(ctx context.Context, userID, listID, title string, description, deadline *string) (*entity.Task, error)
	GetUserTasksFunc  func(ctx context.Context, userID string, f usecase.TaskFilter) ([]entity.Task, error)
	UpdateTaskFunc    func(ctx context.Context, userID, taskID string, upd usecase.TaskUpdate) (*entity.Task, error)
	DeleteTaskFunc    func(ctx context.Context, userID, taskID string) error
	GetTaskByIDFunc   func(ctx context.Context, userID, taskID string) (*entity.Task, error)
	DueThisWeekResult []usecase.TaskWithListName
}

var sampleTask = &entity.Task{
	ID: taskID, Title: "Write", ListID: listID, UserID: userID,
	CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
}

func (m *mockTaskUsecase) CreateTask(ctx context.Context, userID, listID, title string, description, deadline *string) (*entity.Task, error) {
	return m.CreateTaskFunc(ctx, userID, listID, title, description, deadline)
}

func (m *mockTaskUsecase) GetTaskByID(ctx context.Context, userID, taskID string) (*entity.Task, error) {
	if m.GetTaskByIDFunc != nil {
		return m.GetTaskByIDFunc(ctx, userID, taskID)
	}
	return sampleTask, nil
}

func (m *mockTaskUsecase) GetUserTasks(ctx context.Context, userID string, f usecase.TaskFilter) ([]entity.Task, error) {
	if m.GetUserTasksFunc != nil {
		return m.GetUserTasksFunc(ctx, userID, f)
	}
	return nil, nil
}

func (m *mockTaskUsecase) UpdateTask(ctx context.Context, userID, taskID string, upd usecase.TaskUpdate) (*entity.Task, error) {
	return m.UpdateTaskFunc(ctx, userID, taskID, upd)
}

func (m *mockTaskUsecase) ToggleTaskCompletion(context.Context, string, string) (*entity.Task, error) {
	toggled := *sampleTask
	toggled.IsCompleted = true
	return &toggled, nil
}

func (m *mockTaskUsecase) DeleteTask(ctx context.Context, userID, taskID string) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, userID, taskID)
	}
	return nil
}

func (m *mockTaskUsecase) GetTasksDueThisWeek(context.Context, string) ([]usecase.TaskWithListName, error) {
	return m.DueThisWeekResult, nil
}

func (m *mockTaskUsecase) GetOverdueTasks(context.Context, string) ([]usecase.TaskWithListName, error) {
	return nil, nil
}

func (m *mockTaskUsecase) GetTaskStatistics(context.Context, string) (*usecase.TaskStatistics, error) {
	return &usecase.TaskStatistics{TotalTasks: 3, CompletedTasks: 1, PendingTasks: 2}, nil
}

func newRouter(uc TaskUsecase) *gin.Engine {
	h := NewTaskHandler(uc)
	r := gin.New()
	r.Use(response.ErrorHandler(false), func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	})
	g := r.Group("/tasks")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/stats", h.Stats)
	g.GET("/overdue", h.Overdue)
	g.GET("/due-this-week", h.DueThisWeek)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id/complete", h.Toggle)
	g.DELETE("/:id", h.Delete)
	return r
}

func do(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func errorOf(body map[string]any) map[string]any {
	e, _ := body["error"].(map[string]any)
	return e
}

func TestTaskHandler_Create(t *testing.T) {
	var gotDeadline *string
	uc := &mockTaskUsecase{
		CreateTaskFunc: func(_ context.Context, uid, lid, title string, _ *string, deadline *string) (*entity.Task, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, listID, lid)
			gotDeadline = deadline
			if title == "missing list" {
				return nil, apperror.NotFound("List")
			}
			return sampleTask, nil
		},
	}
	r := newRouter(uc)

	w, body := do(r, http.MethodPost, "/tasks", `{"listId":"`+listID+`","title":"Write","deadline":"2026-03-12"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, gotDeadline)
	assert.Equal(t, "2026-03-12", *gotDeadline)
	task := body["data"].(map[string]any)["task"].(map[string]any)
	assert.Equal(t, taskID, task["id"])
	assert.Equal(t, false, task["isCompleted"])
	assert.NotContains(t, task, "deadline", "absent deadline is omitted")

	w, body = do(r, http.MethodPost, "/tasks", `{"listId":"not-a-uuid","title":"Write"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	details := errorOf(body)["details"].([]any)
	assert.Equal(t, "listId", details[0].(map[string]any)["field"])

	w, body = do(r, http.MethodPost, "/tasks", `{"listId":"`+listID+`","title":"missing list"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "List not found", errorOf(body)["message"])
}

func TestTaskHandler_List_Filters(t *testing.T) {
	var got usecase.TaskFilter
	uc := &mockTaskUsecase{
		GetUserTasksFunc: func(_ context.Context, _ string, f usecase.TaskFilter) ([]entity.Task, error) {
			got = f
			return nil, nil
		},
	}
	r := newRouter(uc)

	w, body := do(r, http.MethodGet, "/tasks?completed=true&listId="+listID+"&sort=-deadline", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Completed)
	assert.True(t, *got.Completed)
	assert.Equal(t, listID, got.ListID)
	assert.Equal(t, "-deadline", got.Sort)
	assert.Equal(t, []any{}, body["data"].(map[string]any)["tasks"], "empty result encodes as []")

	w, _ = do(r, http.MethodGet, "/tasks?sort=title", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, upd usecase.TaskUpdate)
	}{
		{
			name:       "null deadline clears",
			body:       `{"deadline":null}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, upd usecase.TaskUpdate) {
				assert.True(t, upd.Deadline.Set)
				assert.Nil(t, upd.Deadline.Value)
			},
		},
		{
			name:       "absent deadline is untouched",
			body:       `{"isCompleted":true}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, upd usecase.TaskUpdate) {
				assert.False(t, upd.Deadline.Set)
				require.NotNil(t, upd.IsCompleted)
				assert.True(t, *upd.IsCompleted)
			},
		},
		{
			name:       "new deadline",
			body:       `{"deadline":"2026-04-01T10:00:00Z","title":"t"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, upd usecase.TaskUpdate) {
				require.NotNil(t, upd.Deadline.Value)
				assert.Equal(t, "2026-04-01T10:00:00Z", *upd.Deadline.Value)
				assert.Equal(t, "t", *upd.Title)
			},
		},
		{name: "empty body", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "deadline of wrong type", body: `{"deadline":5}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			uc := &mockTaskUsecase{
				UpdateTaskFunc: func(_ context.Context, _, id string, upd usecase.TaskUpdate) (*entity.Task, error) {
					called = true
					assert.Equal(t, taskID, id)
					tt.check(t, upd)
					return sampleTask, nil
				},
			}

			w, _ := do(newRouter(uc), http.MethodPut, "/tasks/"+taskID, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.check != nil, called)
		})
	}
}

func TestTaskHandler_IDValidation(t *testing.T) {
	r := newRouter(&mockTaskUsecase{})

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/tasks/abc"},
		{http.MethodPut, "/tasks/abc"},
		{http.MethodPatch, "/tasks/abc/complete"},
		{http.MethodDelete, "/tasks/abc"},
	} {
		w, body := do(r, req.method, req.path, `{"title":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, req.path)
		assert.Equal(t, "VALIDATION_ERROR", errorOf(body)["code"])
	}
}

func TestTaskHandler_SimpleRoutes(t *testing.T) {
	uc := &mockTaskUsecase{
		DueThisWeekResult: []usecase.TaskWithListName{{Task: *sampleTask, ListName: "Unknown List"}},
		DeleteTaskFunc: func(context.Context, string, string) error {
			return apperror.NotFound("Task")
		},
	}
	r := newRouter(uc)

	w, body := do(r, http.MethodGet, "/tasks/due-this-week", "")
	require.Equal(t, http.StatusOK, w.Code)
	tasks := body["data"].(map[string]any)["tasks"].([]any)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Unknown List", tasks[0].(map[string]any)["listName"])

	w, body = do(r, http.MethodGet, "/tasks/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := body["data"].(map[string]any)["stats"].(map[string]any)
	assert.Equal(t, float64(3), stats["totalTasks"])
	assert.Equal(t, float64(2), stats["pendingTasks"])

	w, body = do(r, http.MethodPatch, "/tasks/"+taskID+"/complete", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["data"].(map[string]any)["task"].(map[string]any)["isCompleted"])

	w, _ = do(r, http.MethodGet, "/tasks/"+taskID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = do(r, http.MethodDelete, "/tasks/"+taskID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND_ERROR", errorOf(body)["code"])
}
