package dto

import (
	"time"

	"task_backend/internal/feature/lists/domain/entity"
	"task_backend/internal/feature/lists/usecase"
	taskdto "task_backend/internal/feature/tasks/transport/http/dto"
)

// ListRes is the public JSON shape of a list.
type ListRes struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListWithTasksRes is a list with its tasks.
type ListWithTasksRes struct {
	ListRes
	Tasks []taskdto.TaskRes `json:"tasks"`
}

// ListSummaryRes is a list with task counters.
type ListSummaryRes struct {
	ListRes
	TaskCount          int `json:"taskCount"`
	CompletedTaskCount int `json:"completedTaskCount"`
	PendingTaskCount   int `json:"pendingTaskCount"`
}

// ListEnvelope wraps a single list.
type ListEnvelope struct {
	List ListRes `json:"list"`
}

// ListWithTasksEnvelope wraps a list with tasks.
type ListWithTasksEnvelope struct {
	List ListWithTasksRes `json:"list"`
}

// ListsEnvelope wraps every list of the user.
type ListsEnvelope struct {
	Lists []ListWithTasksRes `json:"lists"`
}

// SummaryEnvelope wraps the lists summary.
type SummaryEnvelope struct {
	Lists []ListSummaryRes `json:"lists"`
}

// NewListRes converts a list.
func NewListRes(l *entity.List) ListRes {
	return ListRes{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		UserID:      l.UserID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// NewListWithTasksRes converts a list with its tasks.
func NewListWithTasksRes(lw *usecase.ListWithTasks) ListWithTasksRes {
	return ListWithTasksRes{ListRes: NewListRes(&lw.List), Tasks: taskdto.NewTaskList(lw.Tasks)}
}

// NewListsRes converts a slice, never returning nil.
func NewListsRes(lists []usecase.ListWithTasks) []ListWithTasksRes {
	out := make([]ListWithTasksRes, 0, len(lists))
	for i := range lists {
		out = append(out, NewListWithTasksRes(&lists[i]))
	}
	return out
}

// NewSummaryRes converts the lists summary.
func NewSummaryRes(summary []usecase.ListSummary) []ListSummaryRes {
	out := make([]ListSummaryRes, 0, len(summary))
	for i := range summary {
		s := &summary[i]
		out = append(out, ListSummaryRes{
			ListRes:            NewListRes(&s.List),
			TaskCount:          s.TaskCount,
			CompletedTaskCount: s.CompletedTaskCount,
			PendingTaskCount:   s.PendingTaskCount,
		})
	}
	return out
}
