package dto

import (
	"time"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

// TaskRes is the public JSON shape of a task.
type TaskRes struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	ListID      string     `json:"listId"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskWithListNameRes adds the owning list's name.
type TaskWithListNameRes struct {
	TaskRes
	ListName string `json:"listName"`
}

// TaskEnvelope wraps a single task.
type TaskEnvelope struct {
	Task TaskRes `json:"task"`
}

// TasksEnvelope wraps a task collection.
type TasksEnvelope struct {
	Tasks []TaskRes `json:"tasks"`
}

// NamedTasksEnvelope wraps tasks annotated with list names.
type NamedTasksEnvelope struct {
	Tasks []TaskWithListNameRes `json:"tasks"`
}

// StatsRes is the body of GET /tasks/stats.
type StatsRes struct {
	TotalTasks       int `json:"totalTasks"`
	CompletedTasks   int `json:"completedTasks"`
	PendingTasks     int `json:"pendingTasks"`
	OverdueTasks     int `json:"overdueTasks"`
	TasksDueThisWeek int `json:"tasksDueThisWeek"`
}

// StatsEnvelope wraps the statistics.
type StatsEnvelope struct {
	Stats StatsRes `json:"stats"`
}

// NewTaskRes converts a task.
func NewTaskRes(t *entity.Task) TaskRes {
	return TaskRes{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		IsCompleted: t.IsCompleted,
		ListID:      t.ListID,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskList converts a slice, never returning nil so it encodes as [].
func NewTaskList(tasks []entity.Task) []TaskRes {
	out := make([]TaskRes, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskRes(&tasks[i]))
	}
	return out
}

// NewNamedTaskList converts tasks annotated with list names.
func NewNamedTaskList(tasks []usecase.TaskWithListName) []TaskWithListNameRes {
	out := make([]TaskWithListNameRes, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskWithListNameRes{TaskRes: NewTaskRes(&tasks[i].Task), ListName: tasks[i].ListName})
	}
	return out
}

// NewStatsRes converts task statistics.
func NewStatsRes(s *usecase.TaskStatistics) StatsRes {
	return StatsRes{
		TotalTasks:       s.TotalTasks,
		CompletedTasks:   s.CompletedTasks,
		PendingTasks:     s.PendingTasks,
		OverdueTasks:     s.OverdueTasks,
		TasksDueThisWeek: s.TasksDueThisWeek,
	}
}
