// Package dto defines the request and response bodies of the tasks API.
package dto

import (
	"bytes"
	"encoding/json"
)

// TaskURI binds the :id path parameter.
type TaskURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// CreateTaskReq is the body of POST /tasks.
type CreateTaskReq struct {
	ListID      string  `json:"listId" binding:"required,uuid"`
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Deadline    *string `json:"deadline"`
}

// UpdateTaskReq is the body of PUT /tasks/:id. At least one field must be present.
type UpdateTaskReq struct {
	Title       *string        `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string        `json:"description" binding:"omitempty,max=1000"`
	Deadline    NullableString `json:"deadline"`
	IsCompleted *bool          `json:"isCompleted"`
}

// Empty reports whether the body carried no field at all.
func (r *UpdateTaskReq) Empty() bool {
	return r.Title == nil && r.Description == nil && !r.Deadline.Set && r.IsCompleted == nil
}

// TaskQuery binds the filters of GET /tasks.
type TaskQuery struct {
	Completed *bool  `form:"completed"`
	ListID    string `form:"listId" binding:"omitempty,uuid"`
	Sort      string `form:"sort" binding:"omitempty,oneof=deadline -deadline"`
}

// NullableString tells an absent JSON field apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only called when the key is present.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
