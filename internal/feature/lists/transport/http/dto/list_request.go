// Package dto defines the request and response bodies of the lists API.
package dto

// ListURI binds the :id path parameter.
type ListURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// CreateListReq is the body of POST /lists.
type CreateListReq struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// UpdateListReq is the body of PUT /lists/:id. At least one field must be present.
type UpdateListReq struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// Empty reports whether the body carried no field at all.
func (r *UpdateListReq) Empty() bool {
	return r.Name == nil && r.Description == nil
}
