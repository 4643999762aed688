// Package response writes the uniform JSON envelope used by every API endpoint.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OK writes a 200 envelope.
func OK(c *gin.Context, data any, message string) {
	JSON(c, http.StatusOK, data, message)
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data any, message string) {
	JSON(c, http.StatusCreated, data, message)
}

// JSON writes a successful envelope with the given status.
func JSON(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}

// NoRoute answers requests that match no registered route.
func NoRoute(c *gin.Context) {
	Abort(c, http.StatusNotFound, "ENDPOINT_NOT_FOUND",
		"Endpoint "+c.Request.Method+" "+c.Request.URL.Path+" not found")
}
