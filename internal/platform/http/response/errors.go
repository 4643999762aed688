package response

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"task_backend/internal/shared/apperror"
)

const internalMessage = "An unexpected error occurred"

// ErrorHandler serializes the last error attached with c.Error into the envelope.
// When development is false, details are stripped from everything except
// validation errors, and unexpected errors are reported with a generic message.
func ErrorHandler(development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := toBody(err, development)

		if status >= 500 {
			slog.Error("request failed", "error", err, "method", c.Request.Method,
				"path", c.Request.URL.Path, "remote_addr", c.ClientIP())
		}

		c.AbortWithStatusJSON(status, Envelope{Success: false, Error: body})
	}
}

func toBody(err error, development bool) (int, *ErrorBody) {
	kind := apperror.KindOf(err)
	body := &ErrorBody{Code: kind.Code()}

	if kind == apperror.KindInternal {
		body.Message = internalMessage
		if development {
			body.Message = err.Error()
		}
		return kind.Status(), body
	}

	appErr := asAppError(err)
	body.Message = appErr.Message
	if development || kind == apperror.KindValidation {
		body.Details = appErr.Details
	}
	return kind.Status(), body
}

func asAppError(err error) *apperror.Error {
	var e *apperror.Error
	if errors.As(err, &e) {
		return e
	}
	return &apperror.Error{Kind: apperror.KindInternal, Message: internalMessage}
}
