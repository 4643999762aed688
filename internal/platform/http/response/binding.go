package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"task_backend/internal/shared/apperror"
)

// BindingError converts a gin binding failure into a validation error with
// one FieldError per offending field.
func BindingError(err error) error {
	var (
		verrs     validator.ValidationErrors
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &verrs):
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldError(fe))
		}
		return apperror.Validation("Validation failed", fields...)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		return apperror.Validation("Validation failed", apperror.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be of type %s", field, typeErr.Type.String()),
		})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return apperror.Validation("Invalid JSON format")
	default:
		return apperror.Validation("Validation failed", apperror.FieldError{Message: err.Error()})
	}
}

func fieldError(fe validator.FieldError) apperror.FieldError {
	name := jsonName(fe.Field())
	var msg string
	switch fe.Tag() {
	case "required":
		msg = name + " is required"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters long", name, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s cannot exceed %s characters", name, fe.Param())
	case "email":
		msg = name + " must be a valid email address"
	case "uuid", "uuid4":
		msg = name + " must be a valid UUID"
	case "oneof":
		msg = fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	default:
		msg = name + " is invalid"
	}
	return apperror.FieldError{Field: name, Message: msg}
}

// jsonName turns a Go field name into the camelCase key used on the wire,
// e.g. "ListID" -> "listId", "CurrentPassword" -> "currentPassword".
func jsonName(field string) string {
	if strings.HasSuffix(field, "ID") {
		field = strings.TrimSuffix(field, "ID") + "Id"
	}
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
