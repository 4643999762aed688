package jwtmw

import (
	"strings"

	"github.com/gin-gonic/gin"

	"task_backend/internal/shared/apperror"
)

// Context keys set by AuthRequired.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// TokenVerifier verifies a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*Claims, error)
}

// ExtractBearerToken returns the token from an Authorization header of the
// exact form "Bearer <token>". Anything else reports false and must be
// treated as a missing token.
func ExtractBearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only. Failures are attached
// with c.Error and rendered by the error middleware.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			_ = c.Error(apperror.Authentication("Access token required"))
			c.Abort()
			return
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthRequired.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
