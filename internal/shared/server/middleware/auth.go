package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/shared/auth"
	"docqa-backend/internal/shared/server/respond"
)

const (
	userIDKey       = "userId"
	userEmailKey    = "userEmail"
	userUsernameKey = "userUsername"
)

// AuthedUser is the resolved identity attached to a request.
type AuthedUser struct {
	ID       string
	Username string
	Email    string
}

// UserResolver looks up the token subject in the user store. The boolean
// reports whether the user exists; errors are reserved for lookup failures.
type UserResolver func(ctx context.Context, userID string) (AuthedUser, bool, error)

// Auth validates bearer tokens, resolves the subject to a stored user, and
// attaches the identity to the request context. Requests with a missing,
// malformed, or expired token, or an unknown subject, are rejected.
func Auth(resolve UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		user := AuthedUser{ID: claims.Subject, Username: claims.Username, Email: claims.Email}
		if resolve != nil {
			resolved, found, err := resolve(c.Request.Context(), claims.Subject)
			if err != nil {
				respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to resolve user", nil)
				return
			}
			if !found {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "unknown user", nil)
				return
			}
			user = resolved
		}

		c.Set(userIDKey, user.ID)
		if user.Email != "" {
			c.Set(userEmailKey, user.Email)
		}
		if user.Username != "" {
			c.Set(userUsernameKey, user.Username)
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// UsernameFromContext fetches the username set by the auth middleware.
func UsernameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userUsernameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}
