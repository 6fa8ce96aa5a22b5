// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"teamtrack/pkg/auth"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

// Auth returns a middleware that requires a valid bearer token.
//
// The raw token is also stored on the request context so that calls to
// sibling services forward the caller's own credential.
func Auth(tokens auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		token, ok := auth.BearerToken(header)
		if !ok {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID())
		c.Request = c.Request.WithContext(auth.WithCredential(c.Request.Context(), token))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Unauthorized(c, message)
	c.Abort()
}

// GetUserID returns the authenticated user id, or "" outside Auth.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
