package middleware

import (
	"crypto/subtle"

	"teamtrack/pkg/auth"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// ServiceOnly admits requests that present the shared service token. It
// guards /internal, which end users must not reach even with a valid JWT.
// An empty token rejects everything.
func ServiceOnly(token string) gin.HandlerFunc {
	want := []byte(token)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(auth.ServiceTokenHeader))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			response.Forbidden(c, "service credential required")
			c.Abort()
			return
		}
		c.Next()
	}
}
