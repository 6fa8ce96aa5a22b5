package router

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// DependencyCheck reports whether a dependency is reachable.
type DependencyCheck func(ctx context.Context) error

const checkTimeout = 2 * time.Second

// liveness answers as long as the process serves HTTP.
func liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readiness runs every check and answers 503 when any fails, naming the
// failing dependencies.
func readiness(deps map[string]DependencyCheck) gin.HandlerFunc {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		status, code := "ok", http.StatusOK
		checks := make(map[string]string, len(names))
		for _, name := range names {
			if err := deps[name](ctx); err != nil {
				checks[name] = err.Error()
				status, code = "unavailable", http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		c.JSON(code, gin.H{"status": status, "checks": checks})
	}
}
