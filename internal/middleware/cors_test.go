package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS())

	var reached bool
	handler := func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	}
	router.Any("/tasks/:taskId", handler)

	tests := []struct {
		method      string
		wantStatus  int
		wantReached bool
	}{
		{http.MethodGet, http.StatusOK, true},
		{http.MethodPost, http.StatusOK, true},
		{http.MethodPatch, http.StatusOK, true},
		{http.MethodDelete, http.StatusOK, true},
		{http.MethodOptions, http.StatusNoContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			reached = false
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/tasks/507f1f77bcf86cd799439011", nil)
			req.Header.Set("Origin", "https://app.example.com")

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantReached, reached)

			h := w.Header()
			assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, PUT, PATCH, DELETE, OPTIONS", h.Get("Access-Control-Allow-Methods"))
			assert.Contains(t, h.Get("Access-Control-Allow-Headers"), "Authorization")
			assert.Contains(t, h.Get("Access-Control-Allow-Headers"), RequestIDHeader)
			assert.Equal(t, RequestIDHeader, h.Get("Access-Control-Expose-Headers"))
			assert.Equal(t, "86400", h.Get("Access-Control-Max-Age"))
		})
	}
}
