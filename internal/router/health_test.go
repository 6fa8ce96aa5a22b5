package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadiness(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       map[string]DependencyCheck
		wantStatus int
		wantBody   map[string]interface{}
	}{
		{
			name:       "all dependencies up",
			deps:       map[string]DependencyCheck{"mongodb": up, "redis": up},
			wantStatus: http.StatusOK,
			wantBody: map[string]interface{}{
				"status": "ok",
				"checks": map[string]interface{}{"mongodb": "ok", "redis": "ok"},
			},
		},
		{
			name:       "redis down",
			deps:       map[string]DependencyCheck{"mongodb": up, "redis": down},
			wantStatus: http.StatusServiceUnavailable,
			wantBody: map[string]interface{}{
				"status": "unavailable",
				"checks": map[string]interface{}{"mongodb": "ok", "redis": "connection refused"},
			},
		},
		{
			name:       "no dependencies",
			wantStatus: http.StatusOK,
			wantBody:   map[string]interface{}{"status": "ok", "checks": map[string]interface{}{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/ready", readiness(tt.deps))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestReadiness_ChecksShareDeadline(t *testing.T) {
	var sawDeadline bool
	r := gin.New()
	r.GET("/ready", readiness(map[string]DependencyCheck{
		"mongodb": func(ctx context.Context) error {
			_, sawDeadline = ctx.Deadline()
			return nil
		},
	}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.True(t, sawDeadline)
}
