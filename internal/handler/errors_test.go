package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "teamtrack/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.ErrTeamNotFound, http.StatusNotFound},
		{apperrors.ErrProjectNotFound, http.StatusNotFound},
		{apperrors.ErrTaskNotFound, http.StatusNotFound},
		{apperrors.ErrUserNotFound, http.StatusNotFound},
		{apperrors.ErrNotificationNotFound, http.StatusNotFound},
		{apperrors.ErrNotTeamMember, http.StatusForbidden},
		{apperrors.ErrInsufficientPermissions, http.StatusForbidden},
		{apperrors.ErrCommentNotAllowed, http.StatusForbidden},
		{apperrors.ErrLeaderCannotLeave, http.StatusForbidden},
		{apperrors.ErrCannotRemoveLeader, http.StatusForbidden},
		{apperrors.ErrCannotRemoveSelf, http.StatusForbidden},
		{apperrors.ErrTeamNameTaken, http.StatusConflict},
		{apperrors.ErrTaskNameTaken, http.StatusConflict},
		{apperrors.ErrAlreadyMember, http.StatusConflict},
		{apperrors.ErrAssigneeChanged, http.StatusConflict},
		{apperrors.ErrTeamStillExists, http.StatusConflict},
		{apperrors.ErrProjectStillExists, http.StatusConflict},
		{apperrors.ErrStillTeamMember, http.StatusConflict},
		{apperrors.ErrAssigneeNotMember, http.StatusUnprocessableEntity},
		{apperrors.ErrDateOutOfRange, http.StatusUnprocessableEntity},
		{apperrors.ErrInvalidDateRange, http.StatusUnprocessableEntity},
		{apperrors.ErrInvalidProgress, http.StatusUnprocessableEntity},
		{apperrors.ErrNothingToUpdate, http.StatusBadRequest},
		{apperrors.ErrInvalidAssigneeID, http.StatusBadRequest},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrDownstreamUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("unassign in team t1: %w", apperrors.ErrRepairIncomplete), http.StatusServiceUnavailable},
		{fmt.Errorf("team-service GET /internal/teams/x: %w", apperrors.ErrDownstreamUnavailable), http.StatusServiceUnavailable},
		{errors.New("database error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("mongo: connection refused on 10.0.0.3"))

	assert.NotContains(t, w.Body.String(), "10.0.0.3")
	assert.Contains(t, w.Body.String(), "internal server error")
}
