// Package handler contains the HTTP handlers of the three services.
package handler

import (
	"errors"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/middleware"
	"teamtrack/internal/validator"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError maps a service error to the response envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTeamNotFound),
		errors.Is(err, apperrors.ErrProjectNotFound),
		errors.Is(err, apperrors.ErrTaskNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, apperrors.ErrNotTeamMember),
		errors.Is(err, apperrors.ErrInsufficientPermissions),
		errors.Is(err, apperrors.ErrCommentNotAllowed),
		errors.Is(err, apperrors.ErrLeaderCannotLeave),
		errors.Is(err, apperrors.ErrCannotRemoveLeader),
		errors.Is(err, apperrors.ErrCannotRemoveSelf):
		response.Forbidden(c, err.Error())

	case errors.Is(err, apperrors.ErrTeamNameTaken),
		errors.Is(err, apperrors.ErrTaskNameTaken),
		errors.Is(err, apperrors.ErrAlreadyMember),
		errors.Is(err, apperrors.ErrAssigneeChanged),
		errors.Is(err, apperrors.ErrTeamStillExists),
		errors.Is(err, apperrors.ErrProjectStillExists),
		errors.Is(err, apperrors.ErrStillTeamMember):
		response.Conflict(c, err.Error())

	case errors.Is(err, apperrors.ErrAssigneeNotMember),
		errors.Is(err, apperrors.ErrDateOutOfRange),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInvalidProgress):
		response.UnprocessableEntity(c, err.Error())

	case errors.Is(err, apperrors.ErrNothingToUpdate),
		errors.Is(err, apperrors.ErrInvalidAssigneeID),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrInvalidPriority):
		response.BadRequest(c, err.Error())

	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidToken):
		response.Unauthorized(c, err.Error())

	case errors.Is(err, apperrors.ErrDownstreamUnavailable),
		errors.Is(err, apperrors.ErrRepairIncomplete):
		response.ServiceUnavailable(c, apperrors.ErrDownstreamUnavailable.Error())

	default:
		response.InternalError(c)
	}
}

// bindJSON decodes and validates the request body into dst, writing a 400
// on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, validator.Describe(err))
		return false
	}
	return true
}

// actorID returns the authenticated user, writing a 401 when absent.
func actorID(c *gin.Context) (primitive.ObjectID, bool) {
	if middleware.GetUserID(c) == "" {
		response.Unauthorized(c, "user not authenticated")
		return primitive.NilObjectID, false
	}
	id, ok := middleware.GetActorID(c)
	if !ok {
		response.Unauthorized(c, "invalid user id format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathID parses an ObjectID path parameter, writing a 400 when malformed.
func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name+" format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// contextTeamID returns the team resolved by the TeamAuthz middleware.
func contextTeamID(c *gin.Context) (primitive.ObjectID, bool) {
	id, exists := middleware.GetTeamID(c)
	if !exists {
		response.BadRequest(c, "team id not found in context")
		return primitive.NilObjectID, false
	}
	return id, true
}
