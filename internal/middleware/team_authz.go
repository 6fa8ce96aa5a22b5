package middleware

import (
	"log/slog"

	"teamtrack/internal/authz"
	apperrors "teamtrack/internal/errors"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Keys set by TeamAuthz for the handlers behind it.
const (
	TeamIDKey   = "teamID"
	TeamRoleKey = "teamRole"
)

// TeamAuthz guards routes under /teams/:teamId. Callers outside the team
// (including when the team does not exist) are told they are not members;
// members whose role lacks the capability for action get insufficient
// permissions.
func TeamAuthz(authorizer authz.Authorizer, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetActorID(c)
		if !ok {
			abortUnauthorized(c, "user not authenticated")
			return
		}

		teamID, err := primitive.ObjectIDFromHex(c.Param("teamId"))
		if err != nil {
			response.BadRequest(c, "invalid team id")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		log := slog.With("team_id", teamID.Hex(), "action", action)

		role, err := authorizer.GetUserRole(ctx, userID, teamID)
		if err != nil {
			log.ErrorContext(ctx, "team role lookup failed", "error", err)
			abortInternal(c)
			return
		}
		if role == "" {
			abortForbidden(c, apperrors.ErrNotTeamMember)
			return
		}

		allowed, err := authorizer.CanPerform(ctx, userID, teamID, action)
		if err != nil {
			log.ErrorContext(ctx, "team authorization failed", "error", err)
			abortInternal(c)
			return
		}
		if !allowed {
			abortForbidden(c, apperrors.ErrInsufficientPermissions)
			return
		}

		c.Set(TeamIDKey, teamID)
		c.Set(TeamRoleKey, role)
		c.Next()
	}
}

// TeamMember admits any member of the team regardless of role.
func TeamMember(authorizer authz.Authorizer) gin.HandlerFunc {
	return TeamAuthz(authorizer, authz.ActionTeamView)
}

func abortForbidden(c *gin.Context, err error) {
	response.Forbidden(c, err.Error())
	c.Abort()
}

func abortInternal(c *gin.Context) {
	response.InternalError(c)
	c.Abort()
}

// GetTeamID returns the team resolved by TeamAuthz.
func GetTeamID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(TeamIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// GetTeamRole returns the caller's membership role, or "" outside TeamAuthz.
func GetTeamRole(c *gin.Context) string {
	return c.GetString(TeamRoleKey)
}
