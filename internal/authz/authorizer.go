// Package authz holds the capability table that decides which actor roles
// may perform which action, plus the membership-backed Authorizer used by
// the Team Service middleware.
package authz

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -destination=mocks/mock_authorizer.go -package=mocks teamtrack/internal/authz Authorizer

// Action constants define the authorization actions.
const (
	ActionTeamView     = "team:view"
	ActionTeamUpdate   = "team:update"
	ActionTeamDelete   = "team:delete"
	ActionMemberInvite = "member:invite"
	ActionMemberRemove = "member:remove"

	ActionProjectCreate = "project:create"
	ActionProjectView   = "project:view"
	ActionProjectUpdate = "project:update"
	ActionProjectDelete = "project:delete"

	ActionTaskView     = "task:view"
	ActionTaskCreate   = "task:create"
	ActionTaskAssign   = "task:assign"
	ActionTaskProgress = "task:progress"
	ActionTaskPlan     = "task:plan"
	ActionTaskEdit     = "task:edit"
	ActionTaskDelete   = "task:delete"
	ActionTaskComment  = "task:comment"
)

// Authorizer defines the interface for team-scoped authorization checks.
type Authorizer interface {
	// CanPerform checks if a user can perform an action on a team.
	CanPerform(ctx context.Context, userID, teamID primitive.ObjectID, action string) (bool, error)

	// GetUserRole returns the user's role in a team, or empty string if not a member.
	GetUserRole(ctx context.Context, userID, teamID primitive.ObjectID) (string, error)

	// IsMember checks if a user is a member of a team.
	IsMember(ctx context.Context, userID, teamID primitive.ObjectID) (bool, error)
}
