package authz

import (
	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a relationship between an actor and the resource being mutated.
type Role string

// Actor roles.
const (
	RoleOwner          Role = "owner"
	RoleLeader         Role = "leader"
	RoleMember         Role = "member"
	RoleProjectCreator Role = "project_creator"
	RoleTaskCreator    Role = "task_creator"
	RoleTaskAssignee   Role = "task_assignee"
)

// capabilities maps actions to the roles that can perform them.
var capabilities = map[string][]Role{
	ActionTeamView:     {RoleLeader, RoleMember},
	ActionTeamUpdate:   {RoleLeader},
	ActionTeamDelete:   {RoleOwner},
	ActionMemberInvite: {RoleLeader},
	ActionMemberRemove: {RoleLeader},

	ActionProjectCreate: {RoleLeader, RoleMember},
	ActionProjectView:   {RoleLeader, RoleMember},
	ActionProjectUpdate: {RoleLeader, RoleProjectCreator},
	ActionProjectDelete: {RoleLeader, RoleProjectCreator},

	ActionTaskView:     {RoleLeader, RoleMember},
	ActionTaskCreate:   {RoleLeader, RoleProjectCreator},
	ActionTaskAssign:   {RoleLeader, RoleProjectCreator},
	ActionTaskProgress: {RoleTaskAssignee, RoleTaskCreator, RoleLeader},
	ActionTaskPlan:     {RoleLeader},
	ActionTaskEdit:     {RoleLeader, RoleProjectCreator, RoleTaskCreator},
	ActionTaskDelete:   {RoleLeader, RoleProjectCreator, RoleTaskCreator},
	ActionTaskComment:  {RoleLeader, RoleMember},
}

// Roles is the set of roles an actor holds for one mutation.
type Roles []Role

// Has reports whether r contains role.
func (r Roles) Has(role Role) bool {
	for _, have := range r {
		if have == role {
			return true
		}
	}
	return false
}

// Allowed reports whether any of roles may perform action. Unknown actions
// are denied.
func Allowed(action string, roles Roles) bool {
	for _, role := range capabilities[action] {
		if roles.Has(role) {
			return true
		}
	}
	return false
}

// Require returns nil when roles allow action. An actor with no relationship
// to the resource gets ErrNotTeamMember, otherwise ErrInsufficientPermissions.
func Require(action string, roles Roles) error {
	if Allowed(action, roles) {
		return nil
	}
	if len(roles) == 0 {
		return apperrors.ErrNotTeamMember
	}
	return apperrors.ErrInsufficientPermissions
}

// RolesFor derives the roles actor holds given the team descriptor and,
// optionally, the project and task being acted on.
//
// Creator and assignee roles only count while the actor is still a member
// of the team. When the team no longer exists (team is nil) the project
// creator keeps its role so that orphaned projects can still be cleaned up.
func RolesFor(actor primitive.ObjectID, team *models.TeamDescriptor, project *models.Project, task *models.Task) Roles {
	var roles Roles

	member := false
	if team != nil {
		if team.Team.OwnerID == actor {
			roles = append(roles, RoleOwner)
		}
		if m, ok := team.Membership(actor); ok {
			member = true
			switch m.Role {
			case models.RoleLeader:
				roles = append(roles, RoleLeader)
			case models.RoleMember:
				roles = append(roles, RoleMember)
			}
		}
	}

	if project != nil && project.CreatedBy == actor && (member || team == nil) {
		roles = append(roles, RoleProjectCreator)
	}

	if task != nil && member {
		if task.CreatedBy == actor {
			roles = append(roles, RoleTaskCreator)
		}
		if task.IsAssignedTo(actor) {
			roles = append(roles, RoleTaskAssignee)
		}
	}

	return roles
}

// MembershipRoles maps a stored membership role to the actor role.
func MembershipRoles(membershipRole string) Roles {
	switch membershipRole {
	case models.RoleLeader:
		return Roles{RoleLeader}
	case models.RoleMember:
		return Roles{RoleMember}
	}
	return nil
}

// requiresOwner reports whether the ownership lookup is needed for action.
func requiresOwner(action string) bool {
	for _, role := range capabilities[action] {
		if role == RoleOwner {
			return true
		}
	}
	return false
}
