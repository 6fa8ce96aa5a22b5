package authz

import (
	"context"
	"errors"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipFinder is the interface required by LocalAuthorizer to look up team membership.
type MembershipFinder interface {
	FindByTeamAndUser(ctx context.Context, teamID, userID primitive.ObjectID) (*models.Membership, error)
}

// TeamFinder looks up a team to resolve ownership.
type TeamFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
}

// LocalAuthorizer implements Authorizer using the Team Service's own store.
type LocalAuthorizer struct {
	memberFinder MembershipFinder
	teamFinder   TeamFinder
}

// NewLocalAuthorizer creates a new LocalAuthorizer.
func NewLocalAuthorizer(memberFinder MembershipFinder, teamFinder TeamFinder) *LocalAuthorizer {
	return &LocalAuthorizer{
		memberFinder: memberFinder,
		teamFinder:   teamFinder,
	}
}

// CanPerform checks if a user can perform an action on a team.
func (a *LocalAuthorizer) CanPerform(ctx context.Context, userID, teamID primitive.ObjectID, action string) (bool, error) {
	var roles Roles

	member, err := a.memberFinder.FindByTeamAndUser(ctx, teamID, userID)
	switch {
	case err == nil:
		roles = append(roles, MembershipRoles(member.Role)...)
	case errors.Is(err, apperrors.ErrNotTeamMember):
	default:
		return false, err
	}

	if requiresOwner(action) {
		team, err := a.teamFinder.FindByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, apperrors.ErrTeamNotFound) {
				return false, nil
			}
			return false, err
		}
		if team.OwnerID == userID {
			roles = append(roles, RoleOwner)
		}
	}

	return Allowed(action, roles), nil
}

// GetUserRole returns the user's role in a team, or empty string if not a member.
func (a *LocalAuthorizer) GetUserRole(ctx context.Context, userID, teamID primitive.ObjectID) (string, error) {
	member, err := a.memberFinder.FindByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotTeamMember) {
			return "", nil
		}
		return "", err
	}
	return member.Role, nil
}

// IsMember checks if a user is a member of a team.
func (a *LocalAuthorizer) IsMember(ctx context.Context, userID, teamID primitive.ObjectID) (bool, error) {
	member, err := a.memberFinder.FindByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotTeamMember) {
			return false, nil
		}
		return false, err
	}
	return member != nil, nil
}

var _ Authorizer = (*LocalAuthorizer)(nil)
