package service

import (
	"context"
	"errors"

	"teamtrack/internal/authz"
	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loadTeam fetches the current team descriptor from the Team Service.
// With orphanOK a deleted team yields a nil descriptor instead of an error,
// which leaves only creator roles to authorize cleanup of orphaned data.
func loadTeam(ctx context.Context, teams TeamDirectory, teamID primitive.ObjectID, orphanOK bool) (*models.TeamDescriptor, error) {
	desc, err := teams.GetTeam(ctx, teamID)
	if err != nil {
		if orphanOK && errors.Is(err, apperrors.ErrTeamNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return desc, nil
}

// authorize evaluates action for actor against the capability table.
func authorize(actor primitive.ObjectID, action string, team *models.TeamDescriptor, project *models.Project, task *models.Task) error {
	return authz.Require(action, authz.RolesFor(actor, team, project, task))
}

// requireTeamGone succeeds only when the Team Service no longer knows
// teamID. Lookup failures other than not-found are returned as-is so the
// caller's job is retried.
func requireTeamGone(ctx context.Context, teams TeamDirectory, teamID primitive.ObjectID) error {
	_, err := teams.GetTeam(ctx, teamID)
	switch {
	case err == nil:
		return apperrors.ErrTeamStillExists
	case errors.Is(err, apperrors.ErrTeamNotFound):
		return nil
	default:
		return err
	}
}

// requireProjectGone succeeds only when the Project Service no longer knows
// projectID.
func requireProjectGone(ctx context.Context, projects ProjectDirectory, projectID primitive.ObjectID) error {
	_, err := projects.GetProject(ctx, projectID)
	switch {
	case err == nil:
		return apperrors.ErrProjectStillExists
	case errors.Is(err, apperrors.ErrProjectNotFound):
		return nil
	default:
		return err
	}
}

// requireFormerMember succeeds when userID no longer belongs to teamID,
// including when the team itself is gone.
func requireFormerMember(ctx context.Context, teams TeamDirectory, teamID, userID primitive.ObjectID) error {
	desc, err := teams.GetTeam(ctx, teamID)
	switch {
	case errors.Is(err, apperrors.ErrTeamNotFound):
		return nil
	case err != nil:
		return err
	case desc.HasMember(userID):
		return apperrors.ErrStillTeamMember
	default:
		return nil
	}
}
