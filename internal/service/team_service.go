package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"
	"teamtrack/internal/queue"
	"teamtrack/internal/repository"
	"teamtrack/internal/sideeffect"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamService handles business logic for team operations.
type TeamService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.MembershipRepository
	projects   ProjectCascader
	outbox     queue.Scheduler
	events     *sideeffect.Dispatcher
	log        *slog.Logger
}

// NewTeamService creates a new TeamService.
func NewTeamService(
	teamRepo repository.TeamRepository,
	memberRepo repository.MembershipRepository,
	projects ProjectCascader,
	outbox queue.Scheduler,
	events *sideeffect.Dispatcher,
	log *slog.Logger,
) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		projects:   projects,
		outbox:     outbox,
		events:     events,
		log:        log,
	}
}

// CreateTeam creates a new team and adds the creator as its leader.
func (s *TeamService) CreateTeam(ctx context.Context, userID primitive.ObjectID, req *models.CreateTeamRequest) (*models.Team, error) {
	// Check if name is taken
	_, err := s.teamRepo.FindByName(ctx, req.Name)
	if err == nil {
		return nil, apperrors.ErrTeamNameTaken
	}
	if !errors.Is(err, apperrors.ErrTeamNotFound) {
		return nil, err
	}

	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	// Add creator as leader
	member := &models.Membership{
		TeamID: team.ID,
		UserID: userID,
		Role:   models.RoleLeader,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		// Rollback team creation on failure
		_ = s.teamRepo.Delete(ctx, team.ID)
		return nil, err
	}

	s.events.Activity(ctx, userID, "created team "+team.Name, models.EntityTeam, team.ID, &team.ID)
	return team, nil
}

// ListTeams returns paginated teams for a user.
func (s *TeamService) ListTeams(ctx context.Context, userID primitive.ObjectID, page, limit int) (*models.TeamListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	teams, total, err := s.teamRepo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	return &models.TeamListResponse{
		Items:      teams,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// GetTeam retrieves a team by ID.
func (s *TeamService) GetTeam(ctx context.Context, teamID primitive.ObjectID) (*models.Team, error) {
	return s.teamRepo.FindByID(ctx, teamID)
}

// GetTeamDescriptor returns the team and its current members. Sibling
// services call it before every authorization or assignment decision.
func (s *TeamService) GetTeamDescriptor(ctx context.Context, teamID primitive.ObjectID) (*models.TeamDescriptor, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return &models.TeamDescriptor{Team: *team, Members: members}, nil
}

// UpdateTeam updates a team's information.
func (s *TeamService) UpdateTeam(ctx context.Context, actorID, teamID primitive.ObjectID, req *models.UpdateTeamRequest) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != team.Name {
		// Check if new name is taken by another team
		existing, err := s.teamRepo.FindByName(ctx, *req.Name)
		if err == nil && existing.ID != teamID {
			return nil, apperrors.ErrTeamNameTaken
		}
		if err != nil && !errors.Is(err, apperrors.ErrTeamNotFound) {
			return nil, err
		}
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}

	s.events.Activity(ctx, actorID, "updated team "+team.Name, models.EntityTeam, team.ID, &team.ID)
	return team, nil
}

// DeleteTeam removes the team and its memberships, then schedules deletion
// of the team's projects on the Project Service. The cascade runs after the
// caller has been answered and its failure never fails the delete.
func (s *TeamService) DeleteTeam(ctx context.Context, actorID, teamID primitive.ObjectID) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}

	if _, err := s.memberRepo.DeleteAllByTeamID(ctx, teamID); err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return err
	}

	s.outbox.Schedule(ctx, "cascade-delete-projects", func(ctx context.Context) error {
		result, err := s.projects.DeleteProjectsByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("cascade delete projects of team %s: %w", teamID.Hex(), err)
		}
		s.log.InfoContext(ctx, "team projects deleted", "team_id", teamID.Hex(), "deleted", result.Deleted)
		return nil
	})

	s.events.Activity(ctx, actorID, "deleted team "+team.Name, models.EntityTeam, teamID, &teamID)
	return nil
}
