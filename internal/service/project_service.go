package service

import (
	"context"
	"fmt"
	"log/slog"

	"teamtrack/internal/authz"
	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/metrics"
	"teamtrack/internal/models"
	"teamtrack/internal/queue"
	"teamtrack/internal/repository"
	"teamtrack/internal/sideeffect"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectService handles business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	teams       TeamDirectory
	tasks       TaskCascader
	outbox      queue.Scheduler
	events      *sideeffect.Dispatcher
	log         *slog.Logger
	metrics     *metrics.Metrics
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	teams TeamDirectory,
	tasks TaskCascader,
	outbox queue.Scheduler,
	events *sideeffect.Dispatcher,
	log *slog.Logger,
	m *metrics.Metrics,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		teams:       teams,
		tasks:       tasks,
		outbox:      outbox,
		events:      events,
		log:         log,
		metrics:     m,
	}
}

// CreateProject creates a project in a team the actor belongs to.
func (s *ProjectService) CreateProject(ctx context.Context, actorID primitive.ObjectID, req *models.CreateProjectRequest) (*models.Project, error) {
	teamID, err := primitive.ObjectIDFromHex(req.TeamID)
	if err != nil {
		return nil, apperrors.ErrTeamNotFound
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	team, err := loadTeam(ctx, s.teams, teamID, false)
	if err != nil {
		return nil, err
	}
	if err := authorize(actorID, authz.ActionProjectCreate, team, nil, nil); err != nil {
		return nil, err
	}

	project := &models.Project{
		TeamID:      teamID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   actorID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.events.Activity(ctx, actorID, "created project "+project.Name, models.EntityProject, project.ID, &teamID)
	return project, nil
}

// ListProjects returns the projects of a team.
func (s *ProjectService) ListProjects(ctx context.Context, actorID, teamID primitive.ObjectID) (*models.ProjectListResponse, error) {
	team, err := loadTeam(ctx, s.teams, teamID, false)
	if err != nil {
		return nil, err
	}
	if err := authorize(actorID, authz.ActionProjectView, team, nil, nil); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return &models.ProjectListResponse{Items: projects}, nil
}

// GetProject returns a project visible to the actor.
func (s *ProjectService) GetProject(ctx context.Context, actorID, projectID primitive.ObjectID) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	team, err := loadTeam(ctx, s.teams, project.TeamID, false)
	if err != nil {
		return nil, err
	}
	if err := authorize(actorID, authz.ActionProjectView, team, project, nil); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateProject updates a project's editable fields.
func (s *ProjectService) UpdateProject(ctx context.Context, actorID, projectID primitive.ObjectID, req *models.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	team, err := loadTeam(ctx, s.teams, project.TeamID, false)
	if err != nil {
		return nil, err
	}
	if err := authorize(actorID, authz.ActionProjectUpdate, team, project, nil); err != nil {
		return nil, err
	}

	if req.Name == nil && req.Description == nil && req.StartDate == nil && req.EndDate == nil {
		return nil, apperrors.ErrNothingToUpdate
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = *req.EndDate
	}
	if project.EndDate.Before(project.StartDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.events.Activity(ctx, actorID, "updated project "+project.Name, models.EntityProject, project.ID, &project.TeamID)
	return project, nil
}

// DeleteProject deletes the project row, then schedules deletion of its
// tasks on the Task Service. The creator of a project whose team is gone
// may still delete it.
func (s *ProjectService) DeleteProject(ctx context.Context, actorID, projectID primitive.ObjectID) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	team, err := loadTeam(ctx, s.teams, project.TeamID, true)
	if err != nil {
		return err
	}
	if err := authorize(actorID, authz.ActionProjectDelete, team, project, nil); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	s.scheduleTaskCascade(ctx, projectID)
	s.events.Activity(ctx, actorID, "deleted project "+project.Name, models.EntityProject, projectID, &project.TeamID)
	return nil
}

// GetProjectDescriptor returns a project without an authorization check.
// Sibling services use it and authorize on their own.
func (s *ProjectService) GetProjectDescriptor(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
	return s.projectRepo.FindByID(ctx, projectID)
}

// SetProgress stores a progress value pushed by the Task Service.
func (s *ProjectService) SetProgress(ctx context.Context, projectID primitive.ObjectID, req *models.SetProgressRequest) (*models.ProgressResult, error) {
	if req.Progress == nil || *req.Progress < 0 || *req.Progress > 100 {
		return nil, apperrors.ErrInvalidProgress
	}
	result, err := s.projectRepo.SetProgress(ctx, projectID, *req.Progress, req.Version)
	if err != nil {
		return nil, err
	}
	if !result.Applied() {
		s.log.DebugContext(ctx, "stale progress write ignored",
			"project_id", projectID.Hex(),
			"version", req.Version,
			"stored_version", result.Version,
		)
	}
	return result, nil
}

// ProjectIDsByTeam lists the ids of a team's projects.
func (s *ProjectService) ProjectIDsByTeam(ctx context.Context, teamID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.projectRepo.FindIDsByTeamID(ctx, teamID)
}

// CascadeDeleteByTeam deletes every project of a deleted team and schedules
// the deletion of their tasks. Repeating it returns a zero count. It refuses
// to run while the Team Service still reports the team.
func (s *ProjectService) CascadeDeleteByTeam(ctx context.Context, teamID primitive.ObjectID) (*models.CascadeResult, error) {
	if err := requireTeamGone(ctx, s.teams, teamID); err != nil {
		return nil, err
	}

	ids, err := s.projectRepo.FindIDsByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &models.CascadeResult{Deleted: 0}, nil
	}

	deleted, err := s.projectRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	s.metrics.CascadeDeleted(models.EntityProject, deleted)

	for _, id := range ids {
		s.scheduleTaskCascade(ctx, id)
	}
	return &models.CascadeResult{Deleted: deleted}, nil
}

func (s *ProjectService) scheduleTaskCascade(ctx context.Context, projectID primitive.ObjectID) {
	s.outbox.Schedule(ctx, "cascade-delete-tasks", func(ctx context.Context) error {
		result, err := s.tasks.DeleteTasksByProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("cascade delete tasks of project %s: %w", projectID.Hex(), err)
		}
		s.log.InfoContext(ctx, "project tasks deleted", "project_id", projectID.Hex(), "deleted", result.Deleted)
		return nil
	})
}
