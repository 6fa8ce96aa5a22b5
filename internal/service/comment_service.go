package service

import (
	"context"

	"teamtrack/internal/authz"
	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"
	"teamtrack/internal/repository"
	"teamtrack/internal/sideeffect"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentService handles business logic for task comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	projects    ProjectDirectory
	teams       TeamDirectory
	events      *sideeffect.Dispatcher
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	taskRepo repository.TaskRepository,
	projects ProjectDirectory,
	teams TeamDirectory,
	events *sideeffect.Dispatcher,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		projects:    projects,
		teams:       teams,
		events:      events,
	}
}

// AddComment adds a comment to a task. Only current team members may comment.
func (s *CommentService) AddComment(ctx context.Context, actorID, taskID primitive.ObjectID, req *models.CreateCommentRequest) (*models.Comment, error) {
	task, team, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(authz.ActionTaskComment, authz.RolesFor(actorID, team, nil, task)) {
		return nil, apperrors.ErrCommentNotAllowed
	}

	comment := &models.Comment{
		TaskID:    taskID,
		ProjectID: task.ProjectID,
		AuthorID:  actorID,
		Text:      req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	teamID := team.Team.ID
	s.events.Activity(ctx, actorID, "commented on task "+task.Name, models.EntityComment, comment.ID, &teamID)
	for _, recipient := range commentRecipients(actorID, task) {
		s.events.Notify(ctx, recipient, models.NotificationTaskComment, "New comment on "+task.Name, models.EntityTask, taskID)
	}
	return comment, nil
}

// ListComments returns the comments of a task, oldest first.
func (s *CommentService) ListComments(ctx context.Context, actorID, taskID primitive.ObjectID) (*models.CommentListResponse, error) {
	task, team, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actorID, authz.ActionTaskView, team, nil, task); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &models.CommentListResponse{Items: comments}, nil
}

func (s *CommentService) load(ctx context.Context, taskID primitive.ObjectID) (*models.Task, *models.TeamDescriptor, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	project, err := s.projects.GetProject(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	team, err := loadTeam(ctx, s.teams, project.TeamID, false)
	if err != nil {
		return nil, nil, err
	}
	return task, team, nil
}

// commentRecipients returns the task's assignee and creator, without the
// author and without duplicates.
func commentRecipients(author primitive.ObjectID, task *models.Task) []primitive.ObjectID {
	var out []primitive.ObjectID
	if task.AssignedTo != nil && *task.AssignedTo != author {
		out = append(out, *task.AssignedTo)
	}
	if task.CreatedBy != author && !task.IsAssignedTo(task.CreatedBy) {
		out = append(out, task.CreatedBy)
	}
	return out
}
