package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"teamtrack/internal/authz"
	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/metrics"
	"teamtrack/internal/models"
	"teamtrack/internal/queue"
	"teamtrack/internal/repository"
	"teamtrack/internal/sideeffect"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskService handles business logic for task operations.
type TaskService struct {
	taskRepo    repository.TaskRepository
	commentRepo repository.CommentRepository
	projects    ProjectDirectory
	teams       TeamDirectory
	users       UserResolver
	recalc      ProgressRecalculator
	outbox      queue.Scheduler
	events      *sideeffect.Dispatcher
	log         *slog.Logger
	metrics     *metrics.Metrics
}

// TaskDeps groups the collaborators of a TaskService.
type TaskDeps struct {
	Tasks    repository.TaskRepository
	Comments repository.CommentRepository
	Projects ProjectDirectory
	Teams    TeamDirectory
	Users    UserResolver
	Recalc   ProgressRecalculator
	Outbox   queue.Scheduler
	Events   *sideeffect.Dispatcher
	Log      *slog.Logger
	Metrics  *metrics.Metrics
}

// NewTaskService creates a new TaskService.
func NewTaskService(deps TaskDeps) *TaskService {
	return &TaskService{
		taskRepo:    deps.Tasks,
		commentRepo: deps.Comments,
		projects:    deps.Projects,
		teams:       deps.Teams,
		users:       deps.Users,
		recalc:      deps.Recalc,
		outbox:      deps.Outbox,
		events:      deps.Events,
		log:         deps.Log,
		metrics:     deps.Metrics,
	}
}

// CreateTask creates a task in a project.
func (s *TaskService) CreateTask(ctx context.Context, actorID, projectID primitive.ObjectID, req *models.CreateTaskRequest) (*models.Task, error) {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	team, err := loadTeam(ctx, s.teams, project.TeamID, false)
	if err != nil {
		return nil, err
	}
	if err := authorize(actorID, authz.ActionTaskCreate, team, project, nil); err != nil {
		return nil, err
	}

	var assignee *primitive.ObjectID
	if req.AssignedTo != nil {
		id, err := resolveAssignee(*req.AssignedTo, team)
		if err != nil {
			return nil, err
		}
		assignee = &id
	}

	if err := validateTaskDates(project, req.StartDate, req.DueDate); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusToDo
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	// Without an explicit value a new task enters its status from To Do at
	// 0, so In Progress starts at 1.
	progress := models.ProgressForStatus(models.StatusToDo, status, 0)
	if req.Progress != nil {
		progress = models.ProgressForStatus("", status, *req.Progress)
	}

	teamID := project.TeamID
	task := &models.Task{
		ProjectID:   projectID,
		TeamID:      &teamID,
		Name:        req.Name,
		Description: req.Description,
		AssignedTo:  assignee,
		CreatedBy:   actorID,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Status:      status,
		Priority:    priority,
		Progress:    progress,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.scheduleRecalc(ctx, projectID)
	s.events.Activity(ctx, actorID, "created task "+task.Name, models.EntityTask, task.ID, &teamID)
	if assignee != nil && *assignee != actorID {
		s.events.Notify(ctx, *assignee, models.NotificationTaskAssigned, "You were assigned to "+task.Name, models.EntityTask, task.ID)
	}
	return task, nil
}

// ListTasks returns the tasks of a project with their assignees expanded.
func (s *TaskService) ListTasks(ctx context.Context, actorID, projectID primitive.ObjectID) (*models.TaskListResponse, error) {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	team, err := loadTeam(ctx, s.teams, project.TeamID, false)
	if err != nil {
		return nil, err
	}
	if err := authorize(actorID, authz.ActionTaskView, team, project, nil); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &models.TaskListResponse{Items: s.expandAssignees(ctx, tasks)}, nil
}

// GetTask returns a task visible to the actor.
func (s *TaskService) GetTask(ctx context.Context, actorID, taskID primitive.ObjectID) (*models.Task, error) {
	task, project, team, err := s.load(ctx, taskID, false)
	if err != nil {
		return nil, err
	}
	if err := authorize(actorID, authz.ActionTaskView, team, project, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies a partial update. Each group of touched fields is
// authorized separately against the capability table before any write.
func (s *TaskService) UpdateTask(ctx context.Context, actorID, taskID primitive.ObjectID, req *models.UpdateTaskRequest) (*models.Task, error) {
	if !req.TouchesDetails() && !req.TouchesProgress() && !req.TouchesPlanning() && !req.AssignedTo.Set {
		return nil, apperrors.ErrNothingToUpdate
	}

	task, project, team, err := s.load(ctx, taskID, false)
	if err != nil {
		return nil, err
	}

	roles := authz.RolesFor(actorID, team, project, task)
	checks := []struct {
		touched bool
		action  string
	}{
		{req.TouchesDetails(), authz.ActionTaskEdit},
		{req.TouchesProgress(), authz.ActionTaskProgress},
		{req.TouchesPlanning(), authz.ActionTaskPlan},
		{req.AssignedTo.Set, authz.ActionTaskAssign},
	}
	for _, check := range checks {
		if !check.touched {
			continue
		}
		if err := authz.Require(check.action, roles); err != nil {
			return nil, err
		}
	}

	previousAssignee := task.AssignedTo
	patch := models.TaskPatch{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
	}

	if req.AssignedTo.Set {
		patch.Assign = true
		patch.ExpectAssignee = previousAssignee
		if req.AssignedTo.Value != nil {
			id, err := resolveAssignee(*req.AssignedTo.Value, team)
			if err != nil {
				return nil, err
			}
			patch.AssignedTo = &id
		}
	}

	if req.StartDate != nil || req.DueDate != nil {
		start, due := task.StartDate, task.DueDate
		if req.StartDate != nil {
			start = *req.StartDate
		}
		if req.DueDate != nil {
			due = *req.DueDate
		}
		if err := validateTaskDates(project, start, due); err != nil {
			return nil, err
		}
		patch.StartDate, patch.DueDate = req.StartDate, req.DueDate
	}

	if req.TouchesProgress() {
		progress := task.Progress
		if req.Progress != nil {
			progress = *req.Progress
		}
		if req.Status != nil {
			progress = models.ProgressForStatus(task.Status, *req.Status, progress)
		}
		patch.Status = req.Status
		patch.Progress = &progress
	}

	task, err = s.taskRepo.Update(ctx, taskID, patch)
	if err != nil {
		return nil, err
	}

	s.scheduleRecalc(ctx, task.ProjectID)
	s.events.Activity(ctx, actorID, "updated task "+task.Name, models.EntityTask, task.ID, &project.TeamID)
	if patch.Assign {
		s.notifyReassignment(ctx, actorID, task, previousAssignee)
	}
	return task, nil
}

// DeleteTask deletes a task and its comments. When the team is gone only
// the project creator may still delete.
func (s *TaskService) DeleteTask(ctx context.Context, actorID, taskID primitive.ObjectID) error {
	task, project, team, err := s.load(ctx, taskID, true)
	if err != nil {
		return err
	}
	if err := authorize(actorID, authz.ActionTaskDelete, team, project, task); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}
	if _, err := s.commentRepo.DeleteByTaskID(ctx, taskID); err != nil {
		s.log.WarnContext(ctx, "task comments not deleted", "task_id", taskID.Hex(), "error", err)
	}

	s.scheduleRecalc(ctx, task.ProjectID)
	s.events.Activity(ctx, actorID, "deleted task "+task.Name, models.EntityTask, taskID, &project.TeamID)
	return nil
}

// CascadeDeleteByProject deletes every task and comment of a deleted
// project. Repeating it returns a zero count.
func (s *TaskService) CascadeDeleteByProject(ctx context.Context, projectID primitive.ObjectID) (*models.CascadeResult, error) {
	if err := requireProjectGone(ctx, s.projects, projectID); err != nil {
		return nil, err
	}

	deleted, err := s.taskRepo.DeleteByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return &models.CascadeResult{Deleted: 0}, nil
	}

	comments, err := s.commentRepo.DeleteByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s.metrics.CascadeDeleted(models.EntityTask, deleted)
	s.metrics.CascadeDeleted(models.EntityComment, comments)
	return &models.CascadeResult{Deleted: deleted}, nil
}

// UnassignUserInTeam clears userID from every task in the team's projects
// without touching progress or status, then schedules a progress refresh of
// the affected projects.
//
// It refuses to run while the user is still a member of the team. Team
// scope comes from the Project Service. When it cannot be reached the
// denormalized task.teamId is used instead, which misses tasks created
// before that field existed, so the call still fails with
// ErrRepairIncomplete and the caller repeats it.
func (s *TaskService) UnassignUserInTeam(ctx context.Context, teamID, userID primitive.ObjectID) (*models.UnassignResult, error) {
	if err := requireFormerMember(ctx, s.teams, teamID, userID); err != nil {
		return nil, err
	}

	var (
		affected []primitive.ObjectID
		count    int64
	)

	projectIDs, lookupErr := s.projects.ProjectIDsByTeam(ctx, teamID)
	var err error
	if lookupErr != nil {
		s.log.WarnContext(ctx, "project lookup failed, falling back to cached team ids",
			"team_id", teamID.Hex(),
			"user_id", userID.Hex(),
			"error", lookupErr,
		)
		affected, count, err = s.taskRepo.UnassignInTeam(ctx, userID, teamID)
	} else {
		affected, count, err = s.taskRepo.UnassignInProjects(ctx, userID, projectIDs)
	}
	if err != nil {
		return nil, err
	}

	if len(affected) > 0 {
		s.outbox.Schedule(ctx, "recalculate-progress", func(ctx context.Context) error {
			return s.recalc.RecalculateAll(ctx, affected)
		})
	}
	if lookupErr != nil {
		return nil, fmt.Errorf("unassign in team %s: %w: %w", teamID.Hex(), apperrors.ErrRepairIncomplete, lookupErr)
	}
	return &models.UnassignResult{Unassigned: count}, nil
}

// load fetches a task with its project and team descriptor.
func (s *TaskService) load(ctx context.Context, taskID primitive.ObjectID, orphanOK bool) (*models.Task, *models.Project, *models.TeamDescriptor, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, nil, err
	}
	project, err := s.projects.GetProject(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, nil, err
	}
	team, err := loadTeam(ctx, s.teams, project.TeamID, orphanOK)
	if err != nil {
		return nil, nil, nil, err
	}
	return task, project, team, nil
}

func (s *TaskService) scheduleRecalc(ctx context.Context, projectID primitive.ObjectID) {
	s.outbox.Schedule(ctx, "recalculate-progress", func(ctx context.Context) error {
		if _, err := s.recalc.Recalculate(ctx, projectID); err != nil {
			return fmt.Errorf("recalculate project %s: %w", projectID.Hex(), err)
		}
		return nil
	})
}

func (s *TaskService) notifyReassignment(ctx context.Context, actorID primitive.ObjectID, task *models.Task, previous *primitive.ObjectID) {
	current := task.AssignedTo
	if previous != nil && (current == nil || *current != *previous) && *previous != actorID {
		s.events.Notify(ctx, *previous, models.NotificationTaskUnassigned, "You were unassigned from "+task.Name, models.EntityTask, task.ID)
	}
	if current != nil && (previous == nil || *current != *previous) && *current != actorID {
		s.events.Notify(ctx, *current, models.NotificationTaskAssigned, "You were assigned to "+task.Name, models.EntityTask, task.ID)
	}
}

// expandAssignees attaches user summaries. A directory failure leaves the
// summaries empty instead of failing the list.
func (s *TaskService) expandAssignees(ctx context.Context, tasks []models.Task) []models.TaskWithAssignee {
	var ids []primitive.ObjectID
	for _, t := range tasks {
		if t.AssignedTo != nil {
			ids = append(ids, *t.AssignedTo)
		}
	}

	users := make(map[primitive.ObjectID]models.UserSummary)
	if len(ids) > 0 {
		resolved, err := s.users.ResolveUsers(ctx, ids)
		if err != nil {
			s.log.WarnContext(ctx, "assignee lookup failed", "error", err)
		}
		for _, u := range resolved {
			users[u.ID] = u
		}
	}

	items := make([]models.TaskWithAssignee, 0, len(tasks))
	for _, t := range tasks {
		item := models.TaskWithAssignee{Task: t}
		if t.AssignedTo != nil {
			if u, ok := users[*t.AssignedTo]; ok {
				item.Assignee = &u
			}
		}
		items = append(items, item)
	}
	return items
}

// resolveAssignee parses id and checks it against the current member list.
func resolveAssignee(id string, team *models.TeamDescriptor) (primitive.ObjectID, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.ErrInvalidAssigneeID
	}
	if !team.HasMember(userID) {
		return primitive.NilObjectID, apperrors.ErrAssigneeNotMember
	}
	return userID, nil
}

func validateTaskDates(project *models.Project, start, due time.Time) error {
	if due.Before(start) {
		return apperrors.ErrInvalidDateRange
	}
	if !project.Covers(start, due) {
		return apperrors.ErrDateOutOfRange
	}
	return nil
}
