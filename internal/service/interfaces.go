// Package service contains business logic for the application.
package service

import (
	"context"

	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sibling service dependencies. The HTTP clients in internal/client
// implement them.

// TeamDirectory returns a team with its current membership list.
type TeamDirectory interface {
	GetTeam(ctx context.Context, teamID primitive.ObjectID) (*models.TeamDescriptor, error)
}

// UserResolver resolves user ids to directory entries.
type UserResolver interface {
	ResolveUsers(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error)
}

// ProjectDirectory looks up projects owned by the Project Service.
type ProjectDirectory interface {
	GetProject(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error)
	ProjectIDsByTeam(ctx context.Context, teamID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// ProjectCascader deletes the projects of a deleted team.
type ProjectCascader interface {
	DeleteProjectsByTeam(ctx context.Context, teamID primitive.ObjectID) (*models.CascadeResult, error)
}

// TaskCascader deletes the tasks of a deleted project.
type TaskCascader interface {
	DeleteTasksByProject(ctx context.Context, projectID primitive.ObjectID) (*models.CascadeResult, error)
}

// TaskRepairer clears assignments of a user who left a team.
type TaskRepairer interface {
	UnassignUserInTeam(ctx context.Context, teamID, userID primitive.ObjectID) (*models.UnassignResult, error)
}

// ProgressRecalculator recomputes and pushes project progress.
type ProgressRecalculator interface {
	Recalculate(ctx context.Context, projectID primitive.ObjectID) (*models.ProgressResult, error)
	RecalculateAll(ctx context.Context, projectIDs []primitive.ObjectID) error
}

// Servicer interfaces consumed by the handlers.

// TeamServicer defines the interface for team operations.
type TeamServicer interface {
	CreateTeam(ctx context.Context, userID primitive.ObjectID, req *models.CreateTeamRequest) (*models.Team, error)
	ListTeams(ctx context.Context, userID primitive.ObjectID, page, limit int) (*models.TeamListResponse, error)
	GetTeam(ctx context.Context, teamID primitive.ObjectID) (*models.Team, error)
	GetTeamDescriptor(ctx context.Context, teamID primitive.ObjectID) (*models.TeamDescriptor, error)
	UpdateTeam(ctx context.Context, actorID, teamID primitive.ObjectID, req *models.UpdateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, actorID, teamID primitive.ObjectID) error
}

// MembershipServicer defines the interface for team membership operations.
type MembershipServicer interface {
	ListMembers(ctx context.Context, teamID primitive.ObjectID) (*models.MembershipListResponse, error)
	AddMember(ctx context.Context, actorID, teamID primitive.ObjectID, req *models.AddMemberRequest) (*models.Membership, error)
	RemoveMember(ctx context.Context, actorID, teamID, targetUserID primitive.ObjectID) error
	LeaveTeam(ctx context.Context, teamID, userID primitive.ObjectID) error
}

// UserServicer defines the interface for user directory operations.
type UserServicer interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ResolveUsers(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error)
}

// FeedServicer defines the interface for activity and notification operations.
type FeedServicer interface {
	RecordActivity(ctx context.Context, entry *models.ActivityLogEntry) error
	RecordNotification(ctx context.Context, notification *models.Notification) error
	ListActivity(ctx context.Context, viewerID primitive.ObjectID, entityID *primitive.ObjectID, limit int) (*models.ActivityListResponse, error)
	ListNotifications(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, limit int) (*models.NotificationListResponse, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID primitive.ObjectID) error
}

// ProjectServicer defines the interface for project operations.
type ProjectServicer interface {
	CreateProject(ctx context.Context, actorID primitive.ObjectID, req *models.CreateProjectRequest) (*models.Project, error)
	ListProjects(ctx context.Context, actorID, teamID primitive.ObjectID) (*models.ProjectListResponse, error)
	GetProject(ctx context.Context, actorID, projectID primitive.ObjectID) (*models.Project, error)
	UpdateProject(ctx context.Context, actorID, projectID primitive.ObjectID, req *models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, actorID, projectID primitive.ObjectID) error

	GetProjectDescriptor(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error)
	SetProgress(ctx context.Context, projectID primitive.ObjectID, req *models.SetProgressRequest) (*models.ProgressResult, error)
	ProjectIDsByTeam(ctx context.Context, teamID primitive.ObjectID) ([]primitive.ObjectID, error)
	CascadeDeleteByTeam(ctx context.Context, teamID primitive.ObjectID) (*models.CascadeResult, error)
}

// TaskServicer defines the interface for task operations.
type TaskServicer interface {
	CreateTask(ctx context.Context, actorID, projectID primitive.ObjectID, req *models.CreateTaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context, actorID, projectID primitive.ObjectID) (*models.TaskListResponse, error)
	GetTask(ctx context.Context, actorID, taskID primitive.ObjectID) (*models.Task, error)
	UpdateTask(ctx context.Context, actorID, taskID primitive.ObjectID, req *models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, actorID, taskID primitive.ObjectID) error

	CascadeDeleteByProject(ctx context.Context, projectID primitive.ObjectID) (*models.CascadeResult, error)
	UnassignUserInTeam(ctx context.Context, teamID, userID primitive.ObjectID) (*models.UnassignResult, error)
}

// CommentServicer defines the interface for task comment operations.
type CommentServicer interface {
	AddComment(ctx context.Context, actorID, taskID primitive.ObjectID, req *models.CreateCommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, actorID, taskID primitive.ObjectID) (*models.CommentListResponse, error)
}

// Ensure concrete types implement interfaces
var (
	_ TeamServicer       = (*TeamService)(nil)
	_ MembershipServicer = (*MembershipService)(nil)
	_ UserServicer       = (*UserService)(nil)
	_ FeedServicer       = (*FeedService)(nil)
	_ ProjectServicer    = (*ProjectService)(nil)
	_ TaskServicer       = (*TaskService)(nil)
	_ CommentServicer    = (*CommentService)(nil)
)
