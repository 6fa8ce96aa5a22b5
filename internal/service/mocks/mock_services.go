// Package mocks provides mock implementations of service interfaces for testing.
package mocks

import (
	"context"

	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockTeamService is a mock implementation of TeamServicer.
type MockTeamService struct {
	CreateTeamFunc        func(ctx context.Context, userID primitive.ObjectID, req *models.CreateTeamRequest) (*models.Team, error)
	ListTeamsFunc         func(ctx context.Context, userID primitive.ObjectID, page, limit int) (*models.TeamListResponse, error)
	GetTeamFunc           func(ctx context.Context, teamID primitive.ObjectID) (*models.Team, error)
	GetTeamDescriptorFunc func(ctx context.Context, teamID primitive.ObjectID) (*models.TeamDescriptor, error)
	UpdateTeamFunc        func(ctx context.Context, actorID, teamID primitive.ObjectID, req *models.UpdateTeamRequest) (*models.Team, error)
	DeleteTeamFunc        func(ctx context.Context, actorID, teamID primitive.ObjectID) error
}

func (m *MockTeamService) CreateTeam(ctx context.Context, userID primitive.ObjectID, req *models.CreateTeamRequest) (*models.Team, error) {
	if m.CreateTeamFunc != nil {
		return m.CreateTeamFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockTeamService) ListTeams(ctx context.Context, userID primitive.ObjectID, page, limit int) (*models.TeamListResponse, error) {
	if m.ListTeamsFunc != nil {
		return m.ListTeamsFunc(ctx, userID, page, limit)
	}
	return nil, nil
}

func (m *MockTeamService) GetTeam(ctx context.Context, teamID primitive.ObjectID) (*models.Team, error) {
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockTeamService) GetTeamDescriptor(ctx context.Context, teamID primitive.ObjectID) (*models.TeamDescriptor, error) {
	if m.GetTeamDescriptorFunc != nil {
		return m.GetTeamDescriptorFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockTeamService) UpdateTeam(ctx context.Context, actorID, teamID primitive.ObjectID, req *models.UpdateTeamRequest) (*models.Team, error) {
	if m.UpdateTeamFunc != nil {
		return m.UpdateTeamFunc(ctx, actorID, teamID, req)
	}
	return nil, nil
}

func (m *MockTeamService) DeleteTeam(ctx context.Context, actorID, teamID primitive.ObjectID) error {
	if m.DeleteTeamFunc != nil {
		return m.DeleteTeamFunc(ctx, actorID, teamID)
	}
	return nil
}

// MockMembershipService is a mock implementation of MembershipServicer.
type MockMembershipService struct {
	ListMembersFunc  func(ctx context.Context, teamID primitive.ObjectID) (*models.MembershipListResponse, error)
	AddMemberFunc    func(ctx context.Context, actorID, teamID primitive.ObjectID, req *models.AddMemberRequest) (*models.Membership, error)
	RemoveMemberFunc func(ctx context.Context, actorID, teamID, targetUserID primitive.ObjectID) error
	LeaveTeamFunc    func(ctx context.Context, teamID, userID primitive.ObjectID) error
}

func (m *MockMembershipService) ListMembers(ctx context.Context, teamID primitive.ObjectID) (*models.MembershipListResponse, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockMembershipService) AddMember(ctx context.Context, actorID, teamID primitive.ObjectID, req *models.AddMemberRequest) (*models.Membership, error) {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, actorID, teamID, req)
	}
	return nil, nil
}

func (m *MockMembershipService) RemoveMember(ctx context.Context, actorID, teamID, targetUserID primitive.ObjectID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, actorID, teamID, targetUserID)
	}
	return nil
}

func (m *MockMembershipService) LeaveTeam(ctx context.Context, teamID, userID primitive.ObjectID) error {
	if m.LeaveTeamFunc != nil {
		return m.LeaveTeamFunc(ctx, teamID, userID)
	}
	return nil
}

// MockUserService is a mock implementation of UserServicer.
type MockUserService struct {
	GetUserFunc      func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ResolveUsersFunc func(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error)
}

func (m *MockUserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserService) ResolveUsers(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	if m.ResolveUsersFunc != nil {
		return m.ResolveUsersFunc(ctx, ids)
	}
	return nil, nil
}

// MockFeedService is a mock implementation of FeedServicer.
type MockFeedService struct {
	RecordActivityFunc       func(ctx context.Context, entry *models.ActivityLogEntry) error
	RecordNotificationFunc   func(ctx context.Context, notification *models.Notification) error
	ListActivityFunc         func(ctx context.Context, viewerID primitive.ObjectID, entityID *primitive.ObjectID, limit int) (*models.ActivityListResponse, error)
	ListNotificationsFunc    func(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, limit int) (*models.NotificationListResponse, error)
	MarkNotificationReadFunc func(ctx context.Context, userID, notificationID primitive.ObjectID) error
}

func (m *MockFeedService) RecordActivity(ctx context.Context, entry *models.ActivityLogEntry) error {
	if m.RecordActivityFunc != nil {
		return m.RecordActivityFunc(ctx, entry)
	}
	return nil
}

func (m *MockFeedService) RecordNotification(ctx context.Context, notification *models.Notification) error {
	if m.RecordNotificationFunc != nil {
		return m.RecordNotificationFunc(ctx, notification)
	}
	return nil
}

func (m *MockFeedService) ListActivity(ctx context.Context, viewerID primitive.ObjectID, entityID *primitive.ObjectID, limit int) (*models.ActivityListResponse, error) {
	if m.ListActivityFunc != nil {
		return m.ListActivityFunc(ctx, viewerID, entityID, limit)
	}
	return nil, nil
}

func (m *MockFeedService) ListNotifications(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, limit int) (*models.NotificationListResponse, error) {
	if m.ListNotificationsFunc != nil {
		return m.ListNotificationsFunc(ctx, userID, unreadOnly, limit)
	}
	return nil, nil
}

func (m *MockFeedService) MarkNotificationRead(ctx context.Context, userID, notificationID primitive.ObjectID) error {
	if m.MarkNotificationReadFunc != nil {
		return m.MarkNotificationReadFunc(ctx, userID, notificationID)
	}
	return nil
}

// MockProjectService is a mock implementation of ProjectServicer.
type MockProjectService struct {
	CreateProjectFunc        func(ctx context.Context, actorID primitive.ObjectID, req *models.CreateProjectRequest) (*models.Project, error)
	ListProjectsFunc         func(ctx context.Context, actorID, teamID primitive.ObjectID) (*models.ProjectListResponse, error)
	GetProjectFunc           func(ctx context.Context, actorID, projectID primitive.ObjectID) (*models.Project, error)
	UpdateProjectFunc        func(ctx context.Context, actorID, projectID primitive.ObjectID, req *models.UpdateProjectRequest) (*models.Project, error)
	DeleteProjectFunc        func(ctx context.Context, actorID, projectID primitive.ObjectID) error
	GetProjectDescriptorFunc func(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error)
	SetProgressFunc          func(ctx context.Context, projectID primitive.ObjectID, req *models.SetProgressRequest) (*models.ProgressResult, error)
	ProjectIDsByTeamFunc     func(ctx context.Context, teamID primitive.ObjectID) ([]primitive.ObjectID, error)
	CascadeDeleteByTeamFunc  func(ctx context.Context, teamID primitive.ObjectID) (*models.CascadeResult, error)
}

func (m *MockProjectService) CreateProject(ctx context.Context, actorID primitive.ObjectID, req *models.CreateProjectRequest) (*models.Project, error) {
	if m.CreateProjectFunc != nil {
		return m.CreateProjectFunc(ctx, actorID, req)
	}
	return nil, nil
}

func (m *MockProjectService) ListProjects(ctx context.Context, actorID, teamID primitive.ObjectID) (*models.ProjectListResponse, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx, actorID, teamID)
	}
	return nil, nil
}

func (m *MockProjectService) GetProject(ctx context.Context, actorID, projectID primitive.ObjectID) (*models.Project, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, actorID, projectID)
	}
	return nil, nil
}

func (m *MockProjectService) UpdateProject(ctx context.Context, actorID, projectID primitive.ObjectID, req *models.UpdateProjectRequest) (*models.Project, error) {
	if m.UpdateProjectFunc != nil {
		return m.UpdateProjectFunc(ctx, actorID, projectID, req)
	}
	return nil, nil
}

func (m *MockProjectService) DeleteProject(ctx context.Context, actorID, projectID primitive.ObjectID) error {
	if m.DeleteProjectFunc != nil {
		return m.DeleteProjectFunc(ctx, actorID, projectID)
	}
	return nil
}

func (m *MockProjectService) GetProjectDescriptor(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
	if m.GetProjectDescriptorFunc != nil {
		return m.GetProjectDescriptorFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockProjectService) SetProgress(ctx context.Context, projectID primitive.ObjectID, req *models.SetProgressRequest) (*models.ProgressResult, error) {
	if m.SetProgressFunc != nil {
		return m.SetProgressFunc(ctx, projectID, req)
	}
	return nil, nil
}

func (m *MockProjectService) ProjectIDsByTeam(ctx context.Context, teamID primitive.ObjectID) ([]primitive.ObjectID, error) {
	if m.ProjectIDsByTeamFunc != nil {
		return m.ProjectIDsByTeamFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockProjectService) CascadeDeleteByTeam(ctx context.Context, teamID primitive.ObjectID) (*models.CascadeResult, error) {
	if m.CascadeDeleteByTeamFunc != nil {
		return m.CascadeDeleteByTeamFunc(ctx, teamID)
	}
	return nil, nil
}

// MockTaskService is a mock implementation of TaskServicer.
type MockTaskService struct {
	CreateTaskFunc             func(ctx context.Context, actorID, projectID primitive.ObjectID, req *models.CreateTaskRequest) (*models.Task, error)
	ListTasksFunc              func(ctx context.Context, actorID, projectID primitive.ObjectID) (*models.TaskListResponse, error)
	GetTaskFunc                func(ctx context.Context, actorID, taskID primitive.ObjectID) (*models.Task, error)
	UpdateTaskFunc             func(ctx context.Context, actorID, taskID primitive.ObjectID, req *models.UpdateTaskRequest) (*models.Task, error)
	DeleteTaskFunc             func(ctx context.Context, actorID, taskID primitive.ObjectID) error
	CascadeDeleteByProjectFunc func(ctx context.Context, projectID primitive.ObjectID) (*models.CascadeResult, error)
	UnassignUserInTeamFunc     func(ctx context.Context, teamID, userID primitive.ObjectID) (*models.UnassignResult, error)
}

func (m *MockTaskService) CreateTask(ctx context.Context, actorID, projectID primitive.ObjectID, req *models.CreateTaskRequest) (*models.Task, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, actorID, projectID, req)
	}
	return nil, nil
}

func (m *MockTaskService) ListTasks(ctx context.Context, actorID, projectID primitive.ObjectID) (*models.TaskListResponse, error) {
	if m.ListTasksFunc != nil {
		return m.ListTasksFunc(ctx, actorID, projectID)
	}
	return nil, nil
}

func (m *MockTaskService) GetTask(ctx context.Context, actorID, taskID primitive.ObjectID) (*models.Task, error) {
	if m.GetTaskFunc != nil {
		return m.GetTaskFunc(ctx, actorID, taskID)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, actorID, taskID primitive.ObjectID, req *models.UpdateTaskRequest) (*models.Task, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, actorID, taskID, req)
	}
	return nil, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, actorID, taskID primitive.ObjectID) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, actorID, taskID)
	}
	return nil
}

func (m *MockTaskService) CascadeDeleteByProject(ctx context.Context, projectID primitive.ObjectID) (*models.CascadeResult, error) {
	if m.CascadeDeleteByProjectFunc != nil {
		return m.CascadeDeleteByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockTaskService) UnassignUserInTeam(ctx context.Context, teamID, userID primitive.ObjectID) (*models.UnassignResult, error) {
	if m.UnassignUserInTeamFunc != nil {
		return m.UnassignUserInTeamFunc(ctx, teamID, userID)
	}
	return nil, nil
}

// MockCommentService is a mock implementation of CommentServicer.
type MockCommentService struct {
	AddCommentFunc   func(ctx context.Context, actorID, taskID primitive.ObjectID, req *models.CreateCommentRequest) (*models.Comment, error)
	ListCommentsFunc func(ctx context.Context, actorID, taskID primitive.ObjectID) (*models.CommentListResponse, error)
}

func (m *MockCommentService) AddComment(ctx context.Context, actorID, taskID primitive.ObjectID, req *models.CreateCommentRequest) (*models.Comment, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, actorID, taskID, req)
	}
	return nil, nil
}

func (m *MockCommentService) ListComments(ctx context.Context, actorID, taskID primitive.ObjectID) (*models.CommentListResponse, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, actorID, taskID)
	}
	return nil, nil
}
