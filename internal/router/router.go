// Package router sets up HTTP routes for the three services.
package router

import (
	"log/slog"

	_ "teamtrack/docs" // Import generated swagger docs

	"teamtrack/internal/authz"
	"teamtrack/internal/handler"
	"teamtrack/internal/metrics"
	"teamtrack/internal/middleware"
	"teamtrack/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Base holds the dependencies every service router needs.
type Base struct {
	Tokens  auth.TokenValidator
	Log     *slog.Logger
	Metrics *metrics.Metrics
	// ServiceToken is the shared secret sibling services present on /internal.
	ServiceToken string
	// Checks back /ready, keyed by dependency name.
	Checks map[string]DependencyCheck
}

// TeamConfig holds the dependencies of the Team Service router.
type TeamConfig struct {
	Base
	TeamHandler       *handler.TeamHandler
	MembershipHandler *handler.MembershipHandler
	UserHandler       *handler.UserHandler
	FeedHandler       *handler.FeedHandler
	Authorizer        authz.Authorizer
}

// ProjectConfig holds the dependencies of the Project Service router.
type ProjectConfig struct {
	Base
	ProjectHandler *handler.ProjectHandler
}

// TaskConfig holds the dependencies of the Task Service router.
type TaskConfig struct {
	Base
	TaskHandler    *handler.TaskHandler
	CommentHandler *handler.CommentHandler
}

// newEngine creates a gin engine with the middleware and operational routes
// shared by all services, and returns it with the authenticated /api/v1 and
// /internal groups.
func newEngine(cfg Base) (*gin.Engine, *gin.RouterGroup, *gin.RouterGroup) {
	r := gin.New()

	// Global middleware
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Log),
		middleware.Metrics(cfg.Metrics),
		middleware.CORS(),
		gin.Recovery(),
	)

	// Swagger docs at /docs
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Liveness and readiness
	r.GET("/health", liveness)
	r.GET("/ready", readiness(cfg.Checks))

	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.Tokens))

	// Service-to-service routes. Callers forward the end user's credential
	// and prove they are a sibling with the service token.
	internal := r.Group("/internal")
	internal.Use(middleware.Auth(cfg.Tokens), middleware.ServiceOnly(cfg.ServiceToken))

	return r, v1, internal
}

// SetupTeamService creates the Team Service router: teams, memberships, the
// user directory and the activity/notification feed.
func SetupTeamService(cfg *TeamConfig) *gin.Engine {
	r, v1, internal := newEngine(cfg.Base)

	// Team routes
	teams := v1.Group("/teams")
	{
		teams.POST("", cfg.TeamHandler.CreateTeam)
		teams.GET("", cfg.TeamHandler.ListTeams)

		teamWithID := teams.Group("/:teamId")
		{
			teamWithID.GET("", middleware.TeamAuthz(cfg.Authorizer, authz.ActionTeamView), cfg.TeamHandler.GetTeam)
			teamWithID.PUT("", middleware.TeamAuthz(cfg.Authorizer, authz.ActionTeamUpdate), cfg.TeamHandler.UpdateTeam)
			teamWithID.DELETE("", middleware.TeamAuthz(cfg.Authorizer, authz.ActionTeamDelete), cfg.TeamHandler.DeleteTeam)

			members := teamWithID.Group("/members")
			{
				members.GET("", middleware.TeamAuthz(cfg.Authorizer, authz.ActionTeamView), cfg.MembershipHandler.ListMembers)
				members.POST("", middleware.TeamAuthz(cfg.Authorizer, authz.ActionMemberInvite), cfg.MembershipHandler.AddMember)
				members.DELETE("/:userId", middleware.TeamAuthz(cfg.Authorizer, authz.ActionMemberRemove), cfg.MembershipHandler.RemoveMember)
			}
			teamWithID.POST("/leave", middleware.TeamMember(cfg.Authorizer), cfg.MembershipHandler.LeaveTeam)
		}
	}

	// User directory
	users := v1.Group("/users")
	{
		users.GET("/me", cfg.UserHandler.GetMe)
		users.GET("/:userId", cfg.UserHandler.GetUser)
	}

	// Feed
	v1.GET("/activity", cfg.FeedHandler.ListActivity)
	v1.GET("/notifications", cfg.FeedHandler.ListNotifications)
	v1.POST("/notifications/:notificationId/read", cfg.FeedHandler.MarkNotificationRead)

	internal.GET("/teams/:teamId", cfg.TeamHandler.GetTeamDescriptor)
	internal.POST("/users/resolve", cfg.UserHandler.ResolveUsers)
	internal.POST("/feed/activity", cfg.FeedHandler.RecordActivity)
	internal.POST("/feed/notifications", cfg.FeedHandler.RecordNotification)

	return r
}

// SetupProjectService creates the Project Service router.
func SetupProjectService(cfg *ProjectConfig) *gin.Engine {
	r, v1, internal := newEngine(cfg.Base)

	v1.POST("/projects", cfg.ProjectHandler.CreateProject)
	v1.GET("/teams/:teamId/projects", cfg.ProjectHandler.ListProjects)

	projects := v1.Group("/projects/:projectId")
	{
		projects.GET("", cfg.ProjectHandler.GetProject)
		projects.PUT("", cfg.ProjectHandler.UpdateProject)
		projects.DELETE("", cfg.ProjectHandler.DeleteProject)
	}

	internal.GET("/projects/:projectId", cfg.ProjectHandler.GetProjectDescriptor)
	internal.PUT("/projects/:projectId/progress", cfg.ProjectHandler.SetProgress)
	internal.GET("/teams/:teamId/projects", cfg.ProjectHandler.ProjectIDsByTeam)
	internal.DELETE("/teams/:teamId/projects", cfg.ProjectHandler.CascadeDeleteByTeam)

	return r
}

// SetupTaskService creates the Task Service router.
func SetupTaskService(cfg *TaskConfig) *gin.Engine {
	r, v1, internal := newEngine(cfg.Base)

	v1.POST("/projects/:projectId/tasks", cfg.TaskHandler.CreateTask)
	v1.GET("/projects/:projectId/tasks", cfg.TaskHandler.ListTasks)

	tasks := v1.Group("/tasks/:taskId")
	{
		tasks.GET("", cfg.TaskHandler.GetTask)
		tasks.PATCH("", cfg.TaskHandler.UpdateTask)
		tasks.DELETE("", cfg.TaskHandler.DeleteTask)
		tasks.POST("/comments", cfg.CommentHandler.AddComment)
		tasks.GET("/comments", cfg.CommentHandler.ListComments)
	}

	internal.DELETE("/projects/:projectId/tasks", cfg.TaskHandler.CascadeDeleteByProject)
	internal.POST("/teams/:teamId/members/:userId/unassign", cfg.TaskHandler.UnassignUserInTeam)

	return r
}
