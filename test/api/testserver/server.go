//go:build api

// Package testserver wires the Team, Project and Task services against real
// MongoDB and Redis containers. Each service listens on its own httptest
// server so that cross-service calls travel over HTTP exactly as in
// production.
package testserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"teamtrack/internal/authz"
	"teamtrack/internal/client"
	"teamtrack/internal/handler"
	"teamtrack/internal/logger"
	"teamtrack/internal/metrics"
	"teamtrack/internal/progress"
	"teamtrack/internal/queue"
	"teamtrack/internal/repository"
	"teamtrack/internal/router"
	"teamtrack/internal/service"
	"teamtrack/internal/sideeffect"
	"teamtrack/pkg/auth"
	"teamtrack/test/api/testdb"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// TestAccessTokenSecret is the JWT secret shared by the three services.
	TestAccessTokenSecret = "test-secret-key-for-api-tests"
	// TestAccessTokenExpiry is the access token expiry time used in tests.
	TestAccessTokenExpiry = 15 * time.Minute
	// TestOutboundTimeout bounds calls between the services.
	TestOutboundTimeout = 2 * time.Second
	// TestUserCacheTTL is the user cache lifetime used in tests.
	TestUserCacheTTL = time.Minute
	// TestServiceToken admits the services to each other's /internal routes.
	TestServiceToken = "test-service-token"
)

// Service is one running service of the test deployment.
type Service struct {
	Name        string
	Router      *gin.Engine
	HTTP        *httptest.Server
	Database    *mongo.Database
	Outbox      *queue.Processor
	SideEffects *queue.Processor
}

// TestServer holds all dependencies for API integration tests.
type TestServer struct {
	Team    *Service
	Project *Service
	Task    *Service

	// Containers
	MongoDB *testdb.MongoContainer
	Redis   *testdb.RedisContainer

	// Repositories (for direct database access in tests)
	UserRepo         repository.UserRepository
	MembershipRepo   repository.MembershipRepository
	NotificationRepo repository.NotificationRepository
	ActivityRepo     repository.ActivityRepository
	ProjectRepo      repository.ProjectRepository
	TaskRepo         repository.TaskRepository
	CommentRepo      repository.CommentRepository

	// Auth
	JWTManager *auth.JWTManager
}

// lateHandler lets a service listen before its router exists, so that the
// sibling URLs are known when the clients are built.
type lateHandler struct {
	handler http.Handler
}

func (h *lateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

// New starts the containers and the three services.
func New(ctx context.Context) (*TestServer, error) {
	gin.SetMode(gin.TestMode)
	log := logger.Discard()

	mongoDB, err := testdb.SetupMongoDB(ctx)
	if err != nil {
		return nil, err
	}

	redisContainer, err := testdb.SetupRedis(ctx)
	if err != nil {
		_ = mongoDB.Cleanup(ctx)
		return nil, err
	}

	ts := &TestServer{
		MongoDB:    mongoDB,
		Redis:      redisContainer,
		JWTManager: auth.NewJWTManager(TestAccessTokenSecret, TestAccessTokenExpiry),
	}

	handlers := map[string]*lateHandler{}
	for _, name := range []string{"team-service", "project-service", "task-service"} {
		svc, h, err := ts.newService(ctx, name, log)
		if err != nil {
			ts.Cleanup(ctx)
			return nil, err
		}
		handlers[name] = h
		switch name {
		case "team-service":
			ts.Team = svc
		case "project-service":
			ts.Project = svc
		case "task-service":
			ts.Task = svc
		}
	}

	if err := ts.wire(log); err != nil {
		ts.Cleanup(ctx)
		return nil, err
	}
	for _, svc := range ts.services() {
		handlers[svc.Name].handler = svc.Router
		svc.Outbox.Start(ctx)
		svc.SideEffects.Start(ctx)
	}

	return ts, nil
}

func (ts *TestServer) newService(ctx context.Context, name string, log *slog.Logger) (*Service, *lateHandler, error) {
	db := ts.MongoDB.Database("test_" + name)

	indexes, err := repository.IndexesFor(name)
	if err != nil {
		return nil, nil, err
	}
	if _, err := repository.EnsureIndexes(ctx, db, indexes); err != nil {
		return nil, nil, fmt.Errorf("ensure indexes for %s: %w", name, err)
	}

	h := &lateHandler{handler: http.NotFoundHandler()}
	return &Service{
		Name:     name,
		HTTP:     httptest.NewServer(h),
		Database: db,
		Outbox: queue.NewProcessor(queue.NewMemoryQueue(100), queue.Options{
			Name:        "outbox",
			Workers:     2,
			MaxAttempts: 3,
			RetryDelay:  20 * time.Millisecond,
			JobTimeout:  4 * TestOutboundTimeout,
		}, log, nil),
		SideEffects: queue.NewProcessor(queue.NewMemoryQueue(100), queue.Options{
			Name:        "side-effects",
			Workers:     2,
			MaxAttempts: 1,
			JobTimeout:  TestOutboundTimeout,
		}, log, nil),
	}, h, nil
}

// wire builds every service's layers the same way the binaries do.
func (ts *TestServer) wire(log *slog.Logger) error {
	teamAPI, err := client.New("team-service", ts.Team.HTTP.URL, TestOutboundTimeout, log, client.WithServiceToken(TestServiceToken))
	if err != nil {
		return err
	}
	projectAPI, err := client.New("project-service", ts.Project.HTTP.URL, TestOutboundTimeout, log, client.WithServiceToken(TestServiceToken))
	if err != nil {
		return err
	}
	taskAPI, err := client.New("task-service", ts.Task.HTTP.URL, TestOutboundTimeout, log, client.WithServiceToken(TestServiceToken))
	if err != nil {
		return err
	}
	teams := client.NewTeamClient(teamAPI)
	projects := client.NewProjectClient(projectAPI)
	tasks := client.NewTaskClient(taskAPI)

	// Team Service
	teamDB := ts.Team.Database
	ts.UserRepo = repository.NewUserRepository(teamDB)
	teamRepo := repository.NewTeamRepository(teamDB)
	ts.MembershipRepo = repository.NewMembershipRepository(teamDB)
	ts.ActivityRepo = repository.NewActivityRepository(teamDB)
	ts.NotificationRepo = repository.NewNotificationRepository(teamDB)

	teamEvents := sideeffect.NewDispatcher(
		sideeffect.NewStoreSink(ts.ActivityRepo, ts.NotificationRepo),
		ts.Team.SideEffects, ts.Team.Name, log, nil,
	)
	ts.Team.Router = router.SetupTeamService(&router.TeamConfig{
		Base:              ts.base(ts.Team.Name, log),
		TeamHandler:       handler.NewTeamHandler(service.NewTeamService(teamRepo, ts.MembershipRepo, projects, ts.Team.Outbox, teamEvents, log)),
		MembershipHandler: handler.NewMembershipHandler(service.NewMembershipService(ts.MembershipRepo, ts.UserRepo, teamRepo, tasks, ts.Team.Outbox, teamEvents, log)),
		UserHandler:       handler.NewUserHandler(service.NewUserService(ts.UserRepo, ts.Redis.Cache, TestUserCacheTTL)),
		FeedHandler:       handler.NewFeedHandler(service.NewFeedService(ts.ActivityRepo, ts.NotificationRepo, ts.MembershipRepo)),
		Authorizer:        authz.NewLocalAuthorizer(ts.MembershipRepo, teamRepo),
	})

	// Project Service
	ts.ProjectRepo = repository.NewProjectRepository(ts.Project.Database)
	projectEvents := sideeffect.NewDispatcher(teams, ts.Project.SideEffects, ts.Project.Name, log, nil)
	ts.Project.Router = router.SetupProjectService(&router.ProjectConfig{
		Base:           ts.base(ts.Project.Name, log),
		ProjectHandler: handler.NewProjectHandler(service.NewProjectService(ts.ProjectRepo, teams, tasks, ts.Project.Outbox, projectEvents, log, nil)),
	})

	// Task Service
	ts.TaskRepo = repository.NewTaskRepository(ts.Task.Database)
	ts.CommentRepo = repository.NewCommentRepository(ts.Task.Database)
	taskEvents := sideeffect.NewDispatcher(teams, ts.Task.SideEffects, ts.Task.Name, log, nil)
	recalc := progress.NewRecalculator(progress.NewRedisSequencer(ts.Redis.Cache), ts.TaskRepo, projects, log, nil)
	ts.Task.Router = router.SetupTaskService(&router.TaskConfig{
		Base: ts.base(ts.Task.Name, log),
		TaskHandler: handler.NewTaskHandler(service.NewTaskService(service.TaskDeps{
			Tasks:    ts.TaskRepo,
			Comments: ts.CommentRepo,
			Projects: projects,
			Teams:    teams,
			Users:    client.NewCachedUsers(teams, ts.Redis.Cache, TestUserCacheTTL, log),
			Recalc:   recalc,
			Outbox:   ts.Task.Outbox,
			Events:   taskEvents,
			Log:      log,
		})),
		CommentHandler: handler.NewCommentHandler(service.NewCommentService(ts.CommentRepo, ts.TaskRepo, projects, teams, taskEvents)),
	})

	return nil
}

func (ts *TestServer) base(service string, log *slog.Logger) router.Base {
	return router.Base{
		Tokens:       ts.JWTManager,
		Log:          log,
		Metrics:      metrics.New(service),
		ServiceToken: TestServiceToken,
		Checks: map[string]router.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return ts.MongoDB.Client.Ping(ctx, nil) },
			"redis":   ts.Redis.Cache.Ping,
		},
	}
}

func (ts *TestServer) services() []*Service {
	var out []*Service
	for _, svc := range []*Service{ts.Team, ts.Project, ts.Task} {
		if svc != nil {
			out = append(out, svc)
		}
	}
	return out
}

// Cleanup stops the services and terminates all containers.
func (ts *TestServer) Cleanup(ctx context.Context) {
	for _, svc := range ts.services() {
		svc.HTTP.Close()
		if svc.Router != nil {
			svc.Outbox.Stop()
			svc.SideEffects.Stop()
		}
	}
	if ts.Redis != nil {
		_ = ts.Redis.Cleanup(ctx)
	}
	if ts.MongoDB != nil {
		_ = ts.MongoDB.Cleanup(ctx)
	}
}
