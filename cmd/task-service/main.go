package main

import (
	"os"

	"teamtrack/internal/app"
	"teamtrack/internal/client"
	"teamtrack/internal/handler"
	"teamtrack/internal/progress"
	"teamtrack/internal/repository"
	"teamtrack/internal/router"
	"teamtrack/internal/service"
	"teamtrack/internal/sideeffect"
)

// @title           Teamtrack Task Service API
// @version         1.0
// @description     Tasks, assignments and comments.

// @host            localhost:8083
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

func main() {
	infra, err := app.New("task-service")
	if err != nil {
		os.Exit(1)
	}
	defer infra.Close()

	cfg := infra.Config
	log := infra.Log
	db := infra.Mongo.Database

	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	teamAPI, err := client.New("team-service", cfg.TeamServiceURL, cfg.OutboundTimeout, log, client.WithMetrics(infra.Metrics), client.WithServiceToken(cfg.ServiceToken))
	if err != nil {
		log.Error("team client", "error", err)
		os.Exit(1)
	}
	projectAPI, err := client.New("project-service", cfg.ProjectServiceURL, cfg.OutboundTimeout, log, client.WithMetrics(infra.Metrics), client.WithServiceToken(cfg.ServiceToken))
	if err != nil {
		log.Error("project client", "error", err)
		os.Exit(1)
	}
	teams := client.NewTeamClient(teamAPI)
	projects := client.NewProjectClient(projectAPI)

	events := sideeffect.NewDispatcher(teams, infra.SideEffects, cfg.ServiceName, log, infra.Metrics)

	// Versions come from Redis so that concurrent recalculations across
	// replicas are totally ordered per project.
	recalc := progress.NewRecalculator(progress.NewRedisSequencer(infra.Redis), taskRepo, projects, log, infra.Metrics)

	taskService := service.NewTaskService(service.TaskDeps{
		Tasks:    taskRepo,
		Comments: commentRepo,
		Projects: projects,
		Teams:    teams,
		Users:    client.NewCachedUsers(teams, infra.Redis, cfg.UserCacheTTL, log),
		Recalc:   recalc,
		Outbox:   infra.Outbox,
		Events:   events,
		Log:      log,
		Metrics:  infra.Metrics,
	})
	commentService := service.NewCommentService(commentRepo, taskRepo, projects, teams, events)

	r := router.SetupTaskService(&router.TaskConfig{
		Base:           router.Base{Tokens: infra.Tokens, Log: log, Metrics: infra.Metrics, ServiceToken: cfg.ServiceToken, Checks: infra.Checks()},
		TaskHandler:    handler.NewTaskHandler(taskService),
		CommentHandler: handler.NewCommentHandler(commentService),
	})

	if err := infra.Run(r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
