package main

import (
	"os"

	"teamtrack/internal/app"
	"teamtrack/internal/client"
	"teamtrack/internal/handler"
	"teamtrack/internal/repository"
	"teamtrack/internal/router"
	"teamtrack/internal/service"
	"teamtrack/internal/sideeffect"
)

// @title           Teamtrack Project Service API
// @version         1.0
// @description     Projects and their derived progress.

// @host            localhost:8082
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

func main() {
	infra, err := app.New("project-service")
	if err != nil {
		os.Exit(1)
	}
	defer infra.Close()

	cfg := infra.Config
	log := infra.Log

	projectRepo := repository.NewProjectRepository(infra.Mongo.Database)

	teamAPI, err := client.New("team-service", cfg.TeamServiceURL, cfg.OutboundTimeout, log, client.WithMetrics(infra.Metrics), client.WithServiceToken(cfg.ServiceToken))
	if err != nil {
		log.Error("team client", "error", err)
		os.Exit(1)
	}
	taskAPI, err := client.New("task-service", cfg.TaskServiceURL, cfg.OutboundTimeout, log, client.WithMetrics(infra.Metrics), client.WithServiceToken(cfg.ServiceToken))
	if err != nil {
		log.Error("task client", "error", err)
		os.Exit(1)
	}
	teams := client.NewTeamClient(teamAPI)

	events := sideeffect.NewDispatcher(teams, infra.SideEffects, cfg.ServiceName, log, infra.Metrics)

	projectService := service.NewProjectService(projectRepo, teams, client.NewTaskClient(taskAPI), infra.Outbox, events, log, infra.Metrics)

	r := router.SetupProjectService(&router.ProjectConfig{
		Base:           router.Base{Tokens: infra.Tokens, Log: log, Metrics: infra.Metrics, ServiceToken: cfg.ServiceToken, Checks: infra.Checks()},
		ProjectHandler: handler.NewProjectHandler(projectService),
	})

	if err := infra.Run(r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
