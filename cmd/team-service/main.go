package main

import (
	"os"

	"teamtrack/internal/app"
	"teamtrack/internal/authz"
	"teamtrack/internal/client"
	"teamtrack/internal/handler"
	"teamtrack/internal/repository"
	"teamtrack/internal/router"
	"teamtrack/internal/service"
	"teamtrack/internal/sideeffect"
)

// @title           Teamtrack Team Service API
// @version         1.0
// @description     Teams, memberships, the user directory and the activity feed.

// @contact.name    API Support
// @contact.email   support@example.com

// @host            localhost:8081
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

func main() {
	infra, err := app.New("team-service")
	if err != nil {
		os.Exit(1)
	}
	defer infra.Close()

	cfg := infra.Config
	log := infra.Log
	db := infra.Mongo.Database

	// Repository layer
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	memberRepo := repository.NewMembershipRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Sibling services
	projectAPI, err := client.New("project-service", cfg.ProjectServiceURL, cfg.OutboundTimeout, log, client.WithMetrics(infra.Metrics), client.WithServiceToken(cfg.ServiceToken))
	if err != nil {
		log.Error("project client", "error", err)
		os.Exit(1)
	}
	taskAPI, err := client.New("task-service", cfg.TaskServiceURL, cfg.OutboundTimeout, log, client.WithMetrics(infra.Metrics), client.WithServiceToken(cfg.ServiceToken))
	if err != nil {
		log.Error("task client", "error", err)
		os.Exit(1)
	}

	// The feed is local to this service, so side effects go straight to the store.
	events := sideeffect.NewDispatcher(
		sideeffect.NewStoreSink(activityRepo, notificationRepo),
		infra.SideEffects, cfg.ServiceName, log, infra.Metrics,
	)

	// Service layer
	teamService := service.NewTeamService(teamRepo, memberRepo, client.NewProjectClient(projectAPI), infra.Outbox, events, log)
	membershipService := service.NewMembershipService(memberRepo, userRepo, teamRepo, client.NewTaskClient(taskAPI), infra.Outbox, events, log)
	userService := service.NewUserService(userRepo, infra.Redis, cfg.UserCacheTTL)
	feedService := service.NewFeedService(activityRepo, notificationRepo, memberRepo)

	r := router.SetupTeamService(&router.TeamConfig{
		Base:              router.Base{Tokens: infra.Tokens, Log: log, Metrics: infra.Metrics, ServiceToken: cfg.ServiceToken, Checks: infra.Checks()},
		TeamHandler:       handler.NewTeamHandler(teamService),
		MembershipHandler: handler.NewMembershipHandler(membershipService),
		UserHandler:       handler.NewUserHandler(userService),
		FeedHandler:       handler.NewFeedHandler(feedService),
		Authorizer:        authz.NewLocalAuthorizer(memberRepo, teamRepo),
	})

	if err := infra.Run(r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
