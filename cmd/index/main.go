package main

import (
	"context"
	"flag"
	"os"
	"time"

	"teamtrack/internal/config"
	"teamtrack/internal/database"
	"teamtrack/internal/logger"
	"teamtrack/internal/repository"
)

func main() {
	service := flag.String("service", "team-service", "service whose database to index (team-service, project-service, task-service)")
	flag.Parse()

	cfg := config.MustLoad(*service)
	log := logger.New("index", cfg.LogLevel)
	log.Info("starting migration", "service", *service, "database", cfg.MongoDatabase)

	indexes, err := repository.IndexesFor(*service)
	if err != nil {
		log.Error("no index set", "error", err)
		os.Exit(1)
	}

	mongoDB, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase, log)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	names, err := repository.EnsureIndexes(ctx, mongoDB.Database, indexes)
	for _, name := range names {
		log.Info("index ready", "index", name)
	}
	if err != nil {
		log.Error("migration failed", "error", err)
		return
	}

	log.Info("migration completed successfully", "indexes", len(names))
}
