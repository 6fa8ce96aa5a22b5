package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"teamtrack/internal/config"
	"teamtrack/internal/database"
	"teamtrack/internal/logger"
	"teamtrack/internal/models"
	"teamtrack/internal/repository"
	"teamtrack/pkg/auth"

	"go.mongodb.org/mongo-driver/bson"
)

// seedUsers is the demo user directory. Registration is out of scope, so
// the directory is only ever populated here.
var seedUsers = []models.User{
	{Email: "alice@example.com", Name: "Alice Johnson"},
	{Email: "bob@example.com", Name: "Bob Smith"},
	{Email: "carol@example.com", Name: "Carol White"},
	{Email: "dave@example.com", Name: "Dave Brown"},
}

func main() {
	cfg := config.MustLoad("team-service")
	log := logger.NewWithWriter(os.Stderr, "seed", cfg.LogLevel)
	log.Info("starting seed", "database", cfg.MongoDatabase)

	mongoDB, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase, log)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Clear existing users
	if _, err := mongoDB.Collection(repository.CollectionUsers).DeleteMany(ctx, bson.M{}); err != nil {
		log.Error("failed to clear users", "error", err)
		return
	}

	users := repository.NewUserRepository(mongoDB.Database)
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	for _, u := range seedUsers {
		user := u
		if err := users.Create(ctx, &user); err != nil {
			log.Error("failed to seed user", "email", user.Email, "error", err)
			return
		}

		token, err := tokens.GenerateToken(user.ID.Hex())
		if err != nil {
			log.Error("failed to issue token", "email", user.Email, "error", err)
			return
		}

		log.Info("seeded user", "email", user.Email, "id", user.ID.Hex())
		// Dev tokens go to stdout so they can be piped into a shell.
		fmt.Printf("%s\t%s\t%s\n", user.Email, user.ID.Hex(), token)
	}

	log.Info("seed completed successfully", "users", len(seedUsers))
}
