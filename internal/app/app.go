// Package app wires the infrastructure shared by the service binaries and
// runs an HTTP server with graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teamtrack/internal/cache"
	"teamtrack/internal/config"
	"teamtrack/internal/database"
	"teamtrack/internal/logger"
	"teamtrack/internal/metrics"
	"teamtrack/internal/queue"
	"teamtrack/internal/router"
	"teamtrack/internal/validator"
	"teamtrack/pkg/auth"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 30 * time.Second

// Infra holds the connections and background machinery of one service.
type Infra struct {
	Config  *config.Config
	Log     *slog.Logger
	Metrics *metrics.Metrics
	Mongo   *database.MongoDB
	Redis   *cache.Redis
	Tokens  *auth.JWTManager

	// Outbox runs cross-service follow-ups (cascades, repairs, progress
	// pushes) with retries.
	Outbox *queue.Processor
	// SideEffects delivers activity entries and notifications at most once.
	SideEffects *queue.Processor
}

// New loads configuration and connects to MongoDB and Redis. Connection
// and configuration failures are logged before they are returned.
func New(service string) (*Infra, error) {
	cfg, err := config.Load(service)
	if err != nil {
		slog.Error("invalid configuration", "service", service, "error", err)
		return nil, err
	}
	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	slog.SetDefault(log)
	log.Info("configuration loaded")

	validator.RegisterCustomValidators()
	gin.SetMode(cfg.GinMode)

	m := metrics.New(cfg.ServiceName)

	mongoDB, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase, log)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		return nil, err
	}

	redisCache, err := cache.NewRedis(cfg.RedisURI, log)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		mongoDB.Close()
		return nil, err
	}

	return &Infra{
		Config:  cfg,
		Log:     log,
		Metrics: m,
		Mongo:   mongoDB,
		Redis:   redisCache,
		Tokens:  auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry),
		Outbox: queue.NewProcessor(queue.NewMemoryQueue(cfg.OutboxQueueSize), queue.Options{
			Name:        "outbox",
			Workers:     cfg.OutboxWorkers,
			MaxAttempts: cfg.OutboxMaxAttempts,
			RetryDelay:  cfg.OutboxRetryDelay,
			JobTimeout:  cfg.OutboundTimeout * 4,
		}, log, m),
		SideEffects: queue.NewProcessor(queue.NewMemoryQueue(cfg.SideEffectQueueSize), queue.Options{
			Name:        "side-effects",
			Workers:     cfg.SideEffectWorkers,
			MaxAttempts: 1,
			JobTimeout:  cfg.OutboundTimeout,
		}, log, m),
	}, nil
}

// Checks are the readiness checks of the service's own dependencies.
func (i *Infra) Checks() map[string]router.DependencyCheck {
	return map[string]router.DependencyCheck{
		"mongodb": i.Mongo.Ping,
		"redis":   i.Redis.Ping,
	}
}

// Close releases the database connections.
func (i *Infra) Close() {
	i.Redis.Close()
	i.Mongo.Close()
}

// Run starts the processors and serves handler until SIGINT or SIGTERM.
// The HTTP server is drained first so that no new work is scheduled, then
// the processors are stopped.
func (i *Infra) Run(handler http.Handler) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	i.Outbox.Start(ctx)
	i.SideEffects.Start(ctx)

	addr := fmt.Sprintf(":%s", i.Config.ServerPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		i.Log.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		i.Log.Info("shutdown signal received", "signal", sig.String())
	case err := <-serveErr:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	i.Log.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		i.Log.Error("http server shutdown error", "error", err)
	}

	i.Log.Info("stopping background processors")
	i.Outbox.Stop()
	i.SideEffects.Stop()
	cancel()

	i.Log.Info("server shutdown complete")
	return runErr
}
