// Package config reads service settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings of one service binary. Sibling URLs a service
// never calls are still populated from their defaults.
type Config struct {
	ServiceName   string
	ServerPort    string
	GinMode       string
	LogLevel      string
	MongoURI      string
	MongoDatabase string
	RedisURI      string
	JWTSecret     string
	JWTExpiry     time.Duration
	ServiceToken  string

	TeamServiceURL    string
	ProjectServiceURL string
	TaskServiceURL    string
	OutboundTimeout   time.Duration

	SideEffectQueueSize int
	SideEffectWorkers   int
	OutboxQueueSize     int
	OutboxWorkers       int
	OutboxMaxAttempts   int
	OutboxRetryDelay    time.Duration

	UserCacheTTL time.Duration
}

// Load builds the Config of serviceName. Every missing or malformed variable
// is reported in the returned error, not just the first.
func Load(serviceName string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	env := &reader{}
	cfg := &Config{
		ServiceName:   env.str("SERVICE_NAME", serviceName),
		ServerPort:    env.str("SERVER_PORT", "8080"),
		GinMode:       env.str("GIN_MODE", "debug"),
		LogLevel:      env.str("LOG_LEVEL", "info"),
		MongoURI:      env.required("MONGO_URI"),
		MongoDatabase: env.required("MONGO_DATABASE"),
		RedisURI:      env.str("REDIS_URI", "localhost:6379"),
		JWTSecret:     env.required("JWT_SECRET"),
		JWTExpiry:     env.duration("JWT_EXPIRY", 24*time.Hour),
		ServiceToken:  env.required("SERVICE_TOKEN"),

		TeamServiceURL:    env.str("TEAM_SERVICE_URL", "http://localhost:8081"),
		ProjectServiceURL: env.str("PROJECT_SERVICE_URL", "http://localhost:8082"),
		TaskServiceURL:    env.str("TASK_SERVICE_URL", "http://localhost:8083"),
		OutboundTimeout:   env.duration("OUTBOUND_TIMEOUT", 5*time.Second),

		SideEffectQueueSize: env.positive("SIDE_EFFECT_QUEUE_SIZE", 1000),
		SideEffectWorkers:   env.positive("SIDE_EFFECT_WORKERS", 2),
		OutboxQueueSize:     env.positive("OUTBOX_QUEUE_SIZE", 500),
		OutboxWorkers:       env.positive("OUTBOX_WORKERS", 4),
		OutboxMaxAttempts:   env.positive("OUTBOX_MAX_ATTEMPTS", 3),
		OutboxRetryDelay:    env.duration("OUTBOX_RETRY_DELAY", 2*time.Second),

		UserCacheTTL: env.duration("USER_CACHE_TTL", 5*time.Minute),
	}

	if err := errors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// MustLoad is Load for binaries that cannot start without configuration.
func MustLoad(serviceName string) *Config {
	cfg, err := Load(serviceName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

type reader struct {
	errs []error
}

func (r *reader) str(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (r *reader) required(key string) string {
	v := os.Getenv(key)
	if v == "" {
		r.errs = append(r.errs, fmt.Errorf("%s is required", key))
	}
	return v
}

func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not a positive duration", key, raw))
		return fallback
	}
	return d
}

func (r *reader) positive(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not a positive integer", key, raw))
		return fallback
	}
	return n
}
