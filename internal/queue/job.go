package queue

import (
	"context"
	"time"

	"teamtrack/internal/logger"
	"teamtrack/pkg/auth"

	"github.com/google/uuid"
)

// Job is a unit of background work.
//
// Run receives a context detached from the request that scheduled the job.
// The caller's credential and request id are carried over so that calls to
// sibling services made from the job are attributed to the original caller.
type Job struct {
	ID         string
	Name       string
	Attempt    int
	Credential string
	RequestID  string
	EnqueuedAt time.Time
	Run        func(ctx context.Context) error
}

// NewJob captures the request-scoped values of ctx into a new job.
func NewJob(ctx context.Context, name string, fn func(ctx context.Context) error) Job {
	return Job{
		ID:         uuid.NewString(),
		Name:       name,
		Credential: auth.CredentialFrom(ctx),
		RequestID:  logger.RequestID(ctx),
		EnqueuedAt: time.Now(),
		Run:        fn,
	}
}

// Context rebuilds the request-scoped values on top of parent.
func (j Job) Context(parent context.Context) context.Context {
	ctx := parent
	if j.Credential != "" {
		ctx = auth.WithCredential(ctx, j.Credential)
	}
	if j.RequestID != "" {
		ctx = logger.WithRequestID(ctx, j.RequestID)
	}
	return ctx
}
