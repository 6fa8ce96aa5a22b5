package sideeffect

import (
	"context"
	"log/slog"
	"time"

	"teamtrack/internal/logger"
	"teamtrack/internal/metrics"
	"teamtrack/internal/models"
	"teamtrack/internal/queue"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Side effect kinds reported to metrics.
const (
	KindActivity     = "activity"
	KindNotification = "notification"
)

// Dispatcher schedules side effects onto a background scheduler.
type Dispatcher struct {
	sink      Sink
	scheduler queue.Scheduler
	service   string
	log       *slog.Logger
	metrics   *metrics.Metrics
}

// NewDispatcher creates a Dispatcher that tags activity entries with service.
func NewDispatcher(sink Sink, scheduler queue.Scheduler, service string, log *slog.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		sink:      sink,
		scheduler: scheduler,
		service:   service,
		log:       log,
		metrics:   m,
	}
}

// Activity records that actorID performed action on an entity.
func (d *Dispatcher) Activity(ctx context.Context, actorID primitive.ObjectID, action, entityType string, entityID primitive.ObjectID, teamID *primitive.ObjectID) {
	entry := &models.ActivityLogEntry{
		Service:    d.service,
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		TeamID:     teamID,
		CreatedAt:  time.Now().UTC(),
	}
	d.scheduler.Schedule(ctx, "activity", func(ctx context.Context) error {
		return d.deliver(ctx, KindActivity, func() error { return d.sink.LogActivity(ctx, entry) })
	})
}

// Notify queues a notification for recipientID.
func (d *Dispatcher) Notify(ctx context.Context, recipientID primitive.ObjectID, notificationType, message, entityType string, entityID primitive.ObjectID) {
	n := &models.Notification{
		RecipientID: recipientID,
		Type:        notificationType,
		Message:     message,
		EntityType:  entityType,
		EntityID:    entityID,
		CreatedAt:   time.Now().UTC(),
	}
	d.scheduler.Schedule(ctx, "notification", func(ctx context.Context) error {
		return d.deliver(ctx, KindNotification, func() error { return d.sink.Notify(ctx, n) })
	})
}

func (d *Dispatcher) deliver(ctx context.Context, kind string, send func() error) error {
	if err := send(); err != nil {
		d.metrics.SideEffect(kind, "failed")
		d.log.WarnContext(ctx, "side effect not delivered", "kind", kind, "request_id", logger.RequestID(ctx), "error", err)
		return err
	}
	d.metrics.SideEffect(kind, "delivered")
	return nil
}
