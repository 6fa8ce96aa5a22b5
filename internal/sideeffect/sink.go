// Package sideeffect delivers activity log entries and notifications after
// the triggering request has been answered.
//
// Delivery is at most once: a side effect that cannot be queued is dropped
// and one that fails is logged and counted, never retried.
package sideeffect

import (
	"context"
	"sync"

	"teamtrack/internal/models"
	"teamtrack/internal/repository"
)

// Sink receives side effects.
type Sink interface {
	LogActivity(ctx context.Context, entry *models.ActivityLogEntry) error
	Notify(ctx context.Context, notification *models.Notification) error
}

// StoreSink writes side effects to the Team Service feed collections.
type StoreSink struct {
	activity      repository.ActivityRepository
	notifications repository.NotificationRepository
}

// NewStoreSink creates a StoreSink.
func NewStoreSink(activity repository.ActivityRepository, notifications repository.NotificationRepository) *StoreSink {
	return &StoreSink{activity: activity, notifications: notifications}
}

// LogActivity appends an activity entry.
func (s *StoreSink) LogActivity(ctx context.Context, entry *models.ActivityLogEntry) error {
	return s.activity.Create(ctx, entry)
}

// Notify stores a notification for its recipient.
func (s *StoreSink) Notify(ctx context.Context, notification *models.Notification) error {
	return s.notifications.Create(ctx, notification)
}

// NoopSink discards everything.
type NoopSink struct{}

// LogActivity implements Sink.
func (NoopSink) LogActivity(context.Context, *models.ActivityLogEntry) error { return nil }

// Notify implements Sink.
func (NoopSink) Notify(context.Context, *models.Notification) error { return nil }

// MemorySink records side effects in memory.
type MemorySink struct {
	mu            sync.Mutex
	activities    []models.ActivityLogEntry
	notifications []models.Notification

	// Err, when set, is returned by every call instead of recording.
	Err error
}

// LogActivity implements Sink.
func (s *MemorySink) LogActivity(_ context.Context, entry *models.ActivityLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.activities = append(s.activities, *entry)
	return nil
}

// Notify implements Sink.
func (s *MemorySink) Notify(_ context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.notifications = append(s.notifications, *notification)
	return nil
}

// Activities returns the recorded activity entries.
func (s *MemorySink) Activities() []models.ActivityLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ActivityLogEntry(nil), s.activities...)
}

// Notifications returns the recorded notifications.
func (s *MemorySink) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.notifications...)
}

var (
	_ Sink = (*StoreSink)(nil)
	_ Sink = NoopSink{}
	_ Sink = (*MemorySink)(nil)
)
