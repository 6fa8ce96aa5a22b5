package sideeffect

import (
	"context"
	"testing"

	"teamtrack/internal/logger"
	"teamtrack/internal/models"
	"teamtrack/internal/queue"
	queuemocks "teamtrack/internal/queue/mocks"
	repomocks "teamtrack/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func TestDispatcher_Activity(t *testing.T) {
	sink := &MemorySink{}
	sched := &queue.Inline{}
	d := NewDispatcher(sink, sched, "task-service", logger.Discard(), nil)

	actor := primitive.NewObjectID()
	taskID := primitive.NewObjectID()
	teamID := primitive.NewObjectID()

	d.Activity(context.Background(), actor, "created task Design", models.EntityTask, taskID, &teamID)

	require.Len(t, sink.Activities(), 1)
	entry := sink.Activities()[0]
	assert.Equal(t, "task-service", entry.Service)
	assert.Equal(t, actor, entry.ActorID)
	assert.Equal(t, taskID, entry.EntityID)
	assert.Equal(t, &teamID, entry.TeamID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Equal(t, []string{"activity"}, sched.Names())
}

func TestDispatcher_Notify(t *testing.T) {
	sink := &MemorySink{}
	d := NewDispatcher(sink, &queue.Inline{}, "team-service", logger.Discard(), nil)

	recipient := primitive.NewObjectID()
	teamID := primitive.NewObjectID()

	d.Notify(context.Background(), recipient, models.NotificationTeamInvite, "You were added to Core", models.EntityTeam, teamID)

	require.Len(t, sink.Notifications(), 1)
	n := sink.Notifications()[0]
	assert.Equal(t, recipient, n.RecipientID)
	assert.Equal(t, models.NotificationTeamInvite, n.Type)
	assert.False(t, n.Read)
}

func TestDispatcher_FailureIsSwallowed(t *testing.T) {
	sink := &MemorySink{Err: assert.AnError}
	sched := &queue.Inline{}
	d := NewDispatcher(sink, sched, "team-service", logger.Discard(), nil)

	assert.NotPanics(t, func() {
		d.Activity(context.Background(), primitive.NewObjectID(), "deleted team", models.EntityTeam, primitive.NewObjectID(), nil)
	})

	require.Len(t, sched.Runs(), 1)
	assert.ErrorIs(t, sched.Runs()[0].Err, assert.AnError)
	assert.Empty(t, sink.Activities())
}

func TestDispatcher_SchedulesWithoutRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := &MemorySink{}
	sched := queuemocks.NewMockScheduler(ctrl)
	d := NewDispatcher(sink, sched, "project-service", logger.Discard(), nil)

	// Delivery happens only when the scheduler runs the job.
	var job func(ctx context.Context) error
	sched.EXPECT().
		Schedule(gomock.Any(), "notification", gomock.Any()).
		Do(func(_ context.Context, _ string, fn func(ctx context.Context) error) {
			job = fn
		})

	d.Notify(context.Background(), primitive.NewObjectID(), models.NotificationTaskAssigned, "You were assigned to Design", models.EntityTask, primitive.NewObjectID())
	assert.Empty(t, sink.Notifications())

	require.NotNil(t, job)
	require.NoError(t, job(context.Background()))
	assert.Len(t, sink.Notifications(), 1)
}

func TestNoopSink(t *testing.T) {
	var s NoopSink
	assert.NoError(t, s.LogActivity(context.Background(), &models.ActivityLogEntry{}))
	assert.NoError(t, s.Notify(context.Background(), &models.Notification{}))
}

func TestStoreSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	activity := repomocks.NewMockActivityRepository(ctrl)
	notifications := repomocks.NewMockNotificationRepository(ctrl)

	entry := &models.ActivityLogEntry{Action: "created team Core"}
	n := &models.Notification{Type: models.NotificationTeamInvite}

	activity.EXPECT().Create(gomock.Any(), entry).Return(nil)
	notifications.EXPECT().Create(gomock.Any(), n).Return(assert.AnError)

	s := NewStoreSink(activity, notifications)

	assert.NoError(t, s.LogActivity(context.Background(), entry))
	assert.ErrorIs(t, s.Notify(context.Background(), n), assert.AnError)
}
