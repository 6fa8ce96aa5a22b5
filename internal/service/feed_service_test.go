package service

import (
	"context"
	"testing"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"
	repomocks "teamtrack/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func TestFeedService_RecordNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifications := repomocks.NewMockNotificationRepository(ctrl)

	notifications.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) error {
			assert.False(t, n.Read)
			return nil
		})

	service := NewFeedService(repomocks.NewMockActivityRepository(ctrl), notifications, repomocks.NewMockMembershipRepository(ctrl))
	err := service.RecordNotification(context.Background(), &models.Notification{
		RecipientID: primitive.NewObjectID(),
		Type:        models.NotificationTaskAssigned,
		Read:        true,
	})

	require.NoError(t, err)
}

func TestFeedService_ListActivity(t *testing.T) {
	entityID := primitive.NewObjectID()
	viewerID := primitive.NewObjectID()
	teamIDs := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default limit", 0, 50},
		{"explicit limit", 10, 10},
		{"capped limit", 1000, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			activity := repomocks.NewMockActivityRepository(ctrl)
			members := repomocks.NewMockMembershipRepository(ctrl)

			members.EXPECT().TeamIDsByUser(gomock.Any(), viewerID).Return(teamIDs, nil)
			activity.EXPECT().
				List(gomock.Any(), teamIDs, &entityID, tt.wantLimit).
				Return([]models.ActivityLogEntry{{EntityID: entityID, TeamID: &teamIDs[0]}}, nil)

			service := NewFeedService(activity, repomocks.NewMockNotificationRepository(ctrl), members)
			result, err := service.ListActivity(context.Background(), viewerID, &entityID, tt.limit)

			require.NoError(t, err)
			assert.Len(t, result.Items, 1)
		})
	}

	t.Run("membership lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		members := repomocks.NewMockMembershipRepository(ctrl)
		members.EXPECT().TeamIDsByUser(gomock.Any(), viewerID).Return(nil, assert.AnError)

		service := NewFeedService(repomocks.NewMockActivityRepository(ctrl), repomocks.NewMockNotificationRepository(ctrl), members)
		_, err := service.ListActivity(context.Background(), viewerID, nil, 0)

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestFeedService_Notifications(t *testing.T) {
	userID := primitive.NewObjectID()
	notificationID := primitive.NewObjectID()

	t.Run("lists unread", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifications := repomocks.NewMockNotificationRepository(ctrl)

		notifications.EXPECT().
			ListByRecipient(gomock.Any(), userID, true, 50).
			Return([]models.Notification{{ID: notificationID, RecipientID: userID}}, nil)

		service := NewFeedService(repomocks.NewMockActivityRepository(ctrl), notifications, repomocks.NewMockMembershipRepository(ctrl))
		result, err := service.ListNotifications(context.Background(), userID, true, 0)

		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, notificationID, result.Items[0].ID)
	})

	t.Run("mark read of another user's notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifications := repomocks.NewMockNotificationRepository(ctrl)

		notifications.EXPECT().
			MarkRead(gomock.Any(), notificationID, userID).
			Return(apperrors.ErrNotificationNotFound)

		service := NewFeedService(repomocks.NewMockActivityRepository(ctrl), notifications, repomocks.NewMockMembershipRepository(ctrl))
		err := service.MarkNotificationRead(context.Background(), userID, notificationID)

		assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
	})
}
