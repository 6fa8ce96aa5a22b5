package handler

import (
	"context"
	"net/http"
	"testing"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"
	"teamtrack/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func feedRouter(m *mocks.MockFeedService, userID primitive.ObjectID) *gin.Engine {
	handler := NewFeedHandler(m)
	router := gin.New()
	api := router.Group("", setUserID(userID.Hex()))
	api.GET("/activity", handler.ListActivity)
	api.GET("/notifications", handler.ListNotifications)
	api.POST("/notifications/:notificationId/read", handler.MarkNotificationRead)
	api.POST("/internal/feed/activity", handler.RecordActivity)
	api.POST("/internal/feed/notifications", handler.RecordNotification)
	return router
}

func TestFeedHandler_ListActivity(t *testing.T) {
	entityID := primitive.NewObjectID()

	t.Run("filters by entity", func(t *testing.T) {
		viewer := primitive.NewObjectID()
		mockService := &mocks.MockFeedService{
			ListActivityFunc: func(ctx context.Context, viewerID primitive.ObjectID, id *primitive.ObjectID, limit int) (*models.ActivityListResponse, error) {
				assert.Equal(t, viewer, viewerID)
				require.NotNil(t, id)
				assert.Equal(t, entityID, *id)
				assert.Equal(t, 20, limit)
				return &models.ActivityListResponse{Items: []models.ActivityLogEntry{{EntityID: entityID}}}, nil
			},
		}

		w := serve(feedRouter(mockService, viewer), http.MethodGet, "/activity?entityId="+entityID.Hex()+"&limit=20", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("without filter", func(t *testing.T) {
		mockService := &mocks.MockFeedService{
			ListActivityFunc: func(ctx context.Context, _ primitive.ObjectID, id *primitive.ObjectID, limit int) (*models.ActivityListResponse, error) {
				assert.Nil(t, id)
				return &models.ActivityListResponse{}, nil
			},
		}

		w := serve(feedRouter(mockService, primitive.NewObjectID()), http.MethodGet, "/activity", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed entity id", func(t *testing.T) {
		w := serve(feedRouter(&mocks.MockFeedService{}, primitive.NewObjectID()), http.MethodGet, "/activity?entityId=x", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFeedHandler_Notifications(t *testing.T) {
	userID := primitive.NewObjectID()
	notificationID := primitive.NewObjectID()

	mockService := &mocks.MockFeedService{
		ListNotificationsFunc: func(ctx context.Context, user primitive.ObjectID, unreadOnly bool, limit int) (*models.NotificationListResponse, error) {
			assert.Equal(t, userID, user)
			assert.True(t, unreadOnly)
			return &models.NotificationListResponse{Items: []models.Notification{{ID: notificationID}}}, nil
		},
		MarkNotificationReadFunc: func(ctx context.Context, user, id primitive.ObjectID) error {
			if id != notificationID {
				return apperrors.ErrNotificationNotFound
			}
			return nil
		},
	}
	router := feedRouter(mockService, userID)

	w := serve(router, http.MethodGet, "/notifications?unread=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodPost, "/notifications/"+notificationID.Hex()+"/read", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodPost, "/notifications/"+primitive.NewObjectID().Hex()+"/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedHandler_RecordActivity(t *testing.T) {
	actor := primitive.NewObjectID()
	entity := primitive.NewObjectID()

	var recorded *models.ActivityLogEntry
	mockService := &mocks.MockFeedService{
		RecordActivityFunc: func(ctx context.Context, entry *models.ActivityLogEntry) error {
			recorded = entry
			return nil
		},
	}
	router := feedRouter(mockService, actor)

	w := serve(router, http.MethodPost, "/internal/feed/activity", models.ActivityLogEntry{
		Service:    "task-service",
		ActorID:    actor,
		Action:     "created task Design",
		EntityType: models.EntityTask,
		EntityID:   entity,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, recorded)
	assert.Equal(t, entity, recorded.EntityID)

	w = serve(router, http.MethodPost, "/internal/feed/activity", models.ActivityLogEntry{Action: "missing ids"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedHandler_RecordNotification(t *testing.T) {
	recipient := primitive.NewObjectID()

	mockService := &mocks.MockFeedService{
		RecordNotificationFunc: func(ctx context.Context, n *models.Notification) error {
			assert.Equal(t, recipient, n.RecipientID)
			return nil
		},
	}
	router := feedRouter(mockService, primitive.NewObjectID())

	w := serve(router, http.MethodPost, "/internal/feed/notifications", models.Notification{
		RecipientID: recipient,
		Type:        models.NotificationTaskAssigned,
		Message:     "You were assigned to Design",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(router, http.MethodPost, "/internal/feed/notifications", models.Notification{Message: "no recipient"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
