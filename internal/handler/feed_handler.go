package handler

import (
	"teamtrack/internal/models"
	"teamtrack/internal/service"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedHandler serves the activity log and notification inbox.
type FeedHandler struct {
	service service.FeedServicer
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(service service.FeedServicer) *FeedHandler {
	return &FeedHandler{service: service}
}

// ListActivity godoc
// @Summary      List activity
// @Description  Newest activity entries of the caller's teams, optionally for one entity
// @Tags         feed
// @Produce      json
// @Param        entityId  query     string  false  "Entity ID"
// @Param        limit     query     int     false  "Max entries (default: 50, max: 200)"
// @Success      200       {object}  response.Response{data=models.ActivityListResponse}
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /activity [get]
func (h *FeedHandler) ListActivity(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var q feedQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.service.ListActivity(c.Request.Context(), userID, q.entity(), q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// ListNotifications godoc
// @Summary      List notifications
// @Description  Newest notifications of the authenticated user
// @Tags         feed
// @Produce      json
// @Param        unread  query     bool  false  "Only unread notifications"
// @Param        limit   query     int   false  "Max entries (default: 50, max: 200)"
// @Success      200     {object}  response.Response{data=models.NotificationListResponse}
// @Failure      401     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *FeedHandler) ListNotifications(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var q feedQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.service.ListNotifications(c.Request.Context(), userID, q.Unread, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// MarkNotificationRead godoc
// @Summary      Mark notification read
// @Description  Mark one of the authenticated user's notifications as read
// @Tags         feed
// @Produce      json
// @Param        notificationId  path      string  true  "Notification ID"
// @Success      200             {object}  response.Response
// @Failure      400             {object}  response.Response
// @Failure      401             {object}  response.Response
// @Failure      404             {object}  response.Response
// @Failure      500             {object}  response.Response
// @Security     BearerAuth
// @Router       /notifications/{notificationId}/read [post]
func (h *FeedHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	notificationID, ok := pathID(c, "notificationId")
	if !ok {
		return
	}

	if err := h.service.MarkNotificationRead(c.Request.Context(), userID, notificationID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "notification marked as read"})
}

// RecordActivity godoc
// @Summary      Append activity (internal)
// @Description  Appends an activity entry posted by a sibling service
// @Tags         internal
// @Accept       json
// @Produce      json
// @Param        body  body      models.ActivityLogEntry  true  "Activity entry"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Security     BearerAuth
// @Router       /internal/feed/activity [post]
func (h *FeedHandler) RecordActivity(c *gin.Context) {
	var entry models.ActivityLogEntry
	if !bindJSON(c, &entry) {
		return
	}
	if entry.ActorID.IsZero() || entry.EntityID.IsZero() || entry.Action == "" {
		response.BadRequest(c, "actorId, entityId and action are required")
		return
	}
	entry.ID = primitive.NilObjectID

	if err := h.service.RecordActivity(c.Request.Context(), &entry); err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, gin.H{"id": entry.ID})
}

// RecordNotification godoc
// @Summary      Enqueue notification (internal)
// @Description  Stores a notification posted by a sibling service
// @Tags         internal
// @Accept       json
// @Produce      json
// @Param        body  body      models.Notification  true  "Notification"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Security     BearerAuth
// @Router       /internal/feed/notifications [post]
func (h *FeedHandler) RecordNotification(c *gin.Context) {
	var notification models.Notification
	if !bindJSON(c, &notification) {
		return
	}
	if notification.RecipientID.IsZero() || notification.Type == "" {
		response.BadRequest(c, "recipientId and type are required")
		return
	}
	notification.ID = primitive.NilObjectID

	if err := h.service.RecordNotification(c.Request.Context(), &notification); err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, gin.H{"id": notification.ID})
}
