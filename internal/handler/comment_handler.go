package handler

import (
	"teamtrack/internal/models"
	"teamtrack/internal/service"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// CommentHandler handles HTTP requests for task comments.
type CommentHandler struct {
	service service.CommentServicer
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service service.CommentServicer) *CommentHandler {
	return &CommentHandler{service: service}
}

// AddComment godoc
// @Summary      Comment on a task
// @Description  Only current members of the task's team may comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        taskId  path      string                       true  "Task ID"
// @Param        body    body      models.CreateCommentRequest  true  "Comment"
// @Success      201     {object}  response.Response{data=models.Comment}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks/{taskId}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), userID, taskID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, comment)
}

// ListComments godoc
// @Summary      List task comments
// @Description  Comments of a task, oldest first
// @Tags         comments
// @Produce      json
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {object}  response.Response{data=models.CommentListResponse}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks/{taskId}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	result, err := h.service.ListComments(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}
