package handler

import (
	"teamtrack/internal/models"
	"teamtrack/internal/service"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service service.TaskServicer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service service.TaskServicer) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTask godoc
// @Summary      Create a task
// @Description  Create a task in a project. Requires leader role or being the project creator.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        projectId  path      string                    true  "Project ID"
// @Param        body       body      models.CreateTaskRequest  true  "Task details"
// @Success      201        {object}  response.Response{data=models.Task}
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      422        {object}  response.Response
// @Failure      503        {object}  response.Response
// @Security     BearerAuth
// @Router       /projects/{projectId}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, task)
}

// ListTasks godoc
// @Summary      List project tasks
// @Description  Retrieve the tasks of a project with assignee details
// @Tags         tasks
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  response.Response{data=models.TaskListResponse}
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      503        {object}  response.Response
// @Security     BearerAuth
// @Router       /projects/{projectId}/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	result, err := h.service.ListTasks(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// GetTask godoc
// @Summary      Get task
// @Tags         tasks
// @Produce      json
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {object}  response.Response{data=models.Task}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks/{taskId} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, task)
}

// UpdateTask godoc
// @Summary      Update task
// @Description  Partially update a task. Each group of fields (details, status/progress, priority/dates, assignee) is authorized separately. Setting status Done forces progress 100 and To Do forces 0.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId  path      string                    true  "Task ID"
// @Param        body    body      models.UpdateTaskRequest  true  "Fields to update"
// @Success      200     {object}  response.Response{data=models.Task}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      422     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks/{taskId} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.service.UpdateTask(c.Request.Context(), userID, taskID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, task)
}

// DeleteTask godoc
// @Summary      Delete task
// @Description  Delete a task and its comments
// @Tags         tasks
// @Produce      json
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "task deleted successfully"})
}

// CascadeDeleteByProject godoc
// @Summary      Delete a project's tasks (internal)
// @Description  Idempotent delete-by-parent. Repeating it returns a zero count.
// @Tags         internal
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  response.Response{data=models.CascadeResult}
// @Failure      400        {object}  response.Response
// @Security     BearerAuth
// @Router       /internal/projects/{projectId}/tasks [delete]
func (h *TaskHandler) CascadeDeleteByProject(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	result, err := h.service.CascadeDeleteByProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// UnassignUserInTeam godoc
// @Summary      Unassign a former member (internal)
// @Description  Clears the user's assignments in the team's projects without changing progress
// @Tags         internal
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response{data=models.UnassignResult}
// @Failure      400     {object}  response.Response
// @Security     BearerAuth
// @Router       /internal/teams/{teamId}/members/{userId}/unassign [post]
func (h *TaskHandler) UnassignUserInTeam(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	result, err := h.service.UnassignUserInTeam(c.Request.Context(), teamID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}
