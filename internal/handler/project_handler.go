package handler

import (
	"teamtrack/internal/models"
	"teamtrack/internal/service"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service service.ProjectServicer
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service service.ProjectServicer) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProject godoc
// @Summary      Create a project
// @Description  Create a project in a team the authenticated user belongs to
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      models.CreateProjectRequest  true  "Project details"
// @Success      201   {object}  response.Response{data=models.Project}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Security     BearerAuth
// @Router       /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.service.CreateProject(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, project)
}

// ListProjects godoc
// @Summary      List team projects
// @Description  Retrieve the projects of a team
// @Tags         projects
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response{data=models.ProjectListResponse}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId}/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}

	result, err := h.service.ListProjects(c.Request.Context(), userID, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// GetProject godoc
// @Summary      Get project
// @Description  Retrieve a project, including its derived progress
// @Tags         projects
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  response.Response{data=models.Project}
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      503        {object}  response.Response
// @Security     BearerAuth
// @Router       /projects/{projectId} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	project, err := h.service.GetProject(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, project)
}

// UpdateProject godoc
// @Summary      Update project
// @Description  Update a project. Requires leader role or being the project creator.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        projectId  path      string                       true  "Project ID"
// @Param        body       body      models.UpdateProjectRequest  true  "Project update"
// @Success      200        {object}  response.Response{data=models.Project}
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      422        {object}  response.Response
// @Failure      503        {object}  response.Response
// @Security     BearerAuth
// @Router       /projects/{projectId} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.service.UpdateProject(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, project)
}

// DeleteProject godoc
// @Summary      Delete project
// @Description  Delete a project. Its tasks are removed in the background.
// @Tags         projects
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      503        {object}  response.Response
// @Security     BearerAuth
// @Router       /projects/{projectId} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), userID, projectID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "project deleted successfully"})
}

// GetProjectDescriptor godoc
// @Summary      Get project (internal)
// @Description  Project descriptor for sibling services, without authorization
// @Tags         internal
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  response.Response{data=models.Project}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Security     BearerAuth
// @Router       /internal/projects/{projectId} [get]
func (h *ProjectHandler) GetProjectDescriptor(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	project, err := h.service.GetProjectDescriptor(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, project)
}

// SetProgress godoc
// @Summary      Push project progress (internal)
// @Description  Stores a recalculated progress value if its version is newer than the stored one
// @Tags         internal
// @Accept       json
// @Produce      json
// @Param        projectId  path      string                     true  "Project ID"
// @Param        body       body      models.SetProgressRequest  true  "Progress and version"
// @Success      200        {object}  response.Response{data=models.ProgressResult}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      422        {object}  response.Response
// @Security     BearerAuth
// @Router       /internal/projects/{projectId}/progress [put]
func (h *ProjectHandler) SetProgress(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	var req models.SetProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.SetProgress(c.Request.Context(), projectID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// ProjectIDsByTeam godoc
// @Summary      List project ids of a team (internal)
// @Tags         internal
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response{data=models.ProjectIDListResponse}
// @Failure      400     {object}  response.Response
// @Security     BearerAuth
// @Router       /internal/teams/{teamId}/projects [get]
func (h *ProjectHandler) ProjectIDsByTeam(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}

	ids, err := h.service.ProjectIDsByTeam(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, models.ProjectIDListResponse{Items: ids})
}

// CascadeDeleteByTeam godoc
// @Summary      Delete a team's projects (internal)
// @Description  Idempotent delete-by-parent. Repeating it returns a zero count.
// @Tags         internal
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response{data=models.CascadeResult}
// @Failure      400     {object}  response.Response
// @Security     BearerAuth
// @Router       /internal/teams/{teamId}/projects [delete]
func (h *ProjectHandler) CascadeDeleteByTeam(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}

	result, err := h.service.CascadeDeleteByTeam(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}
