package handler

import (
	"teamtrack/internal/models"
	"teamtrack/internal/service"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// TeamHandler serves the team routes of the Team Service plus the internal
// descriptor lookup used by the sibling services.
type TeamHandler struct {
	service service.TeamServicer
}

func NewTeamHandler(service service.TeamServicer) *TeamHandler {
	return &TeamHandler{service: service}
}

// CreateTeam godoc
// @Summary      Create team
// @Description  The caller becomes owner and leader of the new team. Team names are unique.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        body  body      models.CreateTeamRequest  true  "Team details"
// @Success      201   {object}  response.Response{data=models.Team}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Security     BearerAuth
// @Router       /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req models.CreateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, team)
}

// ListTeams godoc
// @Summary      List my teams
// @Description  Teams the caller belongs to, newest first
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        page   query     int  false  "Page number (default: 1)"
// @Param        limit  query     int  false  "Items per page (default: 10, max: 50)"
// @Success      200    {object}  response.Response{data=models.TeamListResponse}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Security     BearerAuth
// @Router       /teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var q pageQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.service.ListTeams(c.Request.Context(), userID, q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// GetTeam godoc
// @Summary      Get team
// @Description  Visible to any member of the team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response{data=models.Team}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := contextTeamID(c)
	if !ok {
		return
	}

	team, err := h.service.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, team)
}

// UpdateTeam godoc
// @Summary      Update team
// @Description  Rename or redescribe a team. Leader only.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamId  path      string                    true  "Team ID"
// @Param        body    body      models.UpdateTeamRequest  true  "Team update details"
// @Success      200     {object}  response.Response{data=models.Team}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId} [put]
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := contextTeamID(c)
	if !ok {
		return
	}

	var req models.UpdateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.service.UpdateTeam(c.Request.Context(), userID, teamID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, team)
}

// DeleteTeam godoc
// @Summary      Delete team
// @Description  Owner only. Memberships go at once; projects, tasks and comments follow through the outbox.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId} [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := contextTeamID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTeam(c.Request.Context(), userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "team deleted successfully", "teamId": teamID.Hex()})
}

// GetTeamDescriptor godoc
// @Summary      Get team with members (internal)
// @Description  Returns a team and its current membership list for sibling services
// @Tags         internal
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response{data=models.TeamDescriptor}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /internal/teams/{teamId} [get]
func (h *TeamHandler) GetTeamDescriptor(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}

	desc, err := h.service.GetTeamDescriptor(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, desc)
}
