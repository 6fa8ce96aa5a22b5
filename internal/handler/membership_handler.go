package handler

import (
	"teamtrack/internal/models"
	"teamtrack/internal/service"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// MembershipHandler handles HTTP requests for team membership operations.
type MembershipHandler struct {
	service service.MembershipServicer
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(service service.MembershipServicer) *MembershipHandler {
	return &MembershipHandler{service: service}
}

// ListMembers godoc
// @Summary      List team members
// @Description  Retrieve all members of a team with user details
// @Tags         members
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response{data=models.MembershipListResponse}
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId}/members [get]
func (h *MembershipHandler) ListMembers(c *gin.Context) {
	teamID, ok := contextTeamID(c)
	if !ok {
		return
	}

	result, err := h.service.ListMembers(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// AddMember godoc
// @Summary      Add team member
// @Description  Add an existing user to the team as a member. Requires leader role.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        teamId  path      string                  true  "Team ID"
// @Param        body    body      models.AddMemberRequest  true  "User to add"
// @Success      201     {object}  response.Response{data=models.Membership}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId}/members [post]
func (h *MembershipHandler) AddMember(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := contextTeamID(c)
	if !ok {
		return
	}

	var req models.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.service.AddMember(c.Request.Context(), userID, teamID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, member)
}

// RemoveMember godoc
// @Summary      Remove team member
// @Description  Remove a member from the team. Their task assignments in the team are cleared in the background. Requires leader role.
// @Tags         members
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId}/members/{userId} [delete]
func (h *MembershipHandler) RemoveMember(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := contextTeamID(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), userID, teamID, targetID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "member removed successfully"})
}

// LeaveTeam godoc
// @Summary      Leave team
// @Description  Leave a team. Leaders cannot leave.
// @Tags         members
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId}/leave [post]
func (h *MembershipHandler) LeaveTeam(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := contextTeamID(c)
	if !ok {
		return
	}

	if err := h.service.LeaveTeam(c.Request.Context(), teamID, userID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "left team successfully"})
}
