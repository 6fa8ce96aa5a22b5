//go:build api

package api

import (
	"net/http"
	"testing"

	"teamtrack/test/api/testserver"
	"teamtrack/test/fixtures"

	"github.com/stretchr/testify/assert"
)

func TestInternalRoutes_RejectPlainUsers(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	leader := testServer.SeedUser(t, "Leader")
	outsider := testServer.SeedUser(t, "Outsider")
	teamID := testServer.CreateTeam(t, leader, "Platform")
	projectID := testServer.CreateProject(t, leader, teamID, "Launch")
	testServer.CreateTask(t, leader, projectID, fixtures.NewTask().AssignedTo(leader.ID).Build())

	tests := []struct {
		name   string
		svc    *testserver.Service
		method string
		path   string
	}{
		{"cascade projects", testServer.Project, http.MethodDelete, "/internal/teams/" + teamID + "/projects"},
		{"cascade tasks", testServer.Task, http.MethodDelete, "/internal/projects/" + projectID + "/tasks"},
		{"unassign", testServer.Task, http.MethodPost, "/internal/teams/" + teamID + "/members/" + leader.ID + "/unassign"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" without service token", func(t *testing.T) {
			resp := testServer.Do(t, tt.svc, tt.method, tt.path, outsider.Token, nil, http.StatusForbidden)
			assert.Equal(t, "service credential required", resp.Error)
		})
	}

	t.Run("cascade projects refuses a live team", func(t *testing.T) {
		resp := testServer.DoSibling(t, testServer.Project, http.MethodDelete,
			"/internal/teams/"+teamID+"/projects", leader.Token, nil, http.StatusConflict)
		assert.Equal(t, "team still exists", resp.Error)
	})

	t.Run("cascade tasks refuses a live project", func(t *testing.T) {
		resp := testServer.DoSibling(t, testServer.Task, http.MethodDelete,
			"/internal/projects/"+projectID+"/tasks", leader.Token, nil, http.StatusConflict)
		assert.Equal(t, "project still exists", resp.Error)
	})

	t.Run("unassign refuses a current member", func(t *testing.T) {
		resp := testServer.DoSibling(t, testServer.Task, http.MethodPost,
			"/internal/teams/"+teamID+"/members/"+leader.ID+"/unassign", leader.Token, nil, http.StatusConflict)
		assert.Equal(t, "user is still a member of the team", resp.Error)
	})

	// The project and its task survive every attempt.
	testServer.StoredProject(t, projectID)
	resp := testServer.Do(t, testServer.Task, http.MethodGet, "/api/v1/projects/"+projectID+"/tasks", leader.Token, nil, http.StatusOK)
	assert.Len(t, resp.Data["items"], 1)
}
