//go:build api

package testserver

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"teamtrack/internal/models"
	"teamtrack/pkg/auth"
	"teamtrack/test/fixtures"
	"teamtrack/test/testutil"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor is a seeded directory user with a valid access token.
type Actor struct {
	ID    string
	Name  string
	Token string
}

// ObjectID returns the actor id as an ObjectID.
func (a Actor) ObjectID() primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(a.ID)
	return id
}

// SeedUser inserts a user into the directory and issues a token for them.
// Users are owned by the Team Service and have no public create endpoint.
func (ts *TestServer) SeedUser(t *testing.T, name string) Actor {
	t.Helper()

	user := fixtures.NewUser().WithName(name).BuildPtr()
	require.NoError(t, ts.UserRepo.Create(context.Background(), user))

	token, err := ts.JWTManager.GenerateToken(user.ID.Hex())
	require.NoError(t, err)

	return Actor{ID: user.ID.Hex(), Name: name, Token: token}
}

// Do sends a request to the router of svc and returns the decoded envelope
// after asserting the status code.
func (ts *TestServer) Do(t *testing.T, svc *Service, method, path, token string, body interface{}, wantStatus int) testutil.APIResponse {
	t.Helper()

	w := testutil.MakeAuthRequest(t, svc.Router, method, path, token, body)
	require.Equal(t, wantStatus, w.Code, "%s %s: %s", method, path, w.Body.String())
	return testutil.ParseAPIResponse(t, w)
}

// DoSibling is Do for /internal routes, sent the way a sibling service
// sends them.
func (ts *TestServer) DoSibling(t *testing.T, svc *Service, method, path, token string, body interface{}, wantStatus int) testutil.APIResponse {
	t.Helper()

	headers := map[string]string{auth.ServiceTokenHeader: TestServiceToken}
	w := testutil.MakeHeaderRequest(t, svc.Router, method, path, token, headers, body)
	require.Equal(t, wantStatus, w.Code, "%s %s: %s", method, path, w.Body.String())
	return testutil.ParseAPIResponse(t, w)
}

// CreateTeam creates a team led by leader and returns its id.
func (ts *TestServer) CreateTeam(t *testing.T, leader Actor, name string) string {
	t.Helper()

	resp := ts.Do(t, ts.Team, http.MethodPost, "/api/v1/teams", leader.Token,
		models.CreateTeamRequest{Name: name}, http.StatusCreated)
	return GetIDFromResponse(t, resp.Data)
}

// AddMember adds user to the team as a regular member.
func (ts *TestServer) AddMember(t *testing.T, leader Actor, teamID string, user Actor) {
	t.Helper()

	ts.Do(t, ts.Team, http.MethodPost, "/api/v1/teams/"+teamID+"/members", leader.Token,
		models.AddMemberRequest{UserID: user.ID}, http.StatusCreated)
}

// CreateProject creates a project in the team and returns its id.
func (ts *TestServer) CreateProject(t *testing.T, actor Actor, teamID, name string) string {
	t.Helper()

	resp := ts.Do(t, ts.Project, http.MethodPost, "/api/v1/projects", actor.Token,
		fixtures.NewProject(teamID).WithName(name).Build(), http.StatusCreated)
	return GetIDFromResponse(t, resp.Data)
}

// CreateTask creates a task in the project and returns the response data.
func (ts *TestServer) CreateTask(t *testing.T, actor Actor, projectID string, req models.CreateTaskRequest) map[string]interface{} {
	t.Helper()

	resp := ts.Do(t, ts.Task, http.MethodPost, "/api/v1/projects/"+projectID+"/tasks", actor.Token, req, http.StatusCreated)
	require.True(t, resp.Success, "create task response should be successful")
	return resp.Data
}

// StoredProject reads a project straight from the Project Service database.
func (ts *TestServer) StoredProject(t *testing.T, projectID string) *models.Project {
	t.Helper()

	id, err := primitive.ObjectIDFromHex(projectID)
	require.NoError(t, err)
	project, err := ts.ProjectRepo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return project
}

// WaitForProject polls the stored project until cond holds. Progress is
// pushed by the Task Service outbox, so it lands after the response.
func (ts *TestServer) WaitForProject(t *testing.T, projectID string, cond func(p *models.Project) bool) *models.Project {
	t.Helper()

	id, err := primitive.ObjectIDFromHex(projectID)
	require.NoError(t, err)

	var last *models.Project
	require.Eventually(t, func() bool {
		project, err := ts.ProjectRepo.FindByID(context.Background(), id)
		if err != nil {
			return false
		}
		last = project
		return cond(project)
	}, testutil.WaitTimeout, testutil.WaitTick, "project %s never reached the expected state", projectID)
	return last
}

// ParseResponseData is a generic helper to parse response data into a specific type.
func ParseResponseData[T any](t *testing.T, data map[string]interface{}) T {
	t.Helper()

	jsonBytes, err := json.Marshal(data)
	require.NoError(t, err, "failed to marshal response data")

	var result T
	err = json.Unmarshal(jsonBytes, &result)
	require.NoError(t, err, "failed to unmarshal response data")

	return result
}

// GetIDFromResponse extracts the id from response data.
func GetIDFromResponse(t *testing.T, data map[string]interface{}) string {
	t.Helper()

	id, ok := data["id"].(string)
	require.True(t, ok, "response data should carry a string id, got %v", data)
	return id
}
