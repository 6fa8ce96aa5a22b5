//go:build api

package api

import (
	"context"
	"net/http"
	"testing"

	"teamtrack/internal/models"
	"teamtrack/test/api/testserver"
	"teamtrack/test/fixtures"
	"teamtrack/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// notificationsOf polls the feed until recipient holds want notifications.
func notificationsOf(t *testing.T, recipient testserver.Actor, want int) []models.Notification {
	t.Helper()

	var got []models.Notification
	require.Eventually(t, func() bool {
		list, err := testServer.NotificationRepo.ListByRecipient(context.Background(), recipient.ObjectID(), false, 50)
		if err != nil {
			return false
		}
		got = list
		return len(list) == want
	}, testutil.WaitTimeout, testutil.WaitTick, "%s should hold %d notifications", recipient.Name, want)
	return got
}

func TestNotifications_AcrossServices(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	leader := testServer.SeedUser(t, "Leader")
	member := testServer.SeedUser(t, "Member")
	teamID := testServer.CreateTeam(t, leader, "Platform")
	testServer.AddMember(t, leader, teamID, member)

	notificationsOf(t, member, 1)

	// Delivered by the Task Service through the team feed endpoint.
	projectID := testServer.CreateProject(t, leader, teamID, "Launch")
	task := testServer.CreateTask(t, leader, projectID, fixtures.NewTask().WithName("Design").AssignedTo(member.ID).Build())
	taskID := testserver.GetIDFromResponse(t, task)

	testServer.Do(t, testServer.Task, http.MethodPost, "/api/v1/tasks/"+taskID+"/comments", leader.Token,
		models.CreateCommentRequest{Text: "Mockups are in review"}, http.StatusCreated)

	list := notificationsOf(t, member, 3)
	types := make([]string, 0, len(list))
	for _, n := range list {
		types = append(types, n.Type)
	}
	assert.ElementsMatch(t, []string{
		models.NotificationTeamInvite,
		models.NotificationTaskAssigned,
		models.NotificationTaskComment,
	}, types)

	// The author is never notified of their own actions.
	leaderNotifications, err := testServer.NotificationRepo.ListByRecipient(context.Background(), leader.ObjectID(), false, 50)
	require.NoError(t, err)
	assert.Empty(t, leaderNotifications)

	t.Run("recipient marks one read", func(t *testing.T) {
		target := list[0].ID.Hex()
		testServer.Do(t, testServer.Team, http.MethodPost, "/api/v1/notifications/"+target+"/read", member.Token, nil, http.StatusOK)

		resp := testServer.Do(t, testServer.Team, http.MethodGet, "/api/v1/notifications?unread=true", member.Token, nil, http.StatusOK)
		items, ok := resp.Data["items"].([]interface{})
		require.True(t, ok)
		assert.Len(t, items, 2)
	})

	t.Run("others cannot mark it", func(t *testing.T) {
		testServer.Do(t, testServer.Team, http.MethodPost, "/api/v1/notifications/"+list[1].ID.Hex()+"/read", leader.Token, nil, http.StatusNotFound)
	})
}

func TestActivity_RecordsMutations(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	leader := testServer.SeedUser(t, "Leader")
	teamID := testServer.CreateTeam(t, leader, "Platform")
	projectID := testServer.CreateProject(t, leader, teamID, "Launch")

	require.Eventually(t, func() bool {
		id, _ := primitive.ObjectIDFromHex(projectID)
		teamOID, _ := primitive.ObjectIDFromHex(teamID)
		entries, err := testServer.ActivityRepo.List(context.Background(), []primitive.ObjectID{teamOID}, &id, 10)
		return err == nil && len(entries) == 1
	}, testutil.WaitTimeout, testutil.WaitTick)

	resp := testServer.Do(t, testServer.Team, http.MethodGet, "/api/v1/activity?entityId="+projectID, leader.Token, nil, http.StatusOK)
	items, ok := resp.Data["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)

	entry := items[0].(map[string]interface{})
	assert.Equal(t, "project-service", entry["service"])
	assert.Equal(t, "created project Launch", entry["action"])
	assert.Equal(t, leader.ID, entry["actorId"])
	assert.Equal(t, teamID, entry["teamId"])

	outsider := testServer.SeedUser(t, "Outsider")
	resp = testServer.Do(t, testServer.Team, http.MethodGet, "/api/v1/activity?entityId="+projectID, outsider.Token, nil, http.StatusOK)
	assert.Empty(t, resp.Data["items"])

	resp = testServer.Do(t, testServer.Team, http.MethodGet, "/api/v1/activity", outsider.Token, nil, http.StatusOK)
	assert.Empty(t, resp.Data["items"])
}

func TestComments_LimitedToMembers(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	leader := testServer.SeedUser(t, "Leader")
	outsider := testServer.SeedUser(t, "Outsider")
	teamID := testServer.CreateTeam(t, leader, "Platform")
	projectID := testServer.CreateProject(t, leader, teamID, "Launch")
	task := testServer.CreateTask(t, leader, projectID, fixtures.NewTask().Build())
	path := "/api/v1/tasks/" + testserver.GetIDFromResponse(t, task) + "/comments"

	resp := testServer.Do(t, testServer.Task, http.MethodPost, path, outsider.Token,
		models.CreateCommentRequest{Text: "drive-by"}, http.StatusForbidden)
	assert.Equal(t, "comments are limited to team members", resp.Error)

	testServer.Do(t, testServer.Task, http.MethodPost, path, leader.Token,
		models.CreateCommentRequest{Text: "first"}, http.StatusCreated)

	resp = testServer.Do(t, testServer.Task, http.MethodGet, path, leader.Token, nil, http.StatusOK)
	items, ok := resp.Data["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}
