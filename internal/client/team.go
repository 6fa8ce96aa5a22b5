package client

import (
	"context"
	"net/http"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"
	"teamtrack/internal/sideeffect"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamClient calls the Team Service.
type TeamClient struct {
	*Client
}

// NewTeamClient wraps c for Team Service calls.
func NewTeamClient(c *Client) *TeamClient {
	return &TeamClient{Client: c}
}

// GetTeam returns the team together with its current membership list.
func (c *TeamClient) GetTeam(ctx context.Context, teamID primitive.ObjectID) (*models.TeamDescriptor, error) {
	var desc models.TeamDescriptor
	if err := c.do(ctx, http.MethodGet, "/internal/teams/"+teamID.Hex(), nil, &desc, apperrors.ErrTeamNotFound); err != nil {
		return nil, err
	}
	return &desc, nil
}

// ResolveUsers returns the directory entries of ids. Unknown ids are omitted.
func (c *TeamClient) ResolveUsers(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	req := models.ResolveUsersRequest{IDs: make([]string, len(ids))}
	for i, id := range ids {
		req.IDs[i] = id.Hex()
	}
	var resp models.ResolveUsersResponse
	if err := c.do(ctx, http.MethodPost, "/internal/users/resolve", req, &resp, nil); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// LogActivity posts an activity entry to the Team Service feed.
func (c *TeamClient) LogActivity(ctx context.Context, entry *models.ActivityLogEntry) error {
	return c.do(ctx, http.MethodPost, "/internal/feed/activity", entry, nil, nil)
}

// Notify posts a notification to the Team Service feed.
func (c *TeamClient) Notify(ctx context.Context, notification *models.Notification) error {
	return c.do(ctx, http.MethodPost, "/internal/feed/notifications", notification, nil, nil)
}

var _ sideeffect.Sink = (*TeamClient)(nil)
