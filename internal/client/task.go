package client

import (
	"context"
	"net/http"

	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskClient calls the Task Service.
type TaskClient struct {
	*Client
}

// NewTaskClient wraps c for Task Service calls.
func NewTaskClient(c *Client) *TaskClient {
	return &TaskClient{Client: c}
}

// DeleteTasksByProject deletes every task of the project.
func (c *TaskClient) DeleteTasksByProject(ctx context.Context, projectID primitive.ObjectID) (*models.CascadeResult, error) {
	var result models.CascadeResult
	if err := c.do(ctx, http.MethodDelete, "/internal/projects/"+projectID.Hex()+"/tasks", nil, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// UnassignUserInTeam clears userID from every task in the team's projects.
func (c *TaskClient) UnassignUserInTeam(ctx context.Context, teamID, userID primitive.ObjectID) (*models.UnassignResult, error) {
	var result models.UnassignResult
	path := "/internal/teams/" + teamID.Hex() + "/members/" + userID.Hex() + "/unassign"
	if err := c.do(ctx, http.MethodPost, path, nil, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}
