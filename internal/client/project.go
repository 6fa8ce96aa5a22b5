package client

import (
	"context"
	"net/http"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectClient calls the Project Service.
type ProjectClient struct {
	*Client
}

// NewProjectClient wraps c for Project Service calls.
func NewProjectClient(c *Client) *ProjectClient {
	return &ProjectClient{Client: c}
}

// GetProject returns the project descriptor.
func (c *ProjectClient) GetProject(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := c.do(ctx, http.MethodGet, "/internal/projects/"+projectID.Hex(), nil, &p, apperrors.ErrProjectNotFound); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetProgress pushes a recalculated progress value. version 0 is unversioned.
func (c *ProjectClient) SetProgress(ctx context.Context, projectID primitive.ObjectID, progress int, version int64) (*models.ProgressResult, error) {
	req := models.SetProgressRequest{Progress: &progress, Version: version}
	var result models.ProgressResult
	if err := c.do(ctx, http.MethodPut, "/internal/projects/"+projectID.Hex()+"/progress", req, &result, apperrors.ErrProjectNotFound); err != nil {
		return nil, err
	}
	return &result, nil
}

// ProjectIDsByTeam lists the ids of the team's projects.
func (c *ProjectClient) ProjectIDsByTeam(ctx context.Context, teamID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var resp models.ProjectIDListResponse
	if err := c.do(ctx, http.MethodGet, "/internal/teams/"+teamID.Hex()+"/projects", nil, &resp, nil); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// DeleteProjectsByTeam deletes every project of the team.
func (c *ProjectClient) DeleteProjectsByTeam(ctx context.Context, teamID primitive.ObjectID) (*models.CascadeResult, error) {
	var result models.CascadeResult
	if err := c.do(ctx, http.MethodDelete, "/internal/teams/"+teamID.Hex()+"/projects", nil, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}
