package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project represents a project owned by a team.
//
// Progress is derived: it is the rounded mean of the project's task progress
// values, pushed by the Task Service. ProgressVersion is the version of the
// last accepted push.
type Project struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	TeamID          primitive.ObjectID `json:"teamId" bson:"teamId" example:"507f1f77bcf86cd799439012"`
	Name            string             `json:"name" bson:"name" example:"Launch"`
	Description     string             `json:"description" bson:"description" example:"Public launch of v2"`
	StartDate       time.Time          `json:"startDate" bson:"startDate" example:"2024-01-01T00:00:00Z"`
	EndDate         time.Time          `json:"endDate" bson:"endDate" example:"2024-06-30T00:00:00Z"`
	Progress        int                `json:"progress" bson:"progress" example:"40"`
	ProgressVersion int64              `json:"progressVersion" bson:"progressVersion" example:"12"`
	CreatedBy       primitive.ObjectID `json:"createdBy" bson:"createdBy" example:"507f1f77bcf86cd799439013"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T09:30:00Z"`
}

// Covers reports whether the [start, due] range lies inside the project window.
func (p *Project) Covers(start, due time.Time) bool {
	return !start.Before(p.StartDate) && !due.After(p.EndDate)
}

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	TeamID      string    `json:"teamId" binding:"required,len=24,hexadecimal" example:"507f1f77bcf86cd799439012"`
	Name        string    `json:"name" binding:"required,min=2,max=100" example:"Launch"`
	Description string    `json:"description" binding:"omitempty,max=1000" example:"Public launch of v2"`
	StartDate   time.Time `json:"startDate" binding:"required" example:"2024-01-01T00:00:00Z"`
	EndDate     time.Time `json:"endDate" binding:"required" example:"2024-06-30T00:00:00Z"`
}

// UpdateProjectRequest is the payload for updating a project.
type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=2,max=100" example:"Launch v2"`
	Description *string    `json:"description" binding:"omitempty,max=1000" example:"Updated description"`
	StartDate   *time.Time `json:"startDate" example:"2024-01-01T00:00:00Z"`
	EndDate     *time.Time `json:"endDate" example:"2024-07-31T00:00:00Z"`
}

// ProjectListResponse is the response for listing projects.
type ProjectListResponse struct {
	Items []Project `json:"items"`
}

// ProjectIDListResponse lists the ids of a team's projects.
type ProjectIDListResponse struct {
	Items []primitive.ObjectID `json:"items"`
}

// SetProgressRequest is the payload the Task Service pushes after a
// recalculation. Version 0 means unversioned (last write wins).
type SetProgressRequest struct {
	Progress *int  `json:"progress" binding:"required,min=0,max=100" example:"40"`
	Version  int64 `json:"version" binding:"min=0" example:"12"`
}

// ProgressState tells whether a pushed progress value was applied.
type ProgressState string

// Progress states.
const (
	ProgressFresh ProgressState = "fresh"
	ProgressStale ProgressState = "stale"
)

// ProgressResult acknowledges a progress push.
type ProgressResult struct {
	State    ProgressState `json:"state" example:"fresh"`
	Progress int           `json:"progress" example:"40"`
	Version  int64         `json:"version" example:"12"`
}

// Applied reports whether the push was stored.
func (r *ProgressResult) Applied() bool {
	return r != nil && r.State == ProgressFresh
}

// CascadeResult reports how many children a delete-by-parent call removed.
type CascadeResult struct {
	Deleted int64 `json:"deleted" example:"3"`
}
