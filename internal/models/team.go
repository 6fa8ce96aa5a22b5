package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team represents a team in the system.
type Team struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Name        string             `json:"name" bson:"name" example:"Engineering Team"`
	Description string             `json:"description" bson:"description" example:"Our engineering team workspace"`
	OwnerID     primitive.ObjectID `json:"ownerId" bson:"ownerId" example:"507f1f77bcf86cd799439012"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T09:30:00Z"`
}

// CreateTeamRequest is the payload for creating a team.
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100" example:"Engineering Team"`
	Description string `json:"description" binding:"omitempty,max=500" example:"Our engineering team workspace"`
}

// UpdateTeamRequest is the payload for updating a team.
type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100" example:"Updated Team Name"`
	Description *string `json:"description" binding:"omitempty,max=500" example:"Updated description"`
}

// TeamListResponse is the response for listing teams.
type TeamListResponse struct {
	Items      []Team     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// TeamDescriptor is a team together with its current membership list.
// Sibling services fetch it to make authorization and assignment decisions.
type TeamDescriptor struct {
	Team    Team         `json:"team"`
	Members []Membership `json:"members"`
}

// Membership returns the membership of userID, if any.
func (d *TeamDescriptor) Membership(userID primitive.ObjectID) (*Membership, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Members {
		if d.Members[i].UserID == userID {
			return &d.Members[i], true
		}
	}
	return nil, false
}

// HasMember reports whether userID currently belongs to the team.
func (d *TeamDescriptor) HasMember(userID primitive.ObjectID) bool {
	_, ok := d.Membership(userID)
	return ok
}
