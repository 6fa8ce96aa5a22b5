package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership role constants.
const (
	RoleLeader = "leader"
	RoleMember = "member"
)

// Membership represents a user's membership in a team.
type Membership struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	TeamID   primitive.ObjectID `json:"teamId" bson:"teamId" example:"507f1f77bcf86cd799439012"`
	UserID   primitive.ObjectID `json:"userId" bson:"userId" example:"507f1f77bcf86cd799439013"`
	Role     string             `json:"role" bson:"role" example:"member"`
	JoinedAt time.Time          `json:"joinedAt" bson:"joinedAt" example:"2024-01-15T09:30:00Z"`
}

// MembershipWithUser is a membership with expanded user information.
type MembershipWithUser struct {
	ID       primitive.ObjectID `json:"id" example:"507f1f77bcf86cd799439011"`
	TeamID   primitive.ObjectID `json:"teamId" example:"507f1f77bcf86cd799439012"`
	UserID   primitive.ObjectID `json:"userId" example:"507f1f77bcf86cd799439013"`
	User     *UserSummary       `json:"user,omitempty"`
	Role     string             `json:"role" example:"member"`
	JoinedAt time.Time          `json:"joinedAt" example:"2024-01-15T09:30:00Z"`
}

// AddMemberRequest is the payload for inviting a user into a team.
type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required,len=24,hexadecimal" example:"507f1f77bcf86cd799439013"`
}

// MembershipListResponse is the response for listing team members.
type MembershipListResponse struct {
	Items []MembershipWithUser `json:"items"`
}
