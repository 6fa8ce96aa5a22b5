package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity types referenced by activity entries and notifications.
const (
	EntityTeam       = "team"
	EntityMembership = "membership"
	EntityProject    = "project"
	EntityTask       = "task"
	EntityComment    = "comment"
)

// Notification types.
const (
	NotificationTeamInvite     = "team_invite"
	NotificationTeamRemoved    = "team_removed"
	NotificationTaskAssigned   = "task_assigned"
	NotificationTaskUnassigned = "task_unassigned"
	NotificationTaskComment    = "task_comment"
)

// ActivityLogEntry is an append-only record of a mutation. It is written as a
// side effect and never read back to make a decision.
type ActivityLogEntry struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Service    string              `json:"service" bson:"service" example:"task-service"`
	ActorID    primitive.ObjectID  `json:"actorId" bson:"actorId" example:"507f1f77bcf86cd799439013"`
	Action     string              `json:"action" bson:"action" example:"updated task Design"`
	EntityType string              `json:"entityType" bson:"entityType" example:"task"`
	EntityID   primitive.ObjectID  `json:"entityId" bson:"entityId" example:"507f1f77bcf86cd799439012"`
	TeamID     *primitive.ObjectID `json:"teamId,omitempty" bson:"teamId,omitempty" example:"507f1f77bcf86cd799439014"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
}

// Notification is a message queued for a single recipient.
type Notification struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	RecipientID primitive.ObjectID `json:"recipientId" bson:"recipientId" example:"507f1f77bcf86cd799439013"`
	Type        string             `json:"type" bson:"type" example:"task_assigned"`
	Message     string             `json:"message" bson:"message" example:"You were assigned to Design"`
	EntityType  string             `json:"entityType" bson:"entityType" example:"task"`
	EntityID    primitive.ObjectID `json:"entityId" bson:"entityId" example:"507f1f77bcf86cd799439012"`
	Read        bool               `json:"read" bson:"read" example:"false"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
}

// ActivityListResponse is the response for listing activity entries.
type ActivityListResponse struct {
	Items []ActivityLogEntry `json:"items"`
}

// NotificationListResponse is the response for listing notifications.
type NotificationListResponse struct {
	Items []Notification `json:"items"`
}
