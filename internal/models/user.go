// Package models defines data structures for the application.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an entry of the read-only user directory owned by the Team Service.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Email     string             `json:"email" bson:"email" example:"user@example.com"`
	Name      string             `json:"name" bson:"name" example:"John Doe"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
}

// UserSummary is a minimal user representation for embedding.
type UserSummary struct {
	ID    primitive.ObjectID `json:"id" example:"507f1f77bcf86cd799439013"`
	Email string             `json:"email" example:"user@example.com"`
	Name  string             `json:"name" example:"John Doe"`
}

// Summary returns the embeddable form of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, Name: u.Name}
}

// ResolveUsersRequest is the payload for batch user resolution.
type ResolveUsersRequest struct {
	IDs []string `json:"ids" binding:"required,max=200,dive,len=24,hexadecimal" example:"507f1f77bcf86cd799439011"`
}

// ResolveUsersResponse is the response for batch user resolution.
type ResolveUsersResponse struct {
	Items []UserSummary `json:"items"`
}
