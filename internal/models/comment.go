package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a note left on a task by a team member.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	TaskID    primitive.ObjectID `json:"taskId" bson:"taskId" example:"507f1f77bcf86cd799439012"`
	ProjectID primitive.ObjectID `json:"projectId" bson:"projectId" example:"507f1f77bcf86cd799439014"`
	AuthorID  primitive.ObjectID `json:"authorId" bson:"authorId" example:"507f1f77bcf86cd799439013"`
	Text      string             `json:"text" bson:"text" example:"Mockups are in review"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
}

// CreateCommentRequest is the payload for commenting on a task.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000" example:"Mockups are in review"`
}

// CommentListResponse is the response for listing comments.
type CommentListResponse struct {
	Items []Comment `json:"items"`
}
