package handler

import (
	"teamtrack/internal/validator"
	"teamtrack/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type pageQuery struct {
	Page  int `form:"page,default=1" json:"page" binding:"min=1"`
	Limit int `form:"limit,default=10" json:"limit" binding:"min=1,max=50"`
}

// feedQuery filters the activity log and notification feeds. A zero Limit
// lets the service pick its default.
type feedQuery struct {
	EntityID string `form:"entityId" json:"entityId" binding:"omitempty,len=24,hexadecimal"`
	Unread   bool   `form:"unread" json:"unread"`
	Limit    int    `form:"limit" json:"limit" binding:"min=0,max=200"`
}

func (q feedQuery) entity() *primitive.ObjectID {
	if q.EntityID == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(q.EntityID)
	if err != nil {
		return nil
	}
	return &id
}

func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.BadRequest(c, validator.Describe(err))
		return false
	}
	return true
}
