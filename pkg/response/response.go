// Package response writes the JSON envelope shared by every endpoint of the
// three services: {"success": bool, "data": ..., "error": "..."}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope. Data is set on success, Error on failure.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 envelope carrying data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created writes a 201 envelope carrying data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// Error writes a failed envelope with the given status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Error: message})
}

func BadRequest(c *gin.Context, message string)   { Error(c, http.StatusBadRequest, message) }
func Unauthorized(c *gin.Context, message string) { Error(c, http.StatusUnauthorized, message) }
func Forbidden(c *gin.Context, message string)    { Error(c, http.StatusForbidden, message) }
func NotFound(c *gin.Context, message string)     { Error(c, http.StatusNotFound, message) }
func Conflict(c *gin.Context, message string)     { Error(c, http.StatusConflict, message) }

// UnprocessableEntity is used for well-formed requests that break a domain
// rule, such as an assignee outside the team.
func UnprocessableEntity(c *gin.Context, message string) {
	Error(c, http.StatusUnprocessableEntity, message)
}

// ServiceUnavailable reports that a sibling service could not be reached.
func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message)
}

// InternalError hides the cause behind a fixed message.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal server error")
}
