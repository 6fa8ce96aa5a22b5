// Package validator plugs the task enums into gin's binding validator and
// renders validation failures for clients.
package validator

import (
	"teamtrack/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validateTaskStatus validates that a string is a known task status
func validateTaskStatus(fl validator.FieldLevel) bool {
	return models.TaskStatus(fl.Field().String()).Valid()
}

// validateTaskPriority validates that a string is a known task priority
func validateTaskPriority(fl validator.FieldLevel) bool {
	return models.TaskPriority(fl.Field().String()).Valid()
}

// Register adds the custom validators to v and names fields by their JSON
// key in validation errors.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("taskstatus", validateTaskStatus)
	_ = v.RegisterValidation("taskpriority", validateTaskPriority)
}

// RegisterCustomValidators registers all custom validators with gin's validator
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}
