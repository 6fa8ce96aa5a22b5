package validator

import (
	"errors"
	"testing"

	"teamtrack/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type statusHolder struct {
	Status models.TaskStatus `validate:"omitempty,taskstatus"`
}

type priorityHolder struct {
	Priority *models.TaskPriority `validate:"omitempty,taskpriority"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestTaskStatusValidator(t *testing.T) {
	v := newValidate()

	tests := []struct {
		name   string
		status models.TaskStatus
		valid  bool
	}{
		{"to do", "To Do", true},
		{"in progress", "In Progress", true},
		{"review", "Review", true},
		{"done", "Done", true},
		{"empty is omitted", "", true},
		{"lowercase", "done", false},
		{"unknown", "Blocked", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(statusHolder{Status: tt.status})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTaskPriorityValidator(t *testing.T) {
	v := newValidate()

	high := models.PriorityHigh
	urgent := models.TaskPriority("Urgent")

	assert.NoError(t, v.Struct(priorityHolder{}))
	assert.NoError(t, v.Struct(priorityHolder{Priority: &high}))
	assert.Error(t, v.Struct(priorityHolder{Priority: &urgent}))
}

type describeRequest struct {
	Name     string            `json:"name" validate:"required,min=2"`
	Progress *int              `json:"progress" validate:"omitempty,max=100"`
	Status   models.TaskStatus `json:"status" validate:"omitempty,taskstatus"`
	UserID   string            `json:"userId" validate:"omitempty,len=24,hexadecimal"`
}

func TestDescribe(t *testing.T) {
	v := newValidate()
	over := 120

	tests := []struct {
		name string
		req  describeRequest
		want string
	}{
		{"missing name", describeRequest{}, "name is required"},
		{"short name", describeRequest{Name: "a"}, "name must be at least 2 characters"},
		{"progress above range", describeRequest{Name: "Design", Progress: &over}, "progress must be at most 100"},
		{"unknown status", describeRequest{Name: "Design", Status: "Blocked"}, "status must be one of To Do, In Progress, Review, Done"},
		{"bad id", describeRequest{Name: "Design", UserID: "abc"}, "userId must be a 24 character hex id"},
		{
			"several failures are joined",
			describeRequest{Name: "a", Status: "Blocked"},
			"name must be at least 2 characters; status must be one of To Do, In Progress, Review, Done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(v.Struct(tt.req)))
		})
	}
}

func TestDescribe_PassesOtherErrorsThrough(t *testing.T) {
	assert.Equal(t, "unexpected EOF", Describe(errors.New("unexpected EOF")))
}
