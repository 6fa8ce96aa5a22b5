// Package fixtures provides test data builders for the API test suites.
package fixtures

import (
	"fmt"
	"time"

	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ===== User Fixtures =====

// UserBuilder provides fluent API for building directory users.
type UserBuilder struct {
	user models.User
}

// NewUser creates a new UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: models.User{
			ID:        primitive.NewObjectID(),
			Name:      "Test User",
			Email:     fmt.Sprintf("test-%s@example.com", primitive.NewObjectID().Hex()[:8]),
			CreatedAt: time.Now(),
		},
	}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

func (b *UserBuilder) BuildPtr() *models.User {
	return &b.user
}

// ===== Project Fixtures =====

// ProjectBuilder builds create-project payloads with a wide date window.
type ProjectBuilder struct {
	req models.CreateProjectRequest
}

// NewProject creates a ProjectBuilder for the given team.
func NewProject(teamID string) *ProjectBuilder {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &ProjectBuilder{
		req: models.CreateProjectRequest{
			TeamID:      teamID,
			Name:        "Test Project",
			Description: "A test project",
			StartDate:   start,
			EndDate:     start.AddDate(1, 0, 0),
		},
	}
}

func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.req.Name = name
	return b
}

func (b *ProjectBuilder) WithDates(start, end time.Time) *ProjectBuilder {
	b.req.StartDate = start
	b.req.EndDate = end
	return b
}

func (b *ProjectBuilder) Build() models.CreateProjectRequest {
	return b.req
}

// ===== Task Fixtures =====

// TaskBuilder builds create-task payloads. The default dates fall inside
// the default project window.
type TaskBuilder struct {
	req models.CreateTaskRequest
}

// NewTask creates a TaskBuilder with sensible defaults.
func NewTask() *TaskBuilder {
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	return &TaskBuilder{
		req: models.CreateTaskRequest{
			Name:      fmt.Sprintf("Task %s", primitive.NewObjectID().Hex()[18:]),
			Priority:  models.PriorityMedium,
			StartDate: start,
			DueDate:   start.AddDate(0, 0, 14),
		},
	}
}

func (b *TaskBuilder) WithName(name string) *TaskBuilder {
	b.req.Name = name
	return b
}

func (b *TaskBuilder) WithStatus(status models.TaskStatus) *TaskBuilder {
	b.req.Status = status
	return b
}

func (b *TaskBuilder) WithProgress(progress int) *TaskBuilder {
	b.req.Progress = &progress
	return b
}

func (b *TaskBuilder) AssignedTo(userID string) *TaskBuilder {
	b.req.AssignedTo = &userID
	return b
}

func (b *TaskBuilder) WithDates(start, due time.Time) *TaskBuilder {
	b.req.StartDate = start
	b.req.DueDate = due
	return b
}

func (b *TaskBuilder) Build() models.CreateTaskRequest {
	return b.req
}
