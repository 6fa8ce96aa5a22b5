package models

import (
	"bytes"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

// Task status values.
const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusReview     TaskStatus = "Review"
	StatusDone       TaskStatus = "Done"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// TaskPriority is the planning priority of a task.
type TaskPriority string

// Task priority values.
const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a unit of work inside a project.
//
// TeamID is a denormalized copy of the owning project's team. It is written
// on create but older tasks may not carry it, so team scoping must go through
// the project instead of trusting this field.
type Task struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	ProjectID   primitive.ObjectID  `json:"projectId" bson:"projectId" example:"507f1f77bcf86cd799439012"`
	TeamID      *primitive.ObjectID `json:"teamId,omitempty" bson:"teamId,omitempty" example:"507f1f77bcf86cd799439014"`
	Name        string              `json:"name" bson:"name" example:"Design"`
	Description string              `json:"description" bson:"description" example:"Landing page design"`
	AssignedTo  *primitive.ObjectID `json:"assignedTo" bson:"assignedTo" example:"507f1f77bcf86cd799439013"`
	CreatedBy   primitive.ObjectID  `json:"createdBy" bson:"createdBy" example:"507f1f77bcf86cd799439015"`
	StartDate   time.Time           `json:"startDate" bson:"startDate" example:"2024-02-01T00:00:00Z"`
	DueDate     time.Time           `json:"dueDate" bson:"dueDate" example:"2024-02-15T00:00:00Z"`
	Status      TaskStatus          `json:"status" bson:"status" example:"In Progress"`
	Priority    TaskPriority        `json:"priority" bson:"priority" example:"Medium"`
	Progress    int                 `json:"progress" bson:"progress" example:"40"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T09:30:00Z"`
}

// IsAssignedTo reports whether the task is currently assigned to userID.
func (t *Task) IsAssignedTo(userID primitive.ObjectID) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

// ProgressForStatus returns the progress a task carries after its status is
// set to `to`. Done forces 100 and To Do forces 0. Entering In Progress from
// Done or To Do lands on 99 or 1 so that an in-progress task never reads as
// 0% or 100%. Review has no progress rule and keeps the given value.
func ProgressForStatus(from, to TaskStatus, progress int) int {
	switch to {
	case StatusDone:
		return 100
	case StatusToDo:
		return 0
	case StatusInProgress:
		switch from {
		case StatusDone:
			return 99
		case StatusToDo:
			return 1
		}
	}
	return progress
}

// OptionalID distinguishes an absent JSON field from an explicit null.
// Set is true whenever the key was present in the payload.
type OptionalID struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Name        string       `json:"name" binding:"required,min=1,max=200" example:"Design"`
	Description string       `json:"description" binding:"omitempty,max=2000" example:"Landing page design"`
	AssignedTo  *string      `json:"assignedTo" binding:"omitempty,len=24,hexadecimal" example:"507f1f77bcf86cd799439013"`
	Status      TaskStatus   `json:"status" binding:"omitempty,taskstatus" example:"To Do"`
	Priority    TaskPriority `json:"priority" binding:"omitempty,taskpriority" example:"Medium"`
	Progress    *int         `json:"progress" binding:"omitempty,min=0,max=100" example:"0"`
	StartDate   time.Time    `json:"startDate" binding:"required" example:"2024-02-01T00:00:00Z"`
	DueDate     time.Time    `json:"dueDate" binding:"required" example:"2024-02-15T00:00:00Z"`
}

// UpdateTaskRequest is the payload for partially updating a task.
// AssignedTo accepts an id to reassign or null to unassign.
type UpdateTaskRequest struct {
	Name        *string       `json:"name" binding:"omitempty,min=1,max=200" example:"Design v2"`
	Description *string       `json:"description" binding:"omitempty,max=2000" example:"Updated description"`
	AssignedTo  OptionalID    `json:"assignedTo" swaggertype:"string" example:"507f1f77bcf86cd799439013"`
	Status      *TaskStatus   `json:"status" binding:"omitempty,taskstatus" example:"In Progress"`
	Priority    *TaskPriority `json:"priority" binding:"omitempty,taskpriority" example:"High"`
	Progress    *int          `json:"progress" binding:"omitempty,min=0,max=100" example:"40"`
	StartDate   *time.Time    `json:"startDate" example:"2024-02-01T00:00:00Z"`
	DueDate     *time.Time    `json:"dueDate" example:"2024-02-20T00:00:00Z"`
}

// TouchesDetails reports whether name or description change.
func (r *UpdateTaskRequest) TouchesDetails() bool {
	return r.Name != nil || r.Description != nil
}

// TouchesProgress reports whether status or progress change.
func (r *UpdateTaskRequest) TouchesProgress() bool {
	return r.Status != nil || r.Progress != nil
}

// TouchesPlanning reports whether priority or dates change.
func (r *UpdateTaskRequest) TouchesPlanning() bool {
	return r.Priority != nil || r.StartDate != nil || r.DueDate != nil
}

// TaskPatch is the set of task fields one update writes. Nil fields keep
// their stored value.
//
// Assign writes AssignedTo only while the stored assignee still equals
// ExpectAssignee, so a concurrent unassignment is never overwritten.
type TaskPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	DueDate     *time.Time
	Status      *TaskStatus
	Priority    *TaskPriority
	Progress    *int

	Assign         bool
	AssignedTo     *primitive.ObjectID
	ExpectAssignee *primitive.ObjectID
}

// TaskWithAssignee is a task with the assignee's user summary expanded.
type TaskWithAssignee struct {
	Task
	Assignee *UserSummary `json:"assignee,omitempty"`
}

// TaskListResponse is the response for listing tasks.
type TaskListResponse struct {
	Items []TaskWithAssignee `json:"items"`
}

// UnassignResult reports how many tasks a membership repair unassigned.
type UnassignResult struct {
	Unassigned int64 `json:"unassigned" example:"2"`
}
