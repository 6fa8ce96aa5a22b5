// Package errors provides custom error types for the application.
package errors

import "errors"

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Auth errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)

// Team errors
var (
	ErrTeamNotFound            = errors.New("team not found")
	ErrTeamNameTaken           = errors.New("team name is already taken")
	ErrNotTeamMember           = errors.New("user is not a member of this team")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrLeaderCannotLeave       = errors.New("team leader cannot leave the team")
	ErrCannotRemoveLeader      = errors.New("cannot remove a team leader")
	ErrCannotRemoveSelf        = errors.New("cannot remove yourself, use leave endpoint")
	ErrAlreadyMember           = errors.New("user is already a team member")
)

// Project errors
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)

// Task errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskNameTaken      = errors.New("task name is already used in this project")
	ErrAssigneeNotMember  = errors.New("assignee is not a member of the project's team")
	ErrDateOutOfRange     = errors.New("task dates must fall within the project's date range")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrInvalidPriority    = errors.New("invalid task priority")
	ErrInvalidProgress    = errors.New("progress must be between 0 and 100")
	ErrNothingToUpdate    = errors.New("no fields to update")
	ErrInvalidAssigneeID  = errors.New("invalid assignee id format")
	ErrCommentNotAllowed  = errors.New("comments are limited to team members")
	ErrAssigneeChanged    = errors.New("task assignee changed meanwhile, reload and retry")
)

// Feed errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Cross-service errors
var (
	// ErrDownstreamUnavailable is returned when a sibling service cannot be
	// reached, times out, or fails with a server error.
	ErrDownstreamUnavailable = errors.New("downstream service unavailable")

	// Delete-by-parent and repair calls refuse to run while their trigger
	// has not happened yet.
	ErrTeamStillExists    = errors.New("team still exists")
	ErrProjectStillExists = errors.New("project still exists")
	ErrStillTeamMember    = errors.New("user is still a member of the team")

	// ErrRepairIncomplete marks a repair that ran on partial scope and must
	// be repeated.
	ErrRepairIncomplete = errors.New("repair ran without the authoritative team scope")
)
