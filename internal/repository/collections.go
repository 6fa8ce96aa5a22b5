// Package repository provides data access operations for the application.
package repository

// Collection names. The Team Service owns teams, memberships, users, activity
// and notifications. The Project Service owns projects. The Task Service owns
// tasks and comments.
const (
	CollectionTeams         = "teams"
	CollectionMemberships   = "memberships"
	CollectionUsers         = "users"
	CollectionActivity      = "activity"
	CollectionNotifications = "notifications"
	CollectionProjects      = "projects"
	CollectionTasks         = "tasks"
	CollectionComments      = "comments"
)
