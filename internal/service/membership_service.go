package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"
	"teamtrack/internal/queue"
	"teamtrack/internal/repository"
	"teamtrack/internal/sideeffect"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipService handles business logic for team membership operations.
type MembershipService struct {
	memberRepo repository.MembershipRepository
	userRepo   repository.UserRepository
	teamRepo   repository.TeamRepository
	tasks      TaskRepairer
	outbox     queue.Scheduler
	events     *sideeffect.Dispatcher
	log        *slog.Logger
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(
	memberRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
	teamRepo repository.TeamRepository,
	tasks TaskRepairer,
	outbox queue.Scheduler,
	events *sideeffect.Dispatcher,
	log *slog.Logger,
) *MembershipService {
	return &MembershipService{
		memberRepo: memberRepo,
		userRepo:   userRepo,
		teamRepo:   teamRepo,
		tasks:      tasks,
		outbox:     outbox,
		events:     events,
		log:        log,
	}
}

// ListMembers returns all members of a team with user details.
func (s *MembershipService) ListMembers(ctx context.Context, teamID primitive.ObjectID) (*models.MembershipListResponse, error) {
	members, err := s.memberRepo.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}

	// Member list still renders when the directory lookup fails
	users := make(map[primitive.ObjectID]models.UserSummary, len(members))
	found, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.log.WarnContext(ctx, "member user lookup failed", "team_id", teamID.Hex(), "error", err)
	}
	for i := range found {
		users[found[i].ID] = found[i].Summary()
	}

	items := make([]models.MembershipWithUser, 0, len(members))
	for _, m := range members {
		item := models.MembershipWithUser{
			ID:       m.ID,
			TeamID:   m.TeamID,
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
		if u, ok := users[m.UserID]; ok {
			item.User = &u
		}
		items = append(items, item)
	}

	return &models.MembershipListResponse{Items: items}, nil
}

// AddMember adds an existing user to the team as a member.
func (s *MembershipService) AddMember(ctx context.Context, actorID, teamID primitive.ObjectID, req *models.AddMemberRequest) (*models.Membership, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	member := &models.Membership{
		TeamID: teamID,
		UserID: userID,
		Role:   models.RoleMember,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.events.Activity(ctx, actorID, "added a member to "+team.Name, models.EntityMembership, member.ID, &teamID)
	s.events.Notify(ctx, userID, models.NotificationTeamInvite, "You were added to team "+team.Name, models.EntityTeam, teamID)
	return member, nil
}

// RemoveMember removes a member from a team and schedules the repair of
// the member's task assignments.
func (s *MembershipService) RemoveMember(ctx context.Context, actorID, teamID, targetUserID primitive.ObjectID) error {
	// Cannot remove self (use leave endpoint)
	if targetUserID == actorID {
		return apperrors.ErrCannotRemoveSelf
	}

	target, err := s.memberRepo.FindByTeamAndUser(ctx, teamID, targetUserID)
	if err != nil {
		return err
	}
	if target.Role == models.RoleLeader {
		return apperrors.ErrCannotRemoveLeader
	}

	if err := s.memberRepo.Delete(ctx, teamID, targetUserID); err != nil {
		return err
	}

	s.scheduleRepair(ctx, teamID, targetUserID)
	s.events.Activity(ctx, actorID, "removed a member", models.EntityMembership, target.ID, &teamID)
	s.events.Notify(ctx, targetUserID, models.NotificationTeamRemoved, "You were removed from a team", models.EntityTeam, teamID)
	return nil
}

// LeaveTeam removes the requesting user from a team. Leaders cannot leave.
func (s *MembershipService) LeaveTeam(ctx context.Context, teamID, userID primitive.ObjectID) error {
	member, err := s.memberRepo.FindByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if member.Role == models.RoleLeader {
		return apperrors.ErrLeaderCannotLeave
	}

	if err := s.memberRepo.Delete(ctx, teamID, userID); err != nil {
		return err
	}

	s.scheduleRepair(ctx, teamID, userID)
	s.events.Activity(ctx, userID, "left the team", models.EntityMembership, member.ID, &teamID)
	return nil
}

// scheduleRepair clears the former member's task assignments in the team.
func (s *MembershipService) scheduleRepair(ctx context.Context, teamID, userID primitive.ObjectID) {
	s.outbox.Schedule(ctx, "unassign-tasks", func(ctx context.Context) error {
		result, err := s.tasks.UnassignUserInTeam(ctx, teamID, userID)
		if err != nil {
			return fmt.Errorf("unassign user %s in team %s: %w", userID.Hex(), teamID.Hex(), err)
		}
		s.log.InfoContext(ctx, "former member unassigned",
			"team_id", teamID.Hex(),
			"user_id", userID.Hex(),
			"unassigned", result.Unassigned,
		)
		return nil
	})
}
