package repository

import (
	"context"
	"testing"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTeamRepository(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewTeamRepository(tdb.Database)
	memberships := NewMembershipRepository(tdb.Database)
	ctx := context.Background()

	t.Run("creates team with timestamps", func(t *testing.T) {
		tdb.ClearCollection(t, CollectionTeams)

		team := &models.Team{Name: "Engineering", OwnerID: primitive.NewObjectID()}

		err := repo.Create(ctx, team)

		require.NoError(t, err)
		assert.False(t, team.ID.IsZero())
		assert.NotZero(t, team.CreatedAt)
		assert.Equal(t, team.CreatedAt, team.UpdatedAt)
	})

	t.Run("rejects duplicate team name", func(t *testing.T) {
		tdb.ClearCollection(t, CollectionTeams)

		require.NoError(t, repo.Create(ctx, &models.Team{Name: "Dup", OwnerID: primitive.NewObjectID()}))

		err := repo.Create(ctx, &models.Team{Name: "Dup", OwnerID: primitive.NewObjectID()})

		assert.ErrorIs(t, err, apperrors.ErrTeamNameTaken)
	})

	t.Run("finds team by id and name", func(t *testing.T) {
		tdb.ClearCollection(t, CollectionTeams)

		team := &models.Team{Name: "Design", OwnerID: primitive.NewObjectID()}
		require.NoError(t, repo.Create(ctx, team))

		byID, err := repo.FindByID(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, "Design", byID.Name)

		byName, err := repo.FindByName(ctx, "Design")
		require.NoError(t, err)
		assert.Equal(t, team.ID, byName.ID)
	})

	t.Run("returns not found for unknown team", func(t *testing.T) {
		_, err := repo.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)

		_, err = repo.FindByName(ctx, "missing")
		assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
	})

	t.Run("lists teams of a member with pagination", func(t *testing.T) {
		tdb.ClearCollection(t, CollectionTeams)
		tdb.ClearCollection(t, CollectionMemberships)

		userID := primitive.NewObjectID()
		for _, name := range []string{"A", "B", "C"} {
			team := &models.Team{Name: "Team " + name, OwnerID: primitive.NewObjectID()}
			require.NoError(t, repo.Create(ctx, team))
			require.NoError(t, memberships.Create(ctx, &models.Membership{
				TeamID: team.ID, UserID: userID, Role: models.RoleMember,
			}))
		}
		require.NoError(t, repo.Create(ctx, &models.Team{Name: "Other", OwnerID: primitive.NewObjectID()}))

		teams, total, err := repo.FindByUserID(ctx, userID, 1, 2)

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, teams, 2)

		teams, _, err = repo.FindByUserID(ctx, userID, 2, 2)
		require.NoError(t, err)
		assert.Len(t, teams, 1)
	})

	t.Run("returns empty slice for user without teams", func(t *testing.T) {
		teams, total, err := repo.FindByUserID(ctx, primitive.NewObjectID(), 1, 10)

		require.NoError(t, err)
		assert.NotNil(t, teams)
		assert.Zero(t, total)
	})

	t.Run("updates and deletes team", func(t *testing.T) {
		tdb.ClearCollection(t, CollectionTeams)

		team := &models.Team{Name: "Old", OwnerID: primitive.NewObjectID()}
		require.NoError(t, repo.Create(ctx, team))

		team.Name = "New"
		team.Description = "renamed"
		require.NoError(t, repo.Update(ctx, team))

		found, err := repo.FindByID(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", found.Name)
		assert.Equal(t, "renamed", found.Description)

		require.NoError(t, repo.Delete(ctx, team.ID))
		assert.ErrorIs(t, repo.Delete(ctx, team.ID), apperrors.ErrTeamNotFound)
	})

	t.Run("update of missing team returns not found", func(t *testing.T) {
		err := repo.Update(ctx, &models.Team{ID: primitive.NewObjectID(), Name: "x"})
		assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
	})
}

func TestMembershipRepository(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewMembershipRepository(tdb.Database)
	ctx := context.Background()

	t.Run("creates membership and rejects duplicates", func(t *testing.T) {
		tdb.ClearCollection(t, CollectionMemberships)

		m := &models.Membership{TeamID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Role: models.RoleLeader}
		require.NoError(t, repo.Create(ctx, m))
		assert.False(t, m.ID.IsZero())
		assert.NotZero(t, m.JoinedAt)

		dup := &models.Membership{TeamID: m.TeamID, UserID: m.UserID, Role: models.RoleMember}
		assert.ErrorIs(t, repo.Create(ctx, dup), apperrors.ErrAlreadyMember)
	})

	t.Run("finds memberships by team and by pair", func(t *testing.T) {
		tdb.ClearCollection(t, CollectionMemberships)

		teamID := primitive.NewObjectID()
		leader := primitive.NewObjectID()
		require.NoError(t, repo.Create(ctx, &models.Membership{TeamID: teamID, UserID: leader, Role: models.RoleLeader}))
		require.NoError(t, repo.Create(ctx, &models.Membership{TeamID: teamID, UserID: primitive.NewObjectID(), Role: models.RoleMember}))
		require.NoError(t, repo.Create(ctx, &models.Membership{TeamID: primitive.NewObjectID(), UserID: leader, Role: models.RoleMember}))

		list, err := repo.FindByTeamID(ctx, teamID)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		m, err := repo.FindByTeamAndUser(ctx, teamID, leader)
		require.NoError(t, err)
		assert.Equal(t, models.RoleLeader, m.Role)

		_, err = repo.FindByTeamAndUser(ctx, teamID, primitive.NewObjectID())
		assert.ErrorIs(t, err, apperrors.ErrNotTeamMember)
	})

	t.Run("deletes single membership and all of a team", func(t *testing.T) {
		tdb.ClearCollection(t, CollectionMemberships)

		teamID := primitive.NewObjectID()
		userID := primitive.NewObjectID()
		require.NoError(t, repo.Create(ctx, &models.Membership{TeamID: teamID, UserID: userID, Role: models.RoleMember}))
		require.NoError(t, repo.Create(ctx, &models.Membership{TeamID: teamID, UserID: primitive.NewObjectID(), Role: models.RoleMember}))
		require.NoError(t, repo.Create(ctx, &models.Membership{TeamID: teamID, UserID: primitive.NewObjectID(), Role: models.RoleLeader}))

		require.NoError(t, repo.Delete(ctx, teamID, userID))
		assert.ErrorIs(t, repo.Delete(ctx, teamID, userID), apperrors.ErrNotTeamMember)

		deleted, err := repo.DeleteAllByTeamID(ctx, teamID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		list, err := repo.FindByTeamID(ctx, teamID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestUserRepository(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewUserRepository(tdb.Database)
	ctx := context.Background()

	alice := &models.User{Email: "alice@example.com", Name: "Alice"}
	bob := &models.User{Email: "bob@example.com", Name: "Bob"}
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", found.Name)

		_, err = repo.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("finds by ids skipping unknown", func(t *testing.T) {
		users, err := repo.FindByIDs(ctx, []primitive.ObjectID{alice.ID, bob.ID, primitive.NewObjectID()})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("empty id list returns empty slice", func(t *testing.T) {
		users, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("keeps preset id", func(t *testing.T) {
		id := primitive.NewObjectID()
		carol := &models.User{ID: id, Email: "carol@example.com", Name: "Carol"}
		require.NoError(t, repo.Create(ctx, carol))
		assert.Equal(t, id, carol.ID)
	})
}

func TestFeedRepositories(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	activity := NewActivityRepository(tdb.Database)
	notifications := NewNotificationRepository(tdb.Database)
	ctx := context.Background()

	t.Run("lists activity newest first by team and entity", func(t *testing.T) {
		teamID, otherTeam := primitive.NewObjectID(), primitive.NewObjectID()
		entityID := primitive.NewObjectID()
		for _, action := range []string{"created", "updated"} {
			require.NoError(t, activity.Create(ctx, &models.ActivityLogEntry{
				Service: "task-service", ActorID: primitive.NewObjectID(), Action: action,
				EntityType: models.EntityTask, EntityID: entityID, TeamID: &teamID,
			}))
		}
		require.NoError(t, activity.Create(ctx, &models.ActivityLogEntry{
			Service: "team-service", Action: "created", EntityType: models.EntityTeam, EntityID: teamID, TeamID: &teamID,
		}))
		require.NoError(t, activity.Create(ctx, &models.ActivityLogEntry{
			Service: "team-service", Action: "created", EntityType: models.EntityTeam, EntityID: otherTeam, TeamID: &otherTeam,
		}))

		mine, err := activity.List(ctx, []primitive.ObjectID{teamID}, nil, 50)
		require.NoError(t, err)
		assert.Len(t, mine, 3)

		both, err := activity.List(ctx, []primitive.ObjectID{teamID, otherTeam}, nil, 50)
		require.NoError(t, err)
		assert.Len(t, both, 4)

		scoped, err := activity.List(ctx, []primitive.ObjectID{teamID}, &entityID, 50)
		require.NoError(t, err)
		require.Len(t, scoped, 2)
		assert.False(t, scoped[0].CreatedAt.Before(scoped[1].CreatedAt))

		foreign, err := activity.List(ctx, []primitive.ObjectID{otherTeam}, &entityID, 50)
		require.NoError(t, err)
		assert.Empty(t, foreign)

		limited, err := activity.List(ctx, []primitive.ObjectID{teamID}, nil, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		none, err := activity.List(ctx, nil, nil, 50)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("notifications are per recipient and can be marked read", func(t *testing.T) {
		recipient := primitive.NewObjectID()
		n := &models.Notification{
			RecipientID: recipient, Type: models.NotificationTaskAssigned,
			Message: "assigned", EntityType: models.EntityTask, EntityID: primitive.NewObjectID(),
		}
		require.NoError(t, notifications.Create(ctx, n))
		require.NoError(t, notifications.Create(ctx, &models.Notification{
			RecipientID: primitive.NewObjectID(), Type: models.NotificationTeamInvite,
		}))

		list, err := notifications.ListByRecipient(ctx, recipient, false, 50)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.False(t, list[0].Read)

		assert.ErrorIs(t, notifications.MarkRead(ctx, n.ID, primitive.NewObjectID()), apperrors.ErrNotificationNotFound)
		require.NoError(t, notifications.MarkRead(ctx, n.ID, recipient))

		unread, err := notifications.ListByRecipient(ctx, recipient, true, 50)
		require.NoError(t, err)
		assert.Empty(t, unread)
	})
}
