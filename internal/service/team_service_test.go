package service

import (
	"context"
	"testing"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/logger"
	"teamtrack/internal/models"
	"teamtrack/internal/queue"
	repomocks "teamtrack/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

type teamServiceFixture struct {
	service    *TeamService
	teamRepo   *repomocks.MockTeamRepository
	memberRepo *repomocks.MockMembershipRepository
	projects   *fakeSibling
	outbox     *queue.Inline
}

func newTeamServiceFixture(t *testing.T) *teamServiceFixture {
	ctrl := gomock.NewController(t)
	f := &teamServiceFixture{
		teamRepo:   repomocks.NewMockTeamRepository(ctrl),
		memberRepo: repomocks.NewMockMembershipRepository(ctrl),
		projects:   &fakeSibling{},
		outbox:     &queue.Inline{},
	}
	events, _ := newEvents("team-service")
	f.service = NewTeamService(f.teamRepo, f.memberRepo, f.projects, f.outbox, events, logger.Discard())
	return f
}

func TestTeamService_CreateTeam(t *testing.T) {
	userID := primitive.NewObjectID()
	req := &models.CreateTeamRequest{Name: "Core", Description: "core team"}

	t.Run("creates team with creator as leader", func(t *testing.T) {
		f := newTeamServiceFixture(t)

		f.teamRepo.EXPECT().FindByName(gomock.Any(), "Core").Return(nil, apperrors.ErrTeamNotFound)
		f.teamRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, team *models.Team) error {
				team.ID = primitive.NewObjectID()
				return nil
			})
		f.memberRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *models.Membership) error {
				assert.Equal(t, userID, m.UserID)
				assert.Equal(t, models.RoleLeader, m.Role)
				return nil
			})

		team, err := f.service.CreateTeam(context.Background(), userID, req)

		require.NoError(t, err)
		assert.Equal(t, "Core", team.Name)
		assert.Equal(t, userID, team.OwnerID)
	})

	t.Run("rejects taken name", func(t *testing.T) {
		f := newTeamServiceFixture(t)

		f.teamRepo.EXPECT().FindByName(gomock.Any(), "Core").Return(&models.Team{}, nil)

		team, err := f.service.CreateTeam(context.Background(), userID, req)

		assert.Nil(t, team)
		assert.ErrorIs(t, err, apperrors.ErrTeamNameTaken)
	})

	t.Run("rolls back team when leader membership fails", func(t *testing.T) {
		f := newTeamServiceFixture(t)

		f.teamRepo.EXPECT().FindByName(gomock.Any(), "Core").Return(nil, apperrors.ErrTeamNotFound)
		f.teamRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.memberRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)
		f.teamRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.service.CreateTeam(context.Background(), userID, req)

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestTeamService_ListTeams(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("normalizes paging and computes pages", func(t *testing.T) {
		f := newTeamServiceFixture(t)

		f.teamRepo.EXPECT().
			FindByUserID(gomock.Any(), userID, 1, 10).
			Return([]models.Team{{Name: "Core"}}, 21, nil)

		result, err := f.service.ListTeams(context.Background(), userID, 0, 0)

		require.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 3, result.Pagination.TotalPages)
	})
}

func TestTeamService_GetTeamDescriptor(t *testing.T) {
	teamID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	t.Run("returns team with members", func(t *testing.T) {
		f := newTeamServiceFixture(t)

		f.teamRepo.EXPECT().FindByID(gomock.Any(), teamID).Return(&models.Team{ID: teamID}, nil)
		f.memberRepo.EXPECT().
			FindByTeamID(gomock.Any(), teamID).
			Return([]models.Membership{{TeamID: teamID, UserID: userID, Role: models.RoleMember}}, nil)

		desc, err := f.service.GetTeamDescriptor(context.Background(), teamID)

		require.NoError(t, err)
		assert.True(t, desc.HasMember(userID))
	})

	t.Run("missing team", func(t *testing.T) {
		f := newTeamServiceFixture(t)

		f.teamRepo.EXPECT().FindByID(gomock.Any(), teamID).Return(nil, apperrors.ErrTeamNotFound)

		_, err := f.service.GetTeamDescriptor(context.Background(), teamID)

		assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
	})
}

func TestTeamService_UpdateTeam(t *testing.T) {
	teamID := primitive.NewObjectID()
	actor := primitive.NewObjectID()

	t.Run("updates name and description", func(t *testing.T) {
		f := newTeamServiceFixture(t)
		name, desc := "Platform", "new"

		f.teamRepo.EXPECT().FindByID(gomock.Any(), teamID).Return(&models.Team{ID: teamID, Name: "Core"}, nil)
		f.teamRepo.EXPECT().FindByName(gomock.Any(), "Platform").Return(nil, apperrors.ErrTeamNotFound)
		f.teamRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		team, err := f.service.UpdateTeam(context.Background(), actor, teamID, &models.UpdateTeamRequest{Name: &name, Description: &desc})

		require.NoError(t, err)
		assert.Equal(t, "Platform", team.Name)
		assert.Equal(t, "new", team.Description)
	})

	t.Run("rejects name of another team", func(t *testing.T) {
		f := newTeamServiceFixture(t)
		name := "Platform"

		f.teamRepo.EXPECT().FindByID(gomock.Any(), teamID).Return(&models.Team{ID: teamID, Name: "Core"}, nil)
		f.teamRepo.EXPECT().FindByName(gomock.Any(), "Platform").Return(&models.Team{ID: primitive.NewObjectID()}, nil)

		_, err := f.service.UpdateTeam(context.Background(), actor, teamID, &models.UpdateTeamRequest{Name: &name})

		assert.ErrorIs(t, err, apperrors.ErrTeamNameTaken)
	})
}

func TestTeamService_DeleteTeam(t *testing.T) {
	teamID := primitive.NewObjectID()
	owner := primitive.NewObjectID()

	t.Run("deletes locally then cascades to projects", func(t *testing.T) {
		f := newTeamServiceFixture(t)

		gomock.InOrder(
			f.teamRepo.EXPECT().FindByID(gomock.Any(), teamID).Return(&models.Team{ID: teamID, Name: "Core"}, nil),
			f.memberRepo.EXPECT().DeleteAllByTeamID(gomock.Any(), teamID).Return(int64(3), nil),
			f.teamRepo.EXPECT().Delete(gomock.Any(), teamID).Return(nil),
		)

		err := f.service.DeleteTeam(context.Background(), owner, teamID)

		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{teamID}, f.projects.teams)
		assert.Equal(t, []string{"cascade-delete-projects"}, f.outbox.Names())
	})

	t.Run("cascade failure does not fail the delete", func(t *testing.T) {
		f := newTeamServiceFixture(t)
		f.projects.err = apperrors.ErrDownstreamUnavailable

		f.teamRepo.EXPECT().FindByID(gomock.Any(), teamID).Return(&models.Team{ID: teamID}, nil)
		f.memberRepo.EXPECT().DeleteAllByTeamID(gomock.Any(), teamID).Return(int64(1), nil)
		f.teamRepo.EXPECT().Delete(gomock.Any(), teamID).Return(nil)

		err := f.service.DeleteTeam(context.Background(), owner, teamID)

		require.NoError(t, err)
		require.Len(t, f.outbox.Runs(), 1)
		assert.ErrorIs(t, f.outbox.Runs()[0].Err, apperrors.ErrDownstreamUnavailable)
	})

	t.Run("missing team schedules nothing", func(t *testing.T) {
		f := newTeamServiceFixture(t)

		f.teamRepo.EXPECT().FindByID(gomock.Any(), teamID).Return(nil, apperrors.ErrTeamNotFound)

		err := f.service.DeleteTeam(context.Background(), owner, teamID)

		assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
		assert.Empty(t, f.outbox.Runs())
	})
}
