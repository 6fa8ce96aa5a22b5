package service

import (
	"context"
	"sync"
	"time"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/logger"
	"teamtrack/internal/models"
	"teamtrack/internal/queue"
	"teamtrack/internal/sideeffect"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeTeams serves team descriptors the way the Team Service does.
type fakeTeams struct {
	teams map[primitive.ObjectID]*models.TeamDescriptor
	err   error
	calls int
}

func newFakeTeams(descs ...*models.TeamDescriptor) *fakeTeams {
	f := &fakeTeams{teams: map[primitive.ObjectID]*models.TeamDescriptor{}}
	for _, d := range descs {
		f.teams[d.Team.ID] = d
	}
	return f
}

func (f *fakeTeams) GetTeam(_ context.Context, teamID primitive.ObjectID) (*models.TeamDescriptor, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.teams[teamID]
	if !ok {
		return nil, apperrors.ErrTeamNotFound
	}
	return d, nil
}

// fakeProjects serves project descriptors the way the Project Service does.
type fakeProjects struct {
	projects map[primitive.ObjectID]*models.Project
	idsErr   error
}

func newFakeProjects(projects ...*models.Project) *fakeProjects {
	f := &fakeProjects{projects: map[primitive.ObjectID]*models.Project{}}
	for _, p := range projects {
		f.projects[p.ID] = p
	}
	return f
}

func (f *fakeProjects) GetProject(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjects) ProjectIDsByTeam(_ context.Context, teamID primitive.ObjectID) ([]primitive.ObjectID, error) {
	if f.idsErr != nil {
		return nil, f.idsErr
	}
	var ids []primitive.ObjectID
	for _, p := range f.projects {
		if p.TeamID == teamID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// fakeSibling records the orchestration calls made to other services.
type fakeSibling struct {
	mu       sync.Mutex
	projects []primitive.ObjectID
	teams    []primitive.ObjectID
	repairs  [][2]primitive.ObjectID
	err      error
}

func (f *fakeSibling) DeleteProjectsByTeam(_ context.Context, teamID primitive.ObjectID) (*models.CascadeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams = append(f.teams, teamID)
	if f.err != nil {
		return nil, f.err
	}
	return &models.CascadeResult{Deleted: 1}, nil
}

func (f *fakeSibling) DeleteTasksByProject(_ context.Context, projectID primitive.ObjectID) (*models.CascadeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = append(f.projects, projectID)
	if f.err != nil {
		return nil, f.err
	}
	return &models.CascadeResult{Deleted: 1}, nil
}

func (f *fakeSibling) UnassignUserInTeam(_ context.Context, teamID, userID primitive.ObjectID) (*models.UnassignResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repairs = append(f.repairs, [2]primitive.ObjectID{teamID, userID})
	if f.err != nil {
		return nil, f.err
	}
	return &models.UnassignResult{Unassigned: 1}, nil
}

// fakeRecalc records the projects whose progress was recalculated.
type fakeRecalc struct {
	mu       sync.Mutex
	projects []primitive.ObjectID
}

func (f *fakeRecalc) Recalculate(_ context.Context, projectID primitive.ObjectID) (*models.ProgressResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = append(f.projects, projectID)
	return &models.ProgressResult{State: models.ProgressFresh}, nil
}

func (f *fakeRecalc) RecalculateAll(ctx context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		_, _ = f.Recalculate(ctx, id)
	}
	return nil
}

type fakeUsers struct {
	users map[primitive.ObjectID]models.UserSummary
	err   error
}

func (f *fakeUsers) ResolveUsers(_ context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.UserSummary
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// newEvents builds a dispatcher that delivers synchronously into a MemorySink.
func newEvents(service string) (*sideeffect.Dispatcher, *sideeffect.MemorySink) {
	sink := &sideeffect.MemorySink{}
	return sideeffect.NewDispatcher(sink, &queue.Inline{}, service, logger.Discard(), nil), sink
}

// teamWith builds a team descriptor with a leader and the given members.
func teamWith(leader primitive.ObjectID, members ...primitive.ObjectID) *models.TeamDescriptor {
	teamID := primitive.NewObjectID()
	d := &models.TeamDescriptor{
		Team:    models.Team{ID: teamID, Name: "Core", OwnerID: leader},
		Members: []models.Membership{{TeamID: teamID, UserID: leader, Role: models.RoleLeader}},
	}
	for _, m := range members {
		d.Members = append(d.Members, models.Membership{TeamID: teamID, UserID: m, Role: models.RoleMember})
	}
	return d
}

var (
	projectStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	projectEnd   = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
)

func projectIn(team *models.TeamDescriptor, creator primitive.ObjectID) *models.Project {
	return &models.Project{
		ID:        primitive.NewObjectID(),
		TeamID:    team.Team.ID,
		Name:      "Launch",
		StartDate: projectStart,
		EndDate:   projectEnd,
		CreatedBy: creator,
	}
}

func day(n int) time.Time {
	return projectStart.AddDate(0, 0, n)
}
