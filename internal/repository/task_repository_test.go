package repository

import (
	"context"
	"testing"
	"time"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTask(projectID primitive.ObjectID, teamID *primitive.ObjectID, name string, progress int) *models.Task {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &models.Task{
		ProjectID: projectID,
		TeamID:    teamID,
		Name:      name,
		CreatedBy: primitive.NewObjectID(),
		StartDate: start,
		DueDate:   start.AddDate(0, 0, 14),
		Status:    models.StatusInProgress,
		Priority:  models.PriorityMedium,
		Progress:  progress,
	}
}

func TestTaskRepository(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewTaskRepository(tdb.Database)
	ctx := context.Background()

	t.Run("creates task and enforces unique name per project", func(t *testing.T) {
		projectID := primitive.NewObjectID()
		task := newTask(projectID, nil, "Design", 0)

		require.NoError(t, repo.Create(ctx, task))
		assert.False(t, task.ID.IsZero())

		err := repo.Create(ctx, newTask(projectID, nil, "Design", 0))
		assert.ErrorIs(t, err, apperrors.ErrTaskNameTaken)

		require.NoError(t, repo.Create(ctx, newTask(primitive.NewObjectID(), nil, "Design", 0)))
	})

	t.Run("stores null assignee and reads it back", func(t *testing.T) {
		task := newTask(primitive.NewObjectID(), nil, "Unassigned", 0)
		require.NoError(t, repo.Create(ctx, task))

		var raw bson.M
		require.NoError(t, tdb.Database.Collection(CollectionTasks).FindOne(ctx, bson.M{"_id": task.ID}).Decode(&raw))
		v, ok := raw["assignedTo"]
		assert.True(t, ok)
		assert.Nil(t, v)

		found, err := repo.FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Nil(t, found.AssignedTo)
	})

	t.Run("updates only patched fields", func(t *testing.T) {
		task := newTask(primitive.NewObjectID(), nil, "Build", 10)
		task.Description = "keep me"
		require.NoError(t, repo.Create(ctx, task))

		assignee := primitive.NewObjectID()
		status := models.StatusDone
		progress := 100
		updated, err := repo.Update(ctx, task.ID, models.TaskPatch{
			Status:         &status,
			Progress:       &progress,
			Assign:         true,
			AssignedTo:     &assignee,
		})
		require.NoError(t, err)
		assert.True(t, updated.IsAssignedTo(assignee))
		assert.Equal(t, models.StatusDone, updated.Status)
		assert.Equal(t, 100, updated.Progress)
		assert.Equal(t, "keep me", updated.Description)
		assert.Equal(t, "Build", updated.Name)

		_, err = repo.Update(ctx, primitive.NewObjectID(), models.TaskPatch{Progress: &progress})
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})

	t.Run("patch without assignee keeps a concurrent unassignment", func(t *testing.T) {
		user := primitive.NewObjectID()
		task := newTask(primitive.NewObjectID(), nil, "Race", 40)
		task.AssignedTo = &user
		require.NoError(t, repo.Create(ctx, task))

		_, _, err := repo.UnassignInProjects(ctx, user, []primitive.ObjectID{task.ProjectID})
		require.NoError(t, err)

		priority := models.PriorityHigh
		updated, err := repo.Update(ctx, task.ID, models.TaskPatch{Priority: &priority})
		require.NoError(t, err)
		assert.Nil(t, updated.AssignedTo)
		assert.Equal(t, models.PriorityHigh, updated.Priority)
	})

	t.Run("assignee write fails when the stored assignee moved", func(t *testing.T) {
		user, next := primitive.NewObjectID(), primitive.NewObjectID()
		task := newTask(primitive.NewObjectID(), nil, "Moved", 40)
		task.AssignedTo = &user
		require.NoError(t, repo.Create(ctx, task))

		_, _, err := repo.UnassignInProjects(ctx, user, []primitive.ObjectID{task.ProjectID})
		require.NoError(t, err)

		_, err = repo.Update(ctx, task.ID, models.TaskPatch{Assign: true, AssignedTo: &next, ExpectAssignee: &user})
		assert.ErrorIs(t, err, apperrors.ErrAssigneeChanged)

		found, err := repo.FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Nil(t, found.AssignedTo)

		_, err = repo.Update(ctx, primitive.NewObjectID(), models.TaskPatch{Assign: true, AssignedTo: &next})
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})

	t.Run("rename onto a sibling's name is rejected", func(t *testing.T) {
		projectID := primitive.NewObjectID()
		require.NoError(t, repo.Create(ctx, newTask(projectID, nil, "First", 0)))
		second := newTask(projectID, nil, "Second", 0)
		require.NoError(t, repo.Create(ctx, second))

		name := "First"
		_, err := repo.Update(ctx, second.ID, models.TaskPatch{Name: &name})
		assert.ErrorIs(t, err, apperrors.ErrTaskNameTaken)
	})

	t.Run("sums progress per project", func(t *testing.T) {
		projectID := primitive.NewObjectID()
		for i, p := range []int{20, 100, 45} {
			require.NoError(t, repo.Create(ctx, newTask(projectID, nil, string(rune('a'+i)), p)))
		}

		sum, count, err := repo.ProgressTotals(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, int64(165), sum)
		assert.Equal(t, int64(3), count)

		sum, count, err = repo.ProgressTotals(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Zero(t, sum)
		assert.Zero(t, count)
	})

	t.Run("deletes by project and is idempotent", func(t *testing.T) {
		projectID := primitive.NewObjectID()
		require.NoError(t, repo.Create(ctx, newTask(projectID, nil, "x", 0)))
		require.NoError(t, repo.Create(ctx, newTask(projectID, nil, "y", 0)))

		n, err := repo.DeleteByProjectID(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = repo.DeleteByProjectID(ctx, projectID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("unassigns within projects without touching progress", func(t *testing.T) {
		tdb.ClearCollection(t, CollectionTasks)

		user := primitive.NewObjectID()
		p1, p2, p3 := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
		a := newTask(p1, nil, "A", 20)
		a.AssignedTo = &user
		b := newTask(p2, nil, "B", 100)
		b.AssignedTo = &user
		b.Status = models.StatusDone
		other := newTask(p3, nil, "C", 50)
		other.AssignedTo = &user
		for _, task := range []*models.Task{a, b, other} {
			require.NoError(t, repo.Create(ctx, task))
		}

		affected, n, err := repo.UnassignInProjects(ctx, user, []primitive.ObjectID{p1, p2})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.ElementsMatch(t, []primitive.ObjectID{p1, p2}, affected)

		foundA, _ := repo.FindByID(ctx, a.ID)
		foundB, _ := repo.FindByID(ctx, b.ID)
		foundOther, _ := repo.FindByID(ctx, other.ID)
		assert.Nil(t, foundA.AssignedTo)
		assert.Equal(t, 20, foundA.Progress)
		assert.Nil(t, foundB.AssignedTo)
		assert.Equal(t, 100, foundB.Progress)
		assert.Equal(t, models.StatusDone, foundB.Status)
		assert.True(t, foundOther.IsAssignedTo(user))

		affected, n, err = repo.UnassignInProjects(ctx, user, []primitive.ObjectID{p1, p2})
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, affected)
	})

	t.Run("unassigns by cached team id", func(t *testing.T) {
		tdb.ClearCollection(t, CollectionTasks)

		user := primitive.NewObjectID()
		teamID := primitive.NewObjectID()
		cached := newTask(primitive.NewObjectID(), &teamID, "cached", 30)
		cached.AssignedTo = &user
		legacy := newTask(primitive.NewObjectID(), nil, "legacy", 30)
		legacy.AssignedTo = &user
		require.NoError(t, repo.Create(ctx, cached))
		require.NoError(t, repo.Create(ctx, legacy))

		affected, n, err := repo.UnassignInTeam(ctx, user, teamID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, []primitive.ObjectID{cached.ProjectID}, affected)

		foundLegacy, _ := repo.FindByID(ctx, legacy.ID)
		assert.True(t, foundLegacy.IsAssignedTo(user))
	})
}

func TestCommentRepository(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewCommentRepository(tdb.Database)
	ctx := context.Background()

	taskID := primitive.NewObjectID()
	projectID := primitive.NewObjectID()
	for _, text := range []string{"first", "second"} {
		require.NoError(t, repo.Create(ctx, &models.Comment{
			TaskID: taskID, ProjectID: projectID, AuthorID: primitive.NewObjectID(), Text: text,
		}))
	}
	otherTask := primitive.NewObjectID()
	require.NoError(t, repo.Create(ctx, &models.Comment{TaskID: otherTask, ProjectID: projectID, Text: "other"}))

	comments, err := repo.FindByTaskID(ctx, taskID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)

	n, err := repo.DeleteByTaskID(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.DeleteByProjectID(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
