package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

// sessionTestSetup creates one activity that session tests can reference.
func sessionTestSetup(t *testing.T) (*SQLiteSessionRepo, *SQLiteActivityRepo, *domain.Activity) {
	t.Helper()
	conn := testutil.NewTestDB(t)

	actRepo := NewSQLiteActivityRepo(conn)
	a := testutil.NewTestActivity("Coding", testutil.WithColor("#fb4934"))
	require.NoError(t, actRepo.Create(context.Background(), a))

	return NewSQLiteSessionRepo(conn), actRepo, a
}

func TestSessionRepo_CreateAndGetByID(t *testing.T) {
	repo, _, a := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(a,
		testutil.WithSpan(day, 45*time.Minute),
		testutil.WithNotes("Good session"),
		testutil.WithRatings(8, 3),
		testutil.WithGoals("outline", "draft"),
	)
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, fetched.ID)
	require.NotNil(t, fetched.ActivityID)
	assert.Equal(t, a.ID, *fetched.ActivityID)
	require.NotNil(t, fetched.Activity)
	assert.Equal(t, "Coding", fetched.Activity.Name)
	assert.True(t, day.Equal(fetched.StartTime))
	require.NotNil(t, fetched.EndTime)
	assert.Equal(t, 45*time.Minute, fetched.EndTime.Sub(fetched.StartTime))
	assert.Equal(t, "Coding", fetched.SavedActivityName)
	assert.Equal(t, "#fb4934", string(fetched.SavedActivityColor))
	assert.Equal(t, 8, fetched.ProductivityRating)
	assert.Equal(t, 3, fetched.DistractionRating)
	assert.Equal(t, "Good session", fetched.Notes)

	require.Len(t, fetched.Goals, 2)
	assert.Equal(t, "outline", fetched.Goals[0].Text)
	assert.Equal(t, "draft", fetched.Goals[1].Text)
	assert.Equal(t, 1, fetched.Goals[1].Position)
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	repo, _, _ := sessionTestSetup(t)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_GetRunning(t *testing.T) {
	repo, _, a := sessionTestSetup(t)
	ctx := context.Background()

	_, err := repo.GetRunning(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(a, testutil.WithSpan(day, time.Hour))))
	running := testutil.NewTestSession(a, testutil.WithStart(day.Add(2*time.Hour)), testutil.Running())
	require.NoError(t, repo.Create(ctx, running))

	got, err := repo.GetRunning(ctx)
	require.NoError(t, err)
	assert.Equal(t, running.ID, got.ID)
	assert.True(t, got.IsRunning())
}

func TestSessionRepo_SecondRunningSessionRejected(t *testing.T) {
	repo, _, a := sessionTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(a, testutil.Running())))
	err := repo.Create(ctx, testutil.NewTestSession(a, testutil.Running()))
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
}

func TestSessionRepo_ListNewestFirst(t *testing.T) {
	repo, _, a := sessionTestSetup(t)
	ctx := context.Background()

	s1 := testutil.NewTestSession(a, testutil.WithSpan(day, time.Hour), testutil.WithGoals("one"))
	s2 := testutil.NewTestSession(a, testutil.WithSpan(day.Add(3*time.Hour), time.Hour))
	s3 := testutil.NewTestSession(nil, testutil.WithSpan(day.Add(-24*time.Hour), time.Hour))
	for _, s := range []*domain.TimeSession{s1, s2, s3} {
		require.NoError(t, repo.Create(ctx, s))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, s2.ID, list[0].ID)
	assert.Equal(t, s1.ID, list[1].ID)
	assert.Equal(t, s3.ID, list[2].ID)

	assert.Len(t, list[1].Goals, 1)
	assert.Empty(t, list[0].Goals)
	assert.Nil(t, list[2].ActivityID)
	assert.Nil(t, list[2].Activity)
	assert.Equal(t, "Deleted activity", list[2].DisplayTitle())
}

func TestSessionRepo_ListByActivity(t *testing.T) {
	repo, actRepo, a := sessionTestSetup(t)
	ctx := context.Background()

	other := testutil.NewTestActivity("Reading")
	require.NoError(t, actRepo.Create(ctx, other))

	mine := testutil.NewTestSession(a, testutil.WithSpan(day, time.Hour), testutil.WithGoals("g"))
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(other, testutil.WithSpan(day.Add(time.Hour), time.Hour))))

	list, err := repo.ListByActivity(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
	assert.Len(t, list[0].Goals, 1)
}

func TestSessionRepo_Update(t *testing.T) {
	repo, _, a := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(a, testutil.WithStart(day), testutil.Running())
	require.NoError(t, repo.Create(ctx, sess))

	require.NoError(t, sess.Close(day.Add(90*time.Minute)))
	require.NoError(t, sess.SetRatings(9, 2))
	sess.Notes = "shipped"
	require.NoError(t, repo.Update(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsRunning())
	assert.Equal(t, 90*time.Minute, fetched.Duration(day.Add(5*time.Hour)))
	assert.Equal(t, 9, fetched.ProductivityRating)
	assert.Equal(t, 2, fetched.DistractionRating)
	assert.Equal(t, "shipped", fetched.Notes)
}

func TestSessionRepo_UpdateMissing(t *testing.T) {
	repo, _, a := sessionTestSetup(t)

	err := repo.Update(context.Background(), testutil.NewTestSession(a))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_SyncSnapshots(t *testing.T) {
	repo, _, a := sessionTestSetup(t)
	ctx := context.Background()

	s1 := testutil.NewTestSession(a, testutil.WithSpan(day, time.Hour))
	s2 := testutil.NewTestSession(a, testutil.WithSpan(day.Add(2*time.Hour), time.Hour))
	orphan := testutil.NewTestSession(nil, testutil.WithSpan(day.Add(4*time.Hour), time.Hour))
	for _, s := range []*domain.TimeSession{s1, s2, orphan} {
		require.NoError(t, repo.Create(ctx, s))
	}

	a.Name = "Deep work"
	a.Color = "#b8bb26"
	n, err := repo.SyncSnapshots(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	fetched, err := repo.GetByID(ctx, s2.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deep work", fetched.SavedActivityName)
	assert.Equal(t, "#b8bb26", string(fetched.SavedActivityColor))

	untouched, err := repo.GetByID(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deleted activity", untouched.SavedActivityName)
}

func TestSessionRepo_DetachActivity(t *testing.T) {
	repo, actRepo, a := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(a, testutil.WithSpan(day, time.Hour))
	require.NoError(t, repo.Create(ctx, sess))

	n, err := repo.DetachActivity(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, actRepo.Delete(ctx, a.ID))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.ActivityID)
	assert.Nil(t, fetched.Activity)
	assert.Equal(t, "Coding", fetched.DisplayTitle())
	assert.Equal(t, "#fb4934", string(fetched.DisplayColor()))
}

func TestSessionRepo_DeleteRemovesGoals(t *testing.T) {
	repo, _, a := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(a, testutil.WithSpan(day, time.Hour), testutil.WithGoals("a", "b"))
	require.NoError(t, repo.Create(ctx, sess))
	require.NoError(t, repo.Delete(ctx, sess.ID))

	_, err := repo.GetByID(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	goals, err := repo.goals.ListBySession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)

	assert.ErrorIs(t, repo.Delete(ctx, sess.ID), ErrNotFound)
}

func TestSessionRepo_DeleteByActivity(t *testing.T) {
	repo, actRepo, a := sessionTestSetup(t)
	ctx := context.Background()

	other := testutil.NewTestActivity("Reading")
	require.NoError(t, actRepo.Create(ctx, other))

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(a, testutil.WithSpan(day, time.Hour), testutil.WithGoals("x"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(a, testutil.WithSpan(day.Add(time.Hour), time.Hour))))
	kept := testutil.NewTestSession(other, testutil.WithSpan(day.Add(2*time.Hour), time.Hour), testutil.WithGoals("y"))
	require.NoError(t, repo.Create(ctx, kept))

	n, err := repo.DeleteByActivity(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].ID)
	assert.Len(t, list[0].Goals, 1)
}
