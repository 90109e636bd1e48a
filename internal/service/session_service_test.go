package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_CreatesRunningSessionWithGoals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "#fb4934")

	s, err := f.sessionSvc.Start(ctx, a.ID, []string{"outline", "draft"})
	require.NoError(t, err)
	assert.True(t, s.IsRunning())
	assert.True(t, t0.Equal(s.StartTime))

	fetched, err := f.sessionSvc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsRunning())
	assert.Equal(t, "Coding", fetched.SavedActivityName)
	assert.Equal(t, domain.Color("#fb4934"), fetched.SavedActivityColor)
	assert.Equal(t, domain.DefaultRating, fetched.ProductivityRating)
	assert.Equal(t, domain.DefaultRating, fetched.DistractionRating)
	require.Len(t, fetched.Goals, 2)
	assert.Equal(t, "outline", fetched.Goals[0].Text)
	assert.Equal(t, "draft", fetched.Goals[1].Text)
	for _, g := range fetched.Goals {
		assert.False(t, g.IsCompleted)
	}

	ev := f.observer.last()
	assert.Equal(t, "start-session", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, s.ID, ev.Fields["session_id"])
}

func TestStart_ConflictWhileRunning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	first, err := f.sessionSvc.Start(ctx, a.ID, nil)
	require.NoError(t, err)

	_, err = f.sessionSvc.Start(ctx, a.ID, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.RunningSessionID)

	all, err := f.sessionSvc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	ev := f.observer.last()
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, domain.ErrConflict)
}

func TestStart_AfterEndSucceeds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	first, err := f.sessionSvc.Start(ctx, a.ID, nil)
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	require.NoError(t, f.sessionSvc.End(ctx, first.ID))

	second, err := f.sessionSvc.Start(ctx, a.ID, nil)
	require.NoError(t, err)

	active, err := f.sessionSvc.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestStart_UnknownActivity(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessionSvc.Start(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestStart_BlankGoalRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	_, err := f.sessionSvc.Start(ctx, a.ID, []string{"ok", "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	active, err := f.sessionSvc.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestStart_RollbackOnGoalInsertFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	// ExecContext #1 = session insert, #2 = first goal insert.
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: fmt.Errorf("injected goal insert failure")}
	f := newFixtureWithUoW(t, database, failUoW)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	_, err := f.sessionSvc.Start(ctx, a.ID, []string{"outline"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected goal insert failure")

	all, err := f.sessions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "no session should exist after rollback")
}

func TestEnd_ClosesOnceAndKeepsReviewFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	s, err := f.sessionSvc.Start(ctx, a.ID, nil)
	require.NoError(t, err)

	f.clock.Advance(45 * time.Minute)
	require.NoError(t, f.sessionSvc.End(ctx, s.ID))

	closed, err := f.sessionSvc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.EndTime)
	assert.True(t, t0.Add(45*time.Minute).Equal(*closed.EndTime))
	assert.Equal(t, domain.DefaultRating, closed.ProductivityRating)
	assert.Empty(t, closed.Notes)

	f.clock.Advance(time.Hour)
	err = f.sessionSvc.End(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	again, err := f.sessionSvc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, closed.EndTime.Equal(*again.EndTime), "second end must not move the end time")
}

func TestEnd_MissingSession(t *testing.T) {
	f := newFixture(t)

	err := f.sessionSvc.End(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestEndWithReview_AppliesEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	s, err := f.sessionSvc.Start(ctx, a.ID, []string{"outline", "draft"})
	require.NoError(t, err)
	f.clock.Advance(time.Hour)

	closed, err := f.sessionSvc.EndWithReview(ctx, s.ID, Review{
		Productivity:    intPtr(8),
		Notes:           strPtr("good flow"),
		CompletedGoals:  []string{s.Goals[1].ID},
		Accomplishments: []string{"fixed flaky test"},
	})
	require.NoError(t, err)
	assert.False(t, closed.IsRunning())

	fetched, err := f.sessionSvc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, fetched.ProductivityRating)
	assert.Equal(t, domain.DefaultRating, fetched.DistractionRating)
	assert.Equal(t, "good flow", fetched.Notes)
	require.Len(t, fetched.Goals, 3)
	assert.False(t, fetched.Goals[0].IsCompleted)
	assert.True(t, fetched.Goals[1].IsCompleted)
	assert.Equal(t, "fixed flaky test", fetched.Goals[2].Text)
	assert.True(t, fetched.Goals[2].IsCompleted)

	done, total := fetched.GoalProgress()
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
}

func TestEndWithReview_InvalidRatingRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	s, err := f.sessionSvc.Start(ctx, a.ID, nil)
	require.NoError(t, err)

	_, err = f.sessionSvc.EndWithReview(ctx, s.ID, Review{Distraction: intPtr(11)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	fetched, err := f.sessionSvc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsRunning())
}

func TestAddAccomplishment_OnClosedSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	s, err := f.sessionSvc.Start(ctx, a.ID, []string{"plan"})
	require.NoError(t, err)
	require.NoError(t, f.sessionSvc.End(ctx, s.ID))

	g, err := f.sessionSvc.AddAccomplishment(ctx, s.ID, "  shipped it ")
	require.NoError(t, err)
	assert.True(t, g.IsCompleted)
	assert.Equal(t, "shipped it", g.Text)
	assert.Equal(t, 1, g.Position)

	_, err = f.sessionSvc.AddAccomplishment(ctx, s.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.sessionSvc.AddAccomplishment(ctx, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestToggleGoal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	s, err := f.sessionSvc.Start(ctx, a.ID, []string{"plan"})
	require.NoError(t, err)
	goalID := s.Goals[0].ID

	g, err := f.sessionSvc.ToggleGoal(ctx, goalID)
	require.NoError(t, err)
	assert.True(t, g.IsCompleted)

	g, err = f.sessionSvc.ToggleGoal(ctx, goalID)
	require.NoError(t, err)
	assert.False(t, g.IsCompleted)

	_, err = f.sessionSvc.ToggleGoal(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	s, err := f.sessionSvc.Start(ctx, a.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.sessionSvc.Rate(ctx, s.ID, 10, 1))
	for _, bad := range [][2]int{{0, 5}, {5, 11}, {-1, -1}} {
		err := f.sessionSvc.Rate(ctx, s.ID, bad[0], bad[1])
		assert.ErrorIs(t, err, domain.ErrValidation, "ratings %v", bad)
	}

	fetched, err := f.sessionSvc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, fetched.ProductivityRating)
	assert.Equal(t, 1, fetched.DistractionRating)
}

func TestSetNotesAndPreviousNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	notes, err := f.sessionSvc.PreviousNotes(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	s, err := f.sessionSvc.Start(ctx, a.ID, nil)
	require.NoError(t, err)
	require.NoError(t, f.sessionSvc.SetNotes(ctx, s.ID, "  pick up at the parser  "))
	require.NoError(t, f.sessionSvc.End(ctx, s.ID))

	notes, err = f.sessionSvc.PreviousNotes(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "pick up at the parser", notes)
}

func TestActive_NilWhenNothingRuns(t *testing.T) {
	f := newFixture(t)

	active, err := f.sessionSvc.Active(context.Background())
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestDeleteSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.activity(t, "Coding", "")

	s, err := f.sessionSvc.Start(ctx, a.ID, []string{"plan"})
	require.NoError(t, err)
	require.NoError(t, f.sessionSvc.Delete(ctx, s.ID))

	_, err = f.sessionSvc.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	goals, err := f.goals.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)

	assert.ErrorIs(t, f.sessionSvc.Delete(ctx, s.ID), domain.ErrInvalidState)
}
