package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalRepo_CreateToggleAndList(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	sessions := NewSQLiteSessionRepo(conn)
	goals := NewSQLiteGoalRepo(conn)

	sess := testutil.NewTestSession(nil, testutil.WithSpan(day, time.Hour), testutil.WithGoals("plan"))
	require.NoError(t, sessions.Create(ctx, sess))

	next, err := goals.NextPosition(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	g, err := domain.NewSessionGoal("  wrote tests  ", true, day)
	require.NoError(t, err)
	g.SessionID = sess.ID
	g.Position = next
	require.NoError(t, goals.Create(ctx, g))

	first := sess.Goals[0]
	first.Toggle()
	require.NoError(t, goals.Update(ctx, first))

	list, err := goals.ListBySession(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "plan", list[0].Text)
	assert.True(t, list[0].IsCompleted)
	assert.Equal(t, "wrote tests", list[1].Text)
	assert.True(t, list[1].IsCompleted)

	fetched, err := goals.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, fetched.SessionID)
}

func TestGoalRepo_NextPositionEmpty(t *testing.T) {
	goals := NewSQLiteGoalRepo(testutil.NewTestDB(t))

	next, err := goals.NextPosition(context.Background(), "none")
	require.NoError(t, err)
	assert.Equal(t, 0, next)
}

func TestGoalRepo_NotFound(t *testing.T) {
	goals := NewSQLiteGoalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := goals.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, goals.Update(ctx, &domain.SessionGoal{ID: "missing", Text: "x"}), ErrNotFound)
}
