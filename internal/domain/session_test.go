package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newActivity(t *testing.T, name, color string) *Activity {
	t.Helper()
	a, err := NewActivity(name, color, t0)
	require.NoError(t, err)
	return a
}

func TestNewActivity_RejectsBlankName(t *testing.T) {
	_, err := NewActivity("   ", "", t0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "activity name", ve.Field)
}

func TestActivity_SetDetails_NoChangeOnInvalidColor(t *testing.T) {
	a := newActivity(t, "Reading", "#112233")
	err := a.SetDetails("Writing", "bogus", t0.Add(time.Hour))
	require.Error(t, err)
	assert.Equal(t, "Reading", a.Name)
	assert.Equal(t, Color("#112233"), a.Color)
	assert.Equal(t, t0, a.UpdatedAt)
}

func TestNewTimeSession_SnapshotsAndGoals(t *testing.T) {
	a := newActivity(t, "Piano", "#d3869b")

	s, err := NewTimeSession(a, []string{"scales", "etude", "sight reading"}, t0)
	require.NoError(t, err)

	assert.True(t, s.IsRunning())
	assert.Equal(t, t0, s.StartTime)
	assert.Equal(t, "Piano", s.SavedActivityName)
	assert.Equal(t, Color("#d3869b"), s.SavedActivityColor)
	require.NotNil(t, s.ActivityID)
	assert.Equal(t, a.ID, *s.ActivityID)
	assert.Equal(t, DefaultRating, s.ProductivityRating)
	assert.Equal(t, DefaultRating, s.DistractionRating)

	require.Len(t, s.Goals, 3)
	for i, want := range []string{"scales", "etude", "sight reading"} {
		assert.Equal(t, want, s.Goals[i].Text)
		assert.Equal(t, i, s.Goals[i].Position)
		assert.Equal(t, s.ID, s.Goals[i].SessionID)
		assert.False(t, s.Goals[i].IsCompleted)
	}
}

func TestNewTimeSession_BlankGoalFails(t *testing.T) {
	a := newActivity(t, "Piano", "")
	_, err := NewTimeSession(a, []string{"scales", " "}, t0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTimeSession_CloseTwiceFails(t *testing.T) {
	s, err := NewTimeSession(newActivity(t, "Run", ""), nil, t0)
	require.NoError(t, err)

	end := t0.Add(30 * time.Minute)
	require.NoError(t, s.Close(end))
	assert.False(t, s.IsRunning())

	err = s.Close(end.Add(time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, end, *s.EndTime, "end time must not move on double close")
}

func TestTimeSession_DisplayFallsBackToSnapshot(t *testing.T) {
	a := newActivity(t, "Chess", "#fabd2f")
	s, err := NewTimeSession(a, nil, t0)
	require.NoError(t, err)

	a.Name = "Chess puzzles"
	assert.Equal(t, "Chess puzzles", s.DisplayTitle(), "live reference wins")

	s.Activity = nil
	s.ActivityID = nil
	assert.Equal(t, "Chess", s.DisplayTitle())
	assert.Equal(t, Color("#fabd2f"), s.DisplayColor())
}

func TestTimeSession_Duration(t *testing.T) {
	s := &TimeSession{StartTime: t0}
	assert.Equal(t, 5*time.Minute, s.Duration(t0.Add(5*time.Minute)))
	assert.Equal(t, time.Duration(0), s.Duration(t0.Add(-time.Minute)), "never negative")

	end := t0.Add(90 * time.Minute)
	s.EndTime = &end
	assert.Equal(t, 90*time.Minute, s.Duration(t0.Add(10*time.Hour)))
}

func TestTimeSession_SetRatings(t *testing.T) {
	s := &TimeSession{ProductivityRating: 5, DistractionRating: 5}
	require.NoError(t, s.SetRatings(8, 2))
	assert.Equal(t, 8, s.ProductivityRating)
	assert.Equal(t, 2, s.DistractionRating)

	err := s.SetRatings(9, 11)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 8, s.ProductivityRating, "first rating not applied when second is invalid")

	assert.ErrorIs(t, s.SetRatings(0, 5), ErrValidation)
}

func TestTimeSession_AddGoalAndProgress(t *testing.T) {
	s, err := NewTimeSession(newActivity(t, "Study", ""), []string{"chapter 1"}, t0)
	require.NoError(t, err)

	g, err := s.AddGoal("flashcards", true, t0)
	require.NoError(t, err)
	assert.True(t, g.IsCompleted)
	assert.Equal(t, 1, g.Position)
	assert.Same(t, g, s.Goal(g.ID))

	done, total := s.GoalProgress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)

	s.Goals[0].Toggle()
	done, _ = s.GoalProgress()
	assert.Equal(t, 2, done)
}

func TestPreviousNotes(t *testing.T) {
	_, ok := PreviousNotes(nil)
	assert.False(t, ok)

	older := &TimeSession{StartTime: t0, Notes: "old notes"}
	newer := &TimeSession{StartTime: t0.Add(time.Hour), Notes: "  keep going on ch. 4 \n"}
	notes, ok := PreviousNotes([]*TimeSession{newer, older})
	assert.True(t, ok)
	assert.Equal(t, "keep going on ch. 4", notes)

	blank := &TimeSession{StartTime: t0.Add(2 * time.Hour), Notes: "   "}
	_, ok = PreviousNotes([]*TimeSession{older, blank})
	assert.False(t, ok, "only the most recent session's notes count")
}

func TestSortByStartDesc(t *testing.T) {
	a := &TimeSession{ID: "a", StartTime: t0}
	b := &TimeSession{ID: "b", StartTime: t0.Add(time.Hour)}
	c := &TimeSession{ID: "c", StartTime: t0.Add(-time.Hour)}
	list := []*TimeSession{a, b, c}
	SortByStartDesc(list)
	assert.Equal(t, []string{"b", "a", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestErrors_MatchSentinels(t *testing.T) {
	assert.ErrorIs(t, &ConflictError{RunningSessionID: "x"}, ErrConflict)
	assert.ErrorIs(t, &InvalidStateError{Entity: "session"}, ErrInvalidState)
	assert.NotErrorIs(t, &ConflictError{}, ErrValidation)
	assert.Contains(t, (&ConflictError{}).Error(), "stop the current session first")
}
