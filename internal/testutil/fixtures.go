package testutil

import (
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/google/uuid"
)

// Activity options
type ActivityOption func(*domain.Activity)

func WithColor(c string) ActivityOption {
	return func(a *domain.Activity) {
		a.Color = domain.Color(c)
	}
}

func NewTestActivity(name string, opts ...ActivityOption) *domain.Activity {
	now := time.Now().UTC()
	a := &domain.Activity{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     domain.DefaultColor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session options
type SessionOption func(*domain.TimeSession)

func WithStart(t time.Time) SessionOption {
	return func(s *domain.TimeSession) {
		s.StartTime = t
		s.CreatedAt = t
	}
}

// WithSpan sets the start and closes the session after d.
func WithSpan(start time.Time, d time.Duration) SessionOption {
	return func(s *domain.TimeSession) {
		s.StartTime = start
		s.CreatedAt = start
		end := start.Add(d)
		s.EndTime = &end
	}
}

func Running() SessionOption {
	return func(s *domain.TimeSession) {
		s.EndTime = nil
	}
}

func WithNotes(n string) SessionOption {
	return func(s *domain.TimeSession) {
		s.Notes = n
	}
}

func WithRatings(productivity, distraction int) SessionOption {
	return func(s *domain.TimeSession) {
		s.ProductivityRating = productivity
		s.DistractionRating = distraction
	}
}

// WithGoals appends open goals in order.
func WithGoals(texts ...string) SessionOption {
	return func(s *domain.TimeSession) {
		for _, text := range texts {
			s.Goals = append(s.Goals, &domain.SessionGoal{
				ID:        uuid.New().String(),
				SessionID: s.ID,
				Position:  len(s.Goals),
				Text:      text,
				CreatedAt: s.StartTime,
			})
		}
	}
}

// NewTestSession builds a closed one-hour session for a, or an orphaned one
// when a is nil.
func NewTestSession(a *domain.Activity, opts ...SessionOption) *domain.TimeSession {
	start := time.Now().UTC().Add(-2 * time.Hour)
	end := start.Add(time.Hour)
	s := &domain.TimeSession{
		ID:                 uuid.New().String(),
		StartTime:          start,
		EndTime:            &end,
		ProductivityRating: domain.DefaultRating,
		DistractionRating:  domain.DefaultRating,
		CreatedAt:          start,
	}
	if a != nil {
		id := a.ID
		s.ActivityID = &id
		s.Activity = a
		s.Snapshot(a)
	} else {
		s.SavedActivityName = "Deleted activity"
		s.SavedActivityColor = domain.DefaultColor
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
