package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/stats"
	"github.com/alexanderramin/tempo/internal/timeline"
)

// Clock supplies the current instant for writes.
type Clock func() time.Time

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// Review is what the user records when closing a session. Nil fields are
// left as they are.
type Review struct {
	Productivity    *int
	Distraction     *int
	Notes           *string
	CompletedGoals  []string
	Accomplishments []string
}

type SessionService interface {
	Start(ctx context.Context, activityID string, goalTexts []string) (*domain.TimeSession, error)
	End(ctx context.Context, sessionID string) error
	EndWithReview(ctx context.Context, sessionID string, review Review) (*domain.TimeSession, error)
	AddAccomplishment(ctx context.Context, sessionID, text string) (*domain.SessionGoal, error)
	ToggleGoal(ctx context.Context, goalID string) (*domain.SessionGoal, error)
	Rate(ctx context.Context, sessionID string, productivity, distraction int) error
	SetNotes(ctx context.Context, sessionID, notes string) error
	Active(ctx context.Context) (*domain.TimeSession, error)
	GetByID(ctx context.Context, id string) (*domain.TimeSession, error)
	List(ctx context.Context) ([]*domain.TimeSession, error)
	ListByActivity(ctx context.Context, activityID string) ([]*domain.TimeSession, error)
	Delete(ctx context.Context, id string) error
	PreviousNotes(ctx context.Context, activityID string) (string, error)
}

type ActivityService interface {
	Create(ctx context.Context, name, color string) (*domain.Activity, error)
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context) ([]*domain.Activity, error)
	Resolve(ctx context.Context, ref string) (*domain.Activity, error)
	UpdateDetails(ctx context.Context, id, name, color string) error
	Delete(ctx context.Context, id string) error
	DeleteSessionHistory(ctx context.Context, id string) (int, error)
}

type DashboardService interface {
	Summary(ctx context.Context, now time.Time) (*stats.Summary, error)
}

type TimelineService interface {
	Day(ctx context.Context, day, now time.Time) (*timeline.DayView, error)
	Strip(selected, now time.Time) []timeline.StripDay
}
