package repository

import (
	"context"

	"github.com/alexanderramin/tempo/internal/domain"
)

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context) ([]*domain.Activity, error)
	Update(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id string) error
}

// SessionRepo stores sessions together with their goals. Sessions are
// returned with Activity resolved when the reference is live.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.TimeSession) error
	GetByID(ctx context.Context, id string) (*domain.TimeSession, error)
	GetRunning(ctx context.Context) (*domain.TimeSession, error)
	List(ctx context.Context) ([]*domain.TimeSession, error)
	ListByActivity(ctx context.Context, activityID string) ([]*domain.TimeSession, error)
	Update(ctx context.Context, s *domain.TimeSession) error
	SyncSnapshots(ctx context.Context, a *domain.Activity) (int, error)
	DetachActivity(ctx context.Context, activityID string) (int, error)
	Delete(ctx context.Context, id string) error
	DeleteByActivity(ctx context.Context, activityID string) (int, error)
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.SessionGoal) error
	GetByID(ctx context.Context, id string) (*domain.SessionGoal, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.SessionGoal, error)
	Update(ctx context.Context, g *domain.SessionGoal) error
	NextPosition(ctx context.Context, sessionID string) (int, error)
	DeleteBySession(ctx context.Context, sessionID string) (int, error)
	DeleteByActivity(ctx context.Context, activityID string) (int, error)
}
