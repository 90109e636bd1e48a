package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/stats"
	"github.com/alexanderramin/tempo/internal/timeline"
)

type dashboardService struct {
	sessions    repository.SessionRepo
	rollup      *stats.Rollup
	recentLimit int
}

// NewDashboardService builds the dashboard read model. A non-positive
// recentLimit uses stats.DefaultRecentLimit.
func NewDashboardService(sessions repository.SessionRepo, rollup *stats.Rollup, recentLimit int) DashboardService {
	if recentLimit <= 0 {
		recentLimit = stats.DefaultRecentLimit
	}
	return &dashboardService{sessions: sessions, rollup: rollup, recentLimit: recentLimit}
}

func (s *dashboardService) Summary(ctx context.Context, now time.Time) (*stats.Summary, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	summary := s.rollup.Summarize(sessions, now, s.recentLimit)
	return &summary, nil
}

type timelineService struct {
	sessions repository.SessionRepo
	engine   *timeline.Engine
}

func NewTimelineService(sessions repository.SessionRepo, engine *timeline.Engine) TimelineService {
	return &timelineService{sessions: sessions, engine: engine}
}

func (s *timelineService) Day(ctx context.Context, day, now time.Time) (*timeline.DayView, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	view := s.engine.Day(sessions, day, now)
	return &view, nil
}

func (s *timelineService) Strip(selected, now time.Time) []timeline.StripDay {
	return s.engine.WeekStrip(selected, now)
}
