package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

// fakeClock is a settable Clock for deterministic start and end times.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type fixture struct {
	db         *sql.DB
	clock      *fakeClock
	observer   *recordingObserver
	activities *repository.SQLiteActivityRepo
	sessions   *repository.SQLiteSessionRepo
	goals      *repository.SQLiteGoalRepo
	sessionSvc SessionService
	activitySvc ActivityService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newFixtureWithUoW(t, database, testutil.NewTestUoW(database))
}

func newFixtureWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *fixture {
	t.Helper()
	f := &fixture{
		db:         database,
		clock:      &fakeClock{now: t0},
		observer:   &recordingObserver{},
		activities: repository.NewSQLiteActivityRepo(database),
		sessions:   repository.NewSQLiteSessionRepo(database),
		goals:      repository.NewSQLiteGoalRepo(database),
	}
	f.sessionSvc = NewSessionService(f.sessions, uow, f.clock.Now, f.observer)
	f.activitySvc = NewActivityService(f.activities, uow, f.clock.Now, f.observer)
	return f
}

func (f *fixture) activity(t *testing.T, name, color string) *domain.Activity {
	t.Helper()
	a, err := f.activitySvc.Create(context.Background(), name, color)
	require.NoError(t, err)
	return a
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
