package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
)

type sessionService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	now      Clock
	observer UseCaseObserver
}

func NewSessionService(
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) SessionService {
	return &sessionService{
		sessions: sessions,
		uow:      uow,
		now:      clockOrDefault(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Start opens a session for activityID with one open goal per text.
// It fails with a ConflictError while another session is running.
func (s *sessionService) Start(ctx context.Context, activityID string, goalTexts []string) (session *domain.TimeSession, err error) {
	uc := beginUseCase(s.observer, "start-session", map[string]any{
		"activity_id": activityID,
		"goal_count":  len(goalTexts),
	})
	defer uc.finish(ctx, &err)

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txActivities := repository.NewSQLiteActivityRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)

		a, err := txActivities.GetByID(ctx, activityID)
		if err != nil {
			return missing(err, "activity", activityID)
		}

		running, err := txSessions.GetRunning(ctx)
		switch {
		case err == nil:
			return &domain.ConflictError{RunningSessionID: running.ID}
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		session, err = domain.NewTimeSession(a, goalTexts, now)
		if err != nil {
			return err
		}
		return startConflict(txSessions.Create(ctx, session))
	})
	if err != nil {
		return nil, err
	}
	uc.fields["session_id"] = session.ID
	return session, nil
}

func (s *sessionService) End(ctx context.Context, sessionID string) error {
	_, err := s.EndWithReview(ctx, sessionID, Review{})
	return err
}

// EndWithReview closes the session and applies review in the same
// transaction. Ratings, notes and goals are only touched when review sets them.
func (s *sessionService) EndWithReview(ctx context.Context, sessionID string, review Review) (session *domain.TimeSession, err error) {
	uc := beginUseCase(s.observer, "end-session", map[string]any{"session_id": sessionID})
	defer uc.finish(ctx, &err)

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txGoals := repository.NewSQLiteGoalRepo(tx)

		session, err = txSessions.GetByID(ctx, sessionID)
		if err != nil {
			return missing(err, "session", sessionID)
		}
		if err := session.Close(now); err != nil {
			return err
		}
		if err := applyReview(session, review); err != nil {
			return err
		}
		if err := txSessions.Update(ctx, session); err != nil {
			return err
		}

		for _, goalID := range review.CompletedGoals {
			g := session.Goal(goalID)
			if g == nil {
				return &domain.InvalidStateError{Entity: "goal", ID: goalID, Reason: "does not belong to this session"}
			}
			if g.IsCompleted {
				continue
			}
			g.IsCompleted = true
			if err := txGoals.Update(ctx, g); err != nil {
				return err
			}
		}

		for _, text := range review.Accomplishments {
			g, err := session.AddGoal(text, true, now)
			if err != nil {
				return err
			}
			if err := txGoals.Create(ctx, g); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.fields["duration_sec"] = int(session.Duration(now).Seconds())
	return session, nil
}

func applyReview(session *domain.TimeSession, review Review) error {
	if review.Productivity != nil || review.Distraction != nil {
		p, d := session.ProductivityRating, session.DistractionRating
		if review.Productivity != nil {
			p = *review.Productivity
		}
		if review.Distraction != nil {
			d = *review.Distraction
		}
		if err := session.SetRatings(p, d); err != nil {
			return err
		}
	}
	if review.Notes != nil {
		session.Notes = *review.Notes
	}
	return nil
}

// AddAccomplishment appends a completed goal. Closed sessions accept
// accomplishments too.
func (s *sessionService) AddAccomplishment(ctx context.Context, sessionID, text string) (goal *domain.SessionGoal, err error) {
	uc := beginUseCase(s.observer, "add-accomplishment", map[string]any{"session_id": sessionID})
	defer uc.finish(ctx, &err)

	goal, err = domain.NewSessionGoal(text, true, s.now())
	if err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txGoals := repository.NewSQLiteGoalRepo(tx)

		if _, err := txSessions.GetByID(ctx, sessionID); err != nil {
			return missing(err, "session", sessionID)
		}
		pos, err := txGoals.NextPosition(ctx, sessionID)
		if err != nil {
			return err
		}
		goal.SessionID = sessionID
		goal.Position = pos
		return txGoals.Create(ctx, goal)
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *sessionService) ToggleGoal(ctx context.Context, goalID string) (goal *domain.SessionGoal, err error) {
	uc := beginUseCase(s.observer, "toggle-goal", map[string]any{"goal_id": goalID})
	defer uc.finish(ctx, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)

		goal, err = txGoals.GetByID(ctx, goalID)
		if err != nil {
			return missing(err, "goal", goalID)
		}
		goal.Toggle()
		return txGoals.Update(ctx, goal)
	})
	if err != nil {
		return nil, err
	}
	uc.fields["completed"] = goal.IsCompleted
	return goal, nil
}

func (s *sessionService) Rate(ctx context.Context, sessionID string, productivity, distraction int) (err error) {
	uc := beginUseCase(s.observer, "rate-session", map[string]any{
		"session_id":   sessionID,
		"productivity": productivity,
		"distraction":  distraction,
	})
	defer uc.finish(ctx, &err)

	return s.updateSession(ctx, sessionID, func(session *domain.TimeSession) error {
		return session.SetRatings(productivity, distraction)
	})
}

func (s *sessionService) SetNotes(ctx context.Context, sessionID, notes string) (err error) {
	uc := beginUseCase(s.observer, "set-session-notes", map[string]any{"session_id": sessionID})
	defer uc.finish(ctx, &err)

	return s.updateSession(ctx, sessionID, func(session *domain.TimeSession) error {
		session.Notes = notes
		return nil
	})
}

func (s *sessionService) updateSession(ctx context.Context, sessionID string, mutate func(*domain.TimeSession) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		session, err := txSessions.GetByID(ctx, sessionID)
		if err != nil {
			return missing(err, "session", sessionID)
		}
		if err := mutate(session); err != nil {
			return err
		}
		return txSessions.Update(ctx, session)
	})
}

// Active returns the running session, or nil when nothing runs.
func (s *sessionService) Active(ctx context.Context) (*domain.TimeSession, error) {
	session, err := s.sessions.GetRunning(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return session, err
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.TimeSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, missing(err, "session", id)
	}
	return session, nil
}

func (s *sessionService) List(ctx context.Context) ([]*domain.TimeSession, error) {
	return s.sessions.List(ctx)
}

func (s *sessionService) ListByActivity(ctx context.Context, activityID string) ([]*domain.TimeSession, error) {
	return s.sessions.ListByActivity(ctx, activityID)
}

// Delete removes the session and its goals.
func (s *sessionService) Delete(ctx context.Context, id string) (err error) {
	uc := beginUseCase(s.observer, "delete-session", map[string]any{"session_id": id})
	defer uc.finish(ctx, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return missing(repository.NewSQLiteSessionRepo(tx).Delete(ctx, id), "session", id)
	})
}

// PreviousNotes returns the notes of the activity's most recent session, or
// "" when it has none.
func (s *sessionService) PreviousNotes(ctx context.Context, activityID string) (string, error) {
	sessions, err := s.sessions.ListByActivity(ctx, activityID)
	if err != nil {
		return "", err
	}
	notes, _ := domain.PreviousNotes(sessions)
	return notes, nil
}
