package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
)

type activityService struct {
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	now        Clock
	observer   UseCaseObserver
}

func NewActivityService(
	activities repository.ActivityRepo,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) ActivityService {
	return &activityService{
		activities: activities,
		uow:        uow,
		now:        clockOrDefault(clock),
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *activityService) Create(ctx context.Context, name, color string) (a *domain.Activity, err error) {
	uc := beginUseCase(s.observer, "create-activity", map[string]any{"name": name})
	defer uc.finish(ctx, &err)

	a, err = domain.NewActivity(name, color, s.now())
	if err != nil {
		return nil, err
	}
	if err = s.activities.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.fields["activity_id"] = a.ID
	return a, nil
}

func (s *activityService) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	a, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, missing(err, "activity", id)
	}
	return a, nil
}

func (s *activityService) List(ctx context.Context) ([]*domain.Activity, error) {
	return s.activities.List(ctx)
}

// Resolve finds an activity by exact ID, unique ID prefix, or
// case-insensitive name, in that order.
func (s *activityService) Resolve(ctx context.Context, ref string) (*domain.Activity, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &domain.ValidationError{Field: "activity", Reason: "must not be empty"}
	}

	all, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}

	var byPrefix, byName []*domain.Activity
	for _, a := range all {
		if a.ID == ref {
			return a, nil
		}
		if strings.HasPrefix(a.ID, ref) {
			byPrefix = append(byPrefix, a)
		}
		if strings.EqualFold(a.Name, ref) {
			byName = append(byName, a)
		}
	}

	for _, matches := range [][]*domain.Activity{byPrefix, byName} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return nil, &domain.ValidationError{Field: "activity", Reason: "\"" + ref + "\" matches more than one activity; use its ID"}
		}
	}
	return nil, &domain.InvalidStateError{Entity: "activity", ID: ref, Reason: "does not exist"}
}

// UpdateDetails renames and recolors the activity and rewrites the snapshot
// on every session still referencing it. An empty color keeps the current one.
func (s *activityService) UpdateDetails(ctx context.Context, id, name, color string) (err error) {
	uc := beginUseCase(s.observer, "rename-activity", map[string]any{"activity_id": id})
	defer uc.finish(ctx, &err)

	var synced int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txActivities := repository.NewSQLiteActivityRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)

		a, err := txActivities.GetByID(ctx, id)
		if err != nil {
			return missing(err, "activity", id)
		}
		if color == "" {
			color = string(a.Color)
		}
		if err := a.SetDetails(name, color, s.now()); err != nil {
			return err
		}
		if err := txActivities.Update(ctx, a); err != nil {
			return err
		}

		synced, err = syncDependents(ctx, txSessions, a)
		return err
	})
	if err != nil {
		return err
	}
	uc.fields["synced_sessions"] = synced
	return nil
}

// syncDependents pushes a's display attributes into the sessions that still
// reference it. Severed sessions keep their frozen snapshot.
func syncDependents(ctx context.Context, sessions repository.SessionRepo, a *domain.Activity) (int, error) {
	return sessions.SyncSnapshots(ctx, a)
}

// Delete severs every session reference to the activity, then removes it.
// The sessions survive with their snapshot.
func (s *activityService) Delete(ctx context.Context, id string) (err error) {
	uc := beginUseCase(s.observer, "delete-activity", map[string]any{"activity_id": id})
	defer uc.finish(ctx, &err)

	var detached int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txActivities := repository.NewSQLiteActivityRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)

		if _, err := txActivities.GetByID(ctx, id); err != nil {
			return missing(err, "activity", id)
		}
		if detached, err = txSessions.DetachActivity(ctx, id); err != nil {
			return err
		}
		return missing(txActivities.Delete(ctx, id), "activity", id)
	})
	if err != nil {
		return err
	}
	uc.fields["detached_sessions"] = detached
	return nil
}

// DeleteSessionHistory removes every session referencing the activity along
// with their goals. The activity itself is kept.
func (s *activityService) DeleteSessionHistory(ctx context.Context, id string) (deleted int, err error) {
	uc := beginUseCase(s.observer, "delete-session-history", map[string]any{"activity_id": id})
	defer uc.finish(ctx, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txActivities := repository.NewSQLiteActivityRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)

		if _, err := txActivities.GetByID(ctx, id); err != nil {
			return missing(err, "activity", id)
		}
		n, err := txSessions.DeleteByActivity(ctx, id)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.fields["deleted_sessions"] = deleted
	return deleted, nil
}
