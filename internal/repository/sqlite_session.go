package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db    db.DBTX
	goals *SQLiteGoalRepo
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn, goals: NewSQLiteGoalRepo(conn)}
}

// sessionSelect joins the live activity so DisplayTitle and DisplayColor
// resolve without a second lookup.
const sessionSelect = `SELECT
		s.id, s.activity_id, s.start_time, s.end_time,
		s.saved_activity_name, s.saved_activity_color,
		s.productivity_rating, s.distraction_rating, s.notes, s.created_at,
		a.id, a.name, a.color, a.created_at, a.updated_at
	FROM time_sessions s
	LEFT JOIN activities a ON a.id = s.activity_id`

// Create inserts the session and its goals.
func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.TimeSession) error {
	query := `INSERT INTO time_sessions
		(id, activity_id, start_time, end_time, saved_activity_name, saved_activity_color,
		 productivity_rating, distraction_rating, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		nullableString(s.ActivityID),
		formatTime(s.StartTime),
		nullableTimeToString(s.EndTime),
		s.SavedActivityName,
		string(s.SavedActivityColor),
		s.ProductivityRating,
		s.DistractionRating,
		s.Notes,
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	for _, g := range s.Goals {
		g.SessionID = s.ID
		if err := r.goals.Create(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.TimeSession, error) {
	return r.getOne(ctx, `s.id = ?`, id, fmt.Sprintf("session %s", id))
}

// GetRunning returns the session without an end time, or ErrNotFound.
func (r *SQLiteSessionRepo) GetRunning(ctx context.Context) (*domain.TimeSession, error) {
	return r.getOne(ctx, `s.end_time IS NULL`, nil, "running session")
}

func (r *SQLiteSessionRepo) getOne(ctx context.Context, where string, arg any, label string) (*domain.TimeSession, error) {
	var args []any
	if arg != nil {
		args = append(args, arg)
	}
	query := sessionSelect + ` WHERE ` + where + ` LIMIT 1`
	s, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", label, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	goals, err := r.goals.ListBySession(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Goals = goals
	return s, nil
}

// List returns every session, newest first.
func (r *SQLiteSessionRepo) List(ctx context.Context) ([]*domain.TimeSession, error) {
	sessions, err := r.queryMany(ctx, ``)
	if err != nil {
		return nil, err
	}
	goals, err := r.goals.listWhere(ctx, ``)
	if err != nil {
		return nil, err
	}
	attachGoals(sessions, goals)
	return sessions, nil
}

// ListByActivity returns the sessions referencing activityID, newest first.
func (r *SQLiteSessionRepo) ListByActivity(ctx context.Context, activityID string) ([]*domain.TimeSession, error) {
	sessions, err := r.queryMany(ctx, `s.activity_id = ?`, activityID)
	if err != nil {
		return nil, err
	}
	goals, err := r.goals.listWhere(ctx,
		`session_id IN (SELECT id FROM time_sessions WHERE activity_id = ?)`, activityID)
	if err != nil {
		return nil, err
	}
	attachGoals(sessions, goals)
	return sessions, nil
}

// queryMany drains the result set before returning, so the caller may issue
// further queries on a single-connection pool.
func (r *SQLiteSessionRepo) queryMany(ctx context.Context, where string, args ...any) ([]*domain.TimeSession, error) {
	query := sessionSelect
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY s.start_time DESC, s.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.TimeSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// Update writes the mutable session columns. Goals are written through
// GoalRepo.
func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.TimeSession) error {
	query := `UPDATE time_sessions SET
		activity_id = ?, end_time = ?,
		saved_activity_name = ?, saved_activity_color = ?,
		productivity_rating = ?, distraction_rating = ?, notes = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(s.ActivityID),
		nullableTimeToString(s.EndTime),
		s.SavedActivityName,
		string(s.SavedActivityColor),
		s.ProductivityRating,
		s.DistractionRating,
		s.Notes,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("session %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

// SyncSnapshots copies a's name and color into every session that references it.
func (r *SQLiteSessionRepo) SyncSnapshots(ctx context.Context, a *domain.Activity) (int, error) {
	query := `UPDATE time_sessions SET saved_activity_name = ?, saved_activity_color = ?
		WHERE activity_id = ?`
	res, err := r.db.ExecContext(ctx, query, a.Name, string(a.Color), a.ID)
	if err != nil {
		return 0, fmt.Errorf("syncing session snapshots: %w", err)
	}
	return rowsAffected(res), nil
}

// DetachActivity clears the activity reference on every session pointing at
// activityID. Snapshots are left untouched.
func (r *SQLiteSessionRepo) DetachActivity(ctx context.Context, activityID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_sessions SET activity_id = NULL WHERE activity_id = ?`, activityID)
	if err != nil {
		return 0, fmt.Errorf("detaching sessions: %w", err)
	}
	return rowsAffected(res), nil
}

// Delete removes the session and its goals.
func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.goals.DeleteBySession(ctx, id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByActivity removes every session referencing activityID together
// with their goals.
func (r *SQLiteSessionRepo) DeleteByActivity(ctx context.Context, activityID string) (int, error) {
	if _, err := r.goals.DeleteByActivity(ctx, activityID); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_sessions WHERE activity_id = ?`, activityID)
	if err != nil {
		return 0, fmt.Errorf("deleting sessions by activity: %w", err)
	}
	return rowsAffected(res), nil
}

func attachGoals(sessions []*domain.TimeSession, goals map[string][]*domain.SessionGoal) {
	for _, s := range sessions {
		s.Goals = goals[s.ID]
	}
}

func scanSession(row scanner) (*domain.TimeSession, error) {
	var s domain.TimeSession
	var activityID, endTime sql.NullString
	var startTime, savedColor, createdAt string
	var aID, aName, aColor, aCreated, aUpdated sql.NullString

	err := row.Scan(
		&s.ID, &activityID, &startTime, &endTime,
		&s.SavedActivityName, &savedColor,
		&s.ProductivityRating, &s.DistractionRating, &s.Notes, &createdAt,
		&aID, &aName, &aColor, &aCreated, &aUpdated,
	)
	if err != nil {
		return nil, err
	}
	s.SavedActivityColor = domain.Color(savedColor)
	if activityID.Valid {
		id := activityID.String
		s.ActivityID = &id
	}

	if s.StartTime, err = parseTime(startTime); err != nil {
		return nil, err
	}
	if s.EndTime, err = parseNullableTime(endTime); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	if aID.Valid {
		a := &domain.Activity{ID: aID.String, Name: aName.String, Color: domain.Color(aColor.String)}
		if a.CreatedAt, err = parseTime(aCreated.String); err != nil {
			return nil, err
		}
		if a.UpdatedAt, err = parseTime(aUpdated.String); err != nil {
			return nil, err
		}
		s.Activity = a
	}
	return &s, nil
}
