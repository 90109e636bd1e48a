package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLiteGoalRepo implements GoalRepo using a SQLite database.
type SQLiteGoalRepo struct {
	db db.DBTX
}

// NewSQLiteGoalRepo creates a new SQLiteGoalRepo.
func NewSQLiteGoalRepo(conn db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: conn}
}

const goalColumns = `id, session_id, position, text, is_completed, created_at`

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.SessionGoal) error {
	query := `INSERT INTO session_goals (` + goalColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.SessionID,
		g.Position,
		g.Text,
		boolToInt(g.IsCompleted),
		formatTime(g.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, id string) (*domain.SessionGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM session_goals WHERE id = ?`
	g, err := scanGoal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session goal %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session goal: %w", err)
	}
	return g, nil
}

func (r *SQLiteGoalRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.SessionGoal, error) {
	bySession, err := r.listWhere(ctx, `session_id = ?`, sessionID)
	if err != nil {
		return nil, err
	}
	return bySession[sessionID], nil
}

// listWhere loads goals matching where, grouped by session and ordered by
// position. An empty where loads every goal.
func (r *SQLiteGoalRepo) listWhere(ctx context.Context, where string, args ...any) (map[string][]*domain.SessionGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM session_goals`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY session_id, position, created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing session goals: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]*domain.SessionGoal)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session goal row: %w", err)
		}
		out[g.SessionID] = append(out[g.SessionID], g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session goals: %w", err)
	}
	return out, nil
}

func (r *SQLiteGoalRepo) Update(ctx context.Context, g *domain.SessionGoal) error {
	query := `UPDATE session_goals SET text = ?, is_completed = ?, position = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, g.Text, boolToInt(g.IsCompleted), g.Position, g.ID)
	if err != nil {
		return fmt.Errorf("updating session goal: %w", err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("session goal %s: %w", g.ID, ErrNotFound)
	}
	return nil
}

// NextPosition returns the position for a goal appended to sessionID.
func (r *SQLiteGoalRepo) NextPosition(ctx context.Context, sessionID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM session_goals WHERE session_id = ?`, sessionID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("computing next goal position: %w", err)
	}
	return next, nil
}

func (r *SQLiteGoalRepo) DeleteBySession(ctx context.Context, sessionID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_goals WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("deleting session goals: %w", err)
	}
	return rowsAffected(res), nil
}

// DeleteByActivity removes the goals of every session referencing activityID.
func (r *SQLiteGoalRepo) DeleteByActivity(ctx context.Context, activityID string) (int, error) {
	query := `DELETE FROM session_goals
		WHERE session_id IN (SELECT id FROM time_sessions WHERE activity_id = ?)`
	res, err := r.db.ExecContext(ctx, query, activityID)
	if err != nil {
		return 0, fmt.Errorf("deleting session goals by activity: %w", err)
	}
	return rowsAffected(res), nil
}

func scanGoal(row scanner) (*domain.SessionGoal, error) {
	var g domain.SessionGoal
	var completed int
	var createdAt string
	if err := row.Scan(&g.ID, &g.SessionID, &g.Position, &g.Text, &completed, &createdAt); err != nil {
		return nil, err
	}
	g.IsCompleted = intToBool(completed)

	var err error
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &g, nil
}
