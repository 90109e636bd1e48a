package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// whole list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS activities (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL CHECK(length(trim(name)) > 0),
		color      TEXT NOT NULL DEFAULT '#83a598',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// activity_id is a weak reference: the application clears it before an
	// activity is deleted, and ON DELETE SET NULL is the backstop.
	`CREATE TABLE IF NOT EXISTS time_sessions (
		id                   TEXT PRIMARY KEY,
		activity_id          TEXT REFERENCES activities(id) ON DELETE SET NULL,
		start_time           TEXT NOT NULL,
		end_time             TEXT,
		saved_activity_name  TEXT NOT NULL DEFAULT '',
		saved_activity_color TEXT NOT NULL DEFAULT '',
		productivity_rating  INTEGER NOT NULL DEFAULT 5
		                     CHECK(productivity_rating BETWEEN 1 AND 10),
		distraction_rating   INTEGER NOT NULL DEFAULT 5
		                     CHECK(distraction_rating BETWEEN 1 AND 10),
		notes                TEXT NOT NULL DEFAULT '',
		created_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_activity ON time_sessions(activity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_start ON time_sessions(start_time)`,

	// At most one running session: every running row indexes to the same key.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_running
		ON time_sessions(ifnull(end_time, '')) WHERE end_time IS NULL`,

	`CREATE TABLE IF NOT EXISTS session_goals (
		id           TEXT PRIMARY KEY,
		session_id   TEXT NOT NULL REFERENCES time_sessions(id) ON DELETE CASCADE,
		position     INTEGER NOT NULL DEFAULT 0,
		text         TEXT NOT NULL CHECK(length(trim(text)) > 0),
		is_completed INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_goals_session ON session_goals(session_id, position)`,
}
