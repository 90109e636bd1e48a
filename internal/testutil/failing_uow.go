package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/tempo/internal/db"
)

// FailOnNthExecUoW runs transactions like db.SQLiteUnitOfWork but makes the
// FailOn-th write (1-based) return Err instead of executing. Reads are not
// counted. Service tests use it to break a multi-write use case halfway and
// assert nothing of it was committed.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(ctx, &countingTx{DBTX: tx, failOn: u.FailOn, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// countingTx is only used from the goroutine running the transaction.
type countingTx struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.writes++
	if c.writes == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
