package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
	"github.com/batoulgheleb/crisiszone/pkg/platform/tx"
)

// PostgresTx runs units of work inside SQL transactions. PostgresStore joins
// the transaction through the context.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPostgresTx binds a transaction runner to db.
func NewPostgresTx(db *sql.DB, timeout time.Duration) *PostgresTx {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &PostgresTx{db: db, timeout: timeout}
}

// RunInTx commits when fn returns nil and rolls back on error or panic.
// Callbacks queued with tx.AfterCommit run only after a successful commit.
func (p *PostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	return p.run(ctx, nil, fn)
}

// View runs fn in a read-only snapshot so every read sees the same committed state.
func (p *PostgresTx) View(ctx context.Context, fn func(ctx context.Context) error) error {
	return p.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (p *PostgresTx) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	parent := ctx
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	ctx, runHooks := tx.WithAfterCommit(ctx)
	sqlTx, err := p.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			_ = sqlTx.Rollback()
			txRollbacks.Inc()
			panic(r)
		}
		if err != nil {
			_ = sqlTx.Rollback()
			txRollbacks.Inc()
			return
		}
		if commitErr := sqlTx.Commit(); commitErr != nil {
			err = fmt.Errorf("commit tx: %w", commitErr)
			return
		}
		runHooks(parent)
	}()

	return fn(tx.WithTx(ctx, sqlTx))
}
