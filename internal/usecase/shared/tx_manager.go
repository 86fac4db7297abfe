package shared

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTransactionBegin   = errs.New("failed to begin transaction")
	ErrTransactionCommit  = errs.New("failed to commit transaction")
	ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

const serializableMaxRetries = 3

type pgxUnitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) UnitOfWork {
	return &pgxUnitOfWork{pool: pool}
}

func (u *pgxUnitOfWork) DB() infra.DBTX {
	return u.pool
}

func (u *pgxUnitOfWork) Within(ctx context.Context, fn func(tx infra.DBTX) error) error {
	return runInTx(ctx, u.pool, pgx.TxOptions{}, fn)
}

// WithinSerializable retries on SQLSTATE 40001. The availability check and
// insert in booking creation must run here; read-committed isolation alone
// cannot stop two overlapping requests from both observing "available".
func (u *pgxUnitOfWork) WithinSerializable(ctx context.Context, fn func(tx infra.DBTX) error) error {
	for attempt := 0; attempt <= serializableMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
			}
		}

		err := runInTx(ctx, u.pool, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
		if err == nil {
			return nil
		}
		if !infra.IsSerializationFailure(err) {
			return err
		}
		slog.Warn("serialization failure, retrying transaction", "attempt", attempt+1)
	}

	return ErrMaxRetriesExceeded
}

func runInTx(ctx context.Context, db *pgxpool.Pool, opts pgx.TxOptions, fn func(tx infra.DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, ErrTransactionBegin)
	}

	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			// Only log rollback errors for uncommitted transactions
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrTransactionCommit)
	}

	return nil
}
