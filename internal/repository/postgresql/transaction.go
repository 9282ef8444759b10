package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type txKey struct{}

// serializableAttempts bounds the retry loop for transactions the database
// aborts with a serialization failure.
const serializableAttempts = 3

// WithTransaction executes fn inside a database transaction. The context
// passed to fn carries the transaction so repositories route through it.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	return runInTx(ctx, db, pgx.TxOptions{}, fn)
}

// WithSerializableTransaction executes fn at SERIALIZABLE isolation. Guards
// of the check-then-insert form are only race-free at this level: under read
// committed two racing transactions both pass the check and both commit.
// Serialization failures rerun fn in a fresh transaction, so fn must be safe
// to re-execute; on the rerun the loser's check sees the committed winner
// and fails with its own domain error.
func WithSerializableTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.Serializable}

	var err error
	for attempt := 0; attempt < serializableAttempts; attempt++ {
		err = runInTx(ctx, db, opts, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("transaction kept failing serialization after %d attempts: %w", serializableAttempts, err)
}

func runInTx(ctx context.Context, db *database.DB, opts pgx.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := db.Pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// isSerializationFailure reports whether err is a serialization_failure or
// deadlock_detected, the two SQLSTATEs worth rerunning.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// GetQuerier returns either the ambient transaction or the pool.
// Used in repositories to support both transactional and non-transactional
// operations.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}
