package repository

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// Executor is satisfied by *pgxpool.Pool, *pgxpool.Conn, *pgx.Conn and pgx.Tx.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Beginner starts a transaction, or a savepoint when called on a pgx.Tx.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Atomic runs fn inside a transaction, committing when fn succeeds. When fn
// fails the transaction is rolled back and fn's error is returned, joined with
// the rollback error if that fails too.
func Atomic(ctx context.Context, db Beginner, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to start transaction")
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return multierror.Append(err, errors.Wrap(rbErr, "unable to roll back transaction"))
		}
		return err
	}
	return errors.Wrap(tx.Commit(ctx), "unable to commit transaction")
}
