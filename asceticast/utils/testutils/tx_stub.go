package testutils

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// BeginnerStub hands out Tx on every Begin, or fails with BeginErr.
type BeginnerStub struct {
	Tx       *TxStub
	BeginErr error
}

func NewBeginnerStub(executor *ExecutorStub) *BeginnerStub {
	return &BeginnerStub{Tx: &TxStub{Executor: executor}}
}

func (b *BeginnerStub) Begin(_ context.Context) (pgx.Tx, error) {
	if b.BeginErr != nil {
		return nil, b.BeginErr
	}
	return b.Tx, nil
}

// TxStub runs statements against Executor and records how the transaction
// ended. Methods of pgx.Tx it does not override panic if called.
type TxStub struct {
	pgx.Tx
	Executor    *ExecutorStub
	CommitErr   error
	RollbackErr error
	Committed   bool
	RolledBack  bool
}

func (t *TxStub) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	return t.Executor.Exec(ctx, query, args...)
}

func (t *TxStub) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return t.Executor.QueryRow(ctx, query, args...)
}

func (t *TxStub) Commit(_ context.Context) error {
	t.Committed = true
	return t.CommitErr
}

func (t *TxStub) Rollback(_ context.Context) error {
	t.RolledBack = true
	return t.RollbackErr
}
