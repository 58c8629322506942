package testutils

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ExecutorStub records the statements it receives and answers QueryRow with
// the queued Rows, one per call. ActualQuery and ActualParams hold the last
// statement, Queries all of them in order.
type ExecutorStub struct {
	Rows         [][]any
	RowsAffected int64
	Err          error
	ActualQuery  string
	ActualParams []any
	Queries      []string
}

func NewExecutorStub(rows ...[]any) *ExecutorStub {
	return &ExecutorStub{Rows: rows, RowsAffected: 1}
}

func (s *ExecutorStub) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.record(query, args)
	if s.Err != nil {
		return pgconn.CommandTag{}, s.Err
	}
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", s.RowsAffected)), nil
}

func (s *ExecutorStub) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	s.record(query, args)
	if s.Err != nil {
		return &RowStub{err: s.Err}
	}
	if len(s.Rows) == 0 {
		return &RowStub{err: pgx.ErrNoRows}
	}
	row := s.Rows[0]
	s.Rows = s.Rows[1:]
	return &RowStub{values: row}
}

func (s *ExecutorStub) record(query string, args []any) {
	s.ActualQuery = query
	s.ActualParams = args
	s.Queries = append(s.Queries, query)
}

type RowStub struct {
	values []any
	err    error
}

func (r *RowStub) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("scan: destination %d is not a pointer", i)
		}
		if r.values[i] == nil {
			target.Elem().SetZero()
			continue
		}
		value := reflect.ValueOf(r.values[i])
		if !value.Type().AssignableTo(target.Elem().Type()) {
			return fmt.Errorf("scan: cannot assign %T to %s", r.values[i], target.Elem().Type())
		}
		target.Elem().Set(value)
	}
	return nil
}
