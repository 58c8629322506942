package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-ast-go/asceticast/ast"
)

var ErrNodeNotFound = errors.New("node not found")

const defaultTable = "parse_results"

// Record is a stored parse result.
type Record struct {
	ID   ulid.ULID
	Rule string
	Node *ast.Node
}

type PgNodeStoreOption func(*PgNodeStore)

func WithTable(table string) PgNodeStoreOption {
	return func(s *PgNodeStore) {
		s.table = table
	}
}

func WithCodec(codec Codec) PgNodeStoreOption {
	return func(s *PgNodeStore) {
		s.codec = codec
	}
}

func WithLogger(logger *slog.Logger) PgNodeStoreOption {
	return func(s *PgNodeStore) {
		s.logger = logger
	}
}

// PgNodeStore keeps parse results in PostgreSQL, one row per root node,
// encoded with a Codec.
type PgNodeStore struct {
	table  string
	codec  Codec
	logger *slog.Logger
}

func NewPgNodeStore(opts ...PgNodeStoreOption) *PgNodeStore {
	s := &PgNodeStore{
		table:  defaultTable,
		codec:  NewZlibCompressor(JsonCodec{}),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PgNodeStore) Table() string {
	return s.table
}

func (s *PgNodeStore) Setup(ctx context.Context, db Executor) error {
	_, err := db.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id varchar(26) PRIMARY KEY,
			rule varchar(255) NOT NULL,
			payload bytea NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, s.table))
	if err != nil {
		return errors.Wrapf(err, "unable to create table %s", s.table)
	}
	return nil
}

// Save stores node as the result of rule and returns its new id.
func (s *PgNodeStore) Save(ctx context.Context, db Executor, rule string, node *ast.Node) (ulid.ULID, error) {
	id := ulid.Make()
	if err := s.insert(ctx, db, id, rule, node); err != nil {
		return ulid.ULID{}, err
	}
	return id, nil
}

// Replace swaps the stored result under id for node, keeping the id. The old
// row is removed and the new one inserted in a single transaction; a missing
// id fails with ErrNodeNotFound and leaves the table untouched.
func (s *PgNodeStore) Replace(ctx context.Context, db Beginner, id ulid.ULID, rule string, node *ast.Node) error {
	return Atomic(ctx, db, func(tx pgx.Tx) error {
		if err := s.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.insert(ctx, tx, id, rule, node)
	})
}

func (s *PgNodeStore) insert(ctx context.Context, db Executor, id ulid.ULID, rule string, node *ast.Node) error {
	payload, err := s.codec.Encode(node)
	if err != nil {
		return errors.Wrap(err, "unable to encode node")
	}
	_, err = db.Exec(ctx,
		fmt.Sprintf("INSERT INTO %s (id, rule, payload) VALUES ($1, $2, $3)", s.table),
		id.String(), rule, payload,
	)
	if err != nil {
		return errors.Wrap(err, "unable to insert node")
	}
	s.logger.DebugContext(ctx, "node saved", "id", id.String(), "rule", rule, "bytes", len(payload))
	return nil
}

func (s *PgNodeStore) Load(ctx context.Context, db Executor, id ulid.ULID) (*Record, error) {
	var rule string
	var payload []byte
	err := db.QueryRow(ctx,
		fmt.Sprintf("SELECT rule, payload FROM %s WHERE id = $1", s.table),
		id.String(),
	).Scan(&rule, &payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(ErrNodeNotFound, "id %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to load node")
	}
	node, err := s.codec.Decode(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode node %s", id)
	}
	s.logger.DebugContext(ctx, "node loaded", "id", id.String(), "rule", rule)
	return &Record{ID: id, Rule: rule, Node: node}, nil
}

func (s *PgNodeStore) Delete(ctx context.Context, db Executor, id ulid.ULID) error {
	tag, err := db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.table), id.String())
	if err != nil {
		return errors.Wrap(err, "unable to delete node")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(ErrNodeNotFound, "id %s", id)
	}
	return nil
}
