package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krew-solutions/ascetic-ast-go/asceticast/utils/testutils"
)

func TestPgNodeStore_Save(t *testing.T) {
	store := NewPgNodeStore(WithTable("results_test"), WithCodec(JsonCodec{}))
	db := testutils.NewExecutorStub()

	id, err := store.Save(context.Background(), db, "sum", sampleNode())
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO results_test (id, rule, payload) VALUES ($1, $2, $3)", db.ActualQuery)
	require.Len(t, db.ActualParams, 3)
	assert.Equal(t, id.String(), db.ActualParams[0])
	assert.Equal(t, "sum", db.ActualParams[1])
	assert.JSONEq(t,
		`{"op":"+","args":[{"value":"1"},{"value":"2"}],"parseinfo":{"rule":"sum","pos":0,"endpos":3,"line":0,"endline":0}}`,
		string(db.ActualParams[2].([]byte)),
	)
}

func TestPgNodeStore_Load(t *testing.T) {
	store := NewPgNodeStore()
	payload, err := NewZlibCompressor(JsonCodec{}).Encode(sampleNode())
	require.NoError(t, err)
	db := testutils.NewExecutorStub([]any{"sum", payload})
	id := ulid.Make()

	record, err := store.Load(context.Background(), db, id)
	require.NoError(t, err)
	assert.Equal(t, id, record.ID)
	assert.Equal(t, "sum", record.Rule)
	assertSampleDecoded(t, record.Node)
	assert.Equal(t, "SELECT rule, payload FROM parse_results WHERE id = $1", db.ActualQuery)
}

func TestPgNodeStore_LoadMissing(t *testing.T) {
	_, err := NewPgNodeStore().Load(context.Background(), testutils.NewExecutorStub(), ulid.Make())
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestPgNodeStore_Delete(t *testing.T) {
	store := NewPgNodeStore()
	db := testutils.NewExecutorStub()
	require.NoError(t, store.Delete(context.Background(), db, ulid.Make()))

	db.RowsAffected = 0
	assert.ErrorIs(t, store.Delete(context.Background(), db, ulid.Make()), ErrNodeNotFound)
}

func TestPgNodeStore_WrapsDriverErrors(t *testing.T) {
	driverErr := errors.New("connection reset")
	db := testutils.NewExecutorStub()
	db.Err = driverErr
	store := NewPgNodeStore()

	_, err := store.Save(context.Background(), db, "sum", sampleNode())
	assert.ErrorIs(t, err, driverErr)

	_, err = store.Load(context.Background(), db, ulid.Make())
	assert.ErrorIs(t, err, driverErr)

	assert.ErrorIs(t, store.Setup(context.Background(), db), driverErr)
}

func TestPgNodeStore_Replace(t *testing.T) {
	store := NewPgNodeStore(WithCodec(JsonCodec{}))
	db := testutils.NewBeginnerStub(testutils.NewExecutorStub())
	id := ulid.Make()

	require.NoError(t, store.Replace(context.Background(), db, id, "sum", sampleNode()))

	assert.True(t, db.Tx.Committed)
	assert.Equal(t, []string{
		"DELETE FROM parse_results WHERE id = $1",
		"INSERT INTO parse_results (id, rule, payload) VALUES ($1, $2, $3)",
	}, db.Tx.Executor.Queries)
	assert.Equal(t, id.String(), db.Tx.Executor.ActualParams[0])
	assert.Equal(t, "sum", db.Tx.Executor.ActualParams[1])
}

func TestPgNodeStore_ReplaceMissing(t *testing.T) {
	store := NewPgNodeStore()
	executor := testutils.NewExecutorStub()
	executor.RowsAffected = 0
	db := testutils.NewBeginnerStub(executor)

	err := store.Replace(context.Background(), db, ulid.Make(), "sum", sampleNode())
	assert.ErrorIs(t, err, ErrNodeNotFound)
	assert.True(t, db.Tx.RolledBack)
	assert.False(t, db.Tx.Committed)
	assert.Equal(t, []string{"DELETE FROM parse_results WHERE id = $1"}, executor.Queries)
}
