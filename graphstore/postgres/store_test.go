package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/crawlgraph/depgraph"
)

type execCall struct {
	sql  string
	args []any
}

type fakeConn struct {
	calls    []execCall
	failSQL  string
	released int
}

func (f *fakeConn) Exec(_ context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: arguments})
	if sql == f.failSQL {
		return pgconn.CommandTag{}, errors.New("deadlock detected")
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeConn) Release() {
	f.released++
}

func newFakeStore(c *fakeConn, acquireErr error) *Store {
	return &Store{acquire: func(context.Context) (conn, error) {
		if acquireErr != nil {
			return nil, acquireErr
		}
		return c, nil
	}}
}

func TestStore_UploadInsertsFilesAndImports(t *testing.T) {
	c := &fakeConn{}
	graph := depgraph.ImportGraph{"/proj/a.js": {"/proj/b.js"}}

	require.NoError(t, newFakeStore(c, nil).Upload(context.Background(), graph))

	require.Len(t, c.calls, len(schemaSQL)+3)
	assert.Equal(t, []execCall{
		{sql: insertFileSQL, args: []any{"/proj/a.js"}},
		{sql: insertFileSQL, args: []any{"/proj/b.js"}},
		{sql: insertImportSQL, args: []any{"/proj/a.js", "/proj/b.js"}},
	}, c.calls[len(schemaSQL):])
	assert.Equal(t, 1, c.released)
}

func TestStore_UploadReleasesOnFailure(t *testing.T) {
	c := &fakeConn{failSQL: insertImportSQL}
	graph := depgraph.ImportGraph{"/proj/a.js": {"/proj/b.js"}}

	err := newFakeStore(c, nil).Upload(context.Background(), graph)

	assert.ErrorContains(t, err, "failed to insert import /proj/a.js -> /proj/b.js")
	assert.Equal(t, 1, c.released)
}

func TestStore_UploadAcquireFailure(t *testing.T) {
	err := newFakeStore(nil, errors.New("connection refused")).Upload(context.Background(), depgraph.ImportGraph{})

	assert.ErrorContains(t, err, "failed to acquire postgres connection")
}

func TestStore_StatementsAreIdempotent(t *testing.T) {
	for _, stmt := range schemaSQL {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
	assert.Contains(t, insertFileSQL, "ON CONFLICT DO NOTHING")
	assert.Contains(t, insertImportSQL, "ON CONFLICT DO NOTHING")
}
