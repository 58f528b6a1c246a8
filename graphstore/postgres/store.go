// Package postgres uploads import graphs to Postgres as files and imports tables.
package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LegacyCodeHQ/crawlgraph/depgraph"
)

var schemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS files (
	path TEXT PRIMARY KEY
)`,
	`CREATE TABLE IF NOT EXISTS imports (
	source TEXT NOT NULL REFERENCES files(path),
	target TEXT NOT NULL REFERENCES files(path),
	PRIMARY KEY (source, target)
)`,
}

const insertFileSQL = `INSERT INTO files (path) VALUES ($1) ON CONFLICT DO NOTHING`

const insertImportSQL = `INSERT INTO imports (source, target) VALUES ($1, $2) ON CONFLICT DO NOTHING`

// conn is the subset of a pooled connection the store uses.
type conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Release()
}

// Store writes import graphs through a pgx connection pool.
type Store struct {
	pool    *pgxpool.Pool
	acquire func(ctx context.Context) (conn, error)
}

// Open creates a connection pool for dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	return &Store{
		pool: pool,
		acquire: func(ctx context.Context) (conn, error) {
			c, err := pool.Acquire(ctx)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}, nil
}

// Upload inserts every file and import edge on one acquired connection, which is
// released on every return path.
func (s *Store) Upload(ctx context.Context, graph depgraph.ImportGraph) error {
	c, err := s.acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire postgres connection: %w", err)
	}
	defer c.Release()

	for _, stmt := range schemaSQL {
		if _, err := c.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	sources := make([]string, 0, len(graph))
	for source := range graph {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		if _, err := c.Exec(ctx, insertFileSQL, source); err != nil {
			return fmt.Errorf("failed to insert file %s: %w", source, err)
		}

		for _, target := range graph[source] {
			if _, err := c.Exec(ctx, insertFileSQL, target); err != nil {
				return fmt.Errorf("failed to insert file %s: %w", target, err)
			}
			if _, err := c.Exec(ctx, insertImportSQL, source, target); err != nil {
				return fmt.Errorf("failed to insert import %s -> %s: %w", source, target, err)
			}
		}
	}

	return nil
}

// Close closes the pool.
func (s *Store) Close(context.Context) error {
	if s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}
