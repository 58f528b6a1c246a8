// Package graphstore persists finished import graphs.
package graphstore

import (
	"context"
	"fmt"

	"github.com/LegacyCodeHQ/crawlgraph/depgraph"
	"github.com/LegacyCodeHQ/crawlgraph/graphstore/memory"
	"github.com/LegacyCodeHQ/crawlgraph/graphstore/neo4j"
	"github.com/LegacyCodeHQ/crawlgraph/graphstore/postgres"
	"github.com/LegacyCodeHQ/crawlgraph/internal/config"
)

// Store idempotently materializes a node per file and a directed edge per import.
// Upload may be called repeatedly with the same graph without creating duplicates.
type Store interface {
	Upload(ctx context.Context, graph depgraph.ImportGraph) error
	Close(ctx context.Context) error
}

// Discard is a Store that drops every upload.
type Discard struct{}

func (Discard) Upload(context.Context, depgraph.ImportGraph) error { return nil }

func (Discard) Close(context.Context) error { return nil }

// Open returns the store selected by cfg.Kind.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Kind {
	case config.StoreNone:
		return Discard{}, nil
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreNeo4j:
		store, err := neo4j.Open(neo4j.Config{
			URI:      cfg.Neo4j.URI,
			Username: cfg.Neo4j.Username,
			Password: cfg.Neo4j.Password,
			Database: cfg.Neo4j.Database,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorePostgres:
		store, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store: %s", cfg.Kind)
	}
}
