// Package neo4j uploads import graphs to Neo4j as (:File)-[:IMPORTS]->(:File).
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/LegacyCodeHQ/crawlgraph/depgraph"
)

const mergeFileCypher = `MERGE (:File {path: $path})`

const mergeImportCypher = `MERGE (source:File {path: $sourcePath})
MERGE (target:File {path: $targetPath})
MERGE (source)-[:IMPORTS]->(target)`

// Config holds Neo4j connection settings.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// session is the subset of a Neo4j session the store uses.
type session interface {
	Run(ctx context.Context, cypher string, params map[string]any) error
	Close(ctx context.Context) error
}

// Store writes import graphs through a Neo4j driver.
type Store struct {
	driver     neo4j.DriverWithContext
	newSession func(ctx context.Context) session
}

// Open creates a driver for cfg. No connection is made until Upload.
func Open(cfg Config) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver for %s: %w", cfg.URI, err)
	}

	return &Store{
		driver: driver,
		newSession: func(ctx context.Context) session {
			return driverSession{s: driver.NewSession(ctx, neo4j.SessionConfig{
				AccessMode:   neo4j.AccessModeWrite,
				DatabaseName: cfg.Database,
			})}
		},
	}, nil
}

// Upload merges a node per file and an IMPORTS relationship per edge within one
// session. The session is closed on every return path.
func (s *Store) Upload(ctx context.Context, graph depgraph.ImportGraph) (err error) {
	sess := s.newSession(ctx)
	defer func() {
		err = errors.Join(err, sess.Close(ctx))
	}()

	sources := make([]string, 0, len(graph))
	for source := range graph {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		if err := sess.Run(ctx, mergeFileCypher, map[string]any{"path": source}); err != nil {
			return fmt.Errorf("failed to merge file %s: %w", source, err)
		}

		for _, target := range graph[source] {
			params := map[string]any{"sourcePath": source, "targetPath": target}
			if err := sess.Run(ctx, mergeImportCypher, params); err != nil {
				return fmt.Errorf("failed to merge import %s -> %s: %w", source, target, err)
			}
		}
	}

	return nil
}

// Close releases the driver.
func (s *Store) Close(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Close(ctx)
}

type driverSession struct {
	s neo4j.SessionWithContext
}

func (d driverSession) Run(ctx context.Context, cypher string, params map[string]any) error {
	result, err := d.s.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}

func (d driverSession) Close(ctx context.Context) error {
	return d.s.Close(ctx)
}
