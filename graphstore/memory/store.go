// Package memory keeps uploaded import graphs in an in-process directed graph.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	graphlib "github.com/dominikbraun/graph"

	"github.com/LegacyCodeHQ/crawlgraph/depgraph"
)

// Store accumulates uploads in a dominikbraun/graph directed graph.
type Store struct {
	mu    sync.Mutex
	graph graphlib.Graph[string, string]
}

// New returns an empty Store.
func New() *Store {
	return &Store{graph: graphlib.New(graphlib.StringHash, graphlib.Directed())}
}

// Upload adds missing vertices and edges. Existing ones are left untouched.
func (s *Store) Upload(_ context.Context, graph depgraph.ImportGraph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources := make([]string, 0, len(graph))
	for source := range graph {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		if err := s.addVertex(source); err != nil {
			return err
		}
		for _, target := range graph[source] {
			if err := s.addVertex(target); err != nil {
				return err
			}
			err := s.graph.AddEdge(source, target)
			if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return fmt.Errorf("failed to add edge %s -> %s: %w", source, target, err)
			}
		}
	}

	return nil
}

func (s *Store) addVertex(path string) error {
	err := s.graph.AddVertex(path)
	if err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return fmt.Errorf("failed to add vertex %s: %w", path, err)
	}
	return nil
}

// Counts returns the number of stored files and imports.
func (s *Store) Counts() (files, imports int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err = s.graph.Order()
	if err != nil {
		return 0, 0, err
	}
	imports, err = s.graph.Size()
	if err != nil {
		return 0, 0, err
	}
	return files, imports, nil
}

// HasImport reports whether the edge source → target is stored.
func (s *Store) HasImport(source, target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.graph.Edge(source, target)
	return err == nil
}

// Close is a no-op.
func (s *Store) Close(context.Context) error {
	return nil
}
