// Package crawler discovers the static import graph of a JavaScript project by
// following relative imports depth-first from one or more entry files.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/LegacyCodeHQ/crawlgraph/depgraph"
)

// ErrNilFileSystem is returned when a resolver is created without a filesystem.
var ErrNilFileSystem = errors.New("crawler: filesystem is required")

// Result is the finished output of one crawl.
type Result struct {
	Graph depgraph.ImportGraph
	// Visited lists the files whose imports were extracted, in visit order.
	Visited []string
	Stats   Stats
}

// Crawler walks relative imports starting at entry files.
type Crawler struct {
	resolver *Resolver
	logger   *slog.Logger
}

// New creates a Crawler. A nil logger falls back to slog.Default().
func New(resolver *Resolver, logger *slog.Logger) *Crawler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Crawler{resolver: resolver, logger: logger}
}

// crawlState is the mutable state owned by a single Crawl call.
type crawlState struct {
	*Crawler
	graph   depgraph.ImportGraph
	visited map[string]bool
	order   []string
	stats   Stats
}

// Crawl builds the import graph reachable from entries. All entries share one
// graph and visited set. Unresolvable imports are logged and recorded as edges
// without outgoing edges of their own. Filesystem errors other than not-exist
// abort the crawl.
func (c *Crawler) Crawl(ctx context.Context, entries ...string) (*Result, error) {
	state := &crawlState{
		Crawler: c,
		graph:   make(depgraph.ImportGraph),
		visited: make(map[string]bool),
		stats:   newStats(),
	}

	for _, entry := range entries {
		absPath, err := filepath.Abs(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", entry, err)
		}
		if err := state.visit(ctx, absPath); err != nil {
			return nil, err
		}
	}

	return &Result{Graph: state.graph, Visited: state.order, Stats: state.stats}, nil
}

func (s *crawlState) visit(ctx context.Context, path string) error {
	outcome, err := s.resolver.Resolve(ctx, path)
	if err != nil {
		return err
	}
	s.stats.record(outcome)
	if outcome.Status != StatusFound {
		return nil
	}

	if s.visited[path] {
		s.logger.Debug("skipping already processed file", "path", path)
		return nil
	}
	s.visited[path] = true
	s.order = append(s.order, path)
	s.stats.FilesExtracted++

	dir := filepath.Dir(path)
	for _, ref := range ExtractReferences(outcome.Content) {
		target := filepath.Join(dir, ref)
		s.logger.Debug("searching for import", "from", path, "path", target)

		if s.graph.AddEdge(path, target) {
			s.stats.Edges++
		}
		if err := s.visit(ctx, target); err != nil {
			return err
		}
	}

	return nil
}
