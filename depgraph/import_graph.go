package depgraph

import (
	"errors"
	"fmt"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// ImportGraph maps an importing file to the files it imports, in first-discovered order.
// Keys are only added when the file has at least one recorded import.
type ImportGraph map[string][]string

// AddEdge records the edge from → to unless it is already present for from.
// It reports whether the edge was new.
func (g ImportGraph) AddEdge(from, to string) bool {
	for _, existing := range g[from] {
		if existing == to {
			return false
		}
	}
	g[from] = append(g[from], to)
	return true
}

// Nodes returns every path that appears in the graph, either as importer or imported, sorted.
func (g ImportGraph) Nodes() []string {
	seen := make(map[string]bool, len(g))
	for from, deps := range g {
		seen[from] = true
		for _, dep := range deps {
			seen[dep] = true
		}
	}

	nodes := make([]string, 0, len(seen))
	for node := range seen {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}

// EdgeCount returns the number of directed edges.
func (g ImportGraph) EdgeCount() int {
	count := 0
	for _, deps := range g {
		count += len(deps)
	}
	return count
}

// Graphlib converts the import graph into a directed dominikbraun/graph value.
func (g ImportGraph) Graphlib() (graphlib.Graph[string, string], error) {
	out := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for _, node := range g.Nodes() {
		if err := out.AddVertex(node); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add vertex %s: %w", node, err)
		}
	}

	for from, deps := range g {
		for _, dep := range deps {
			if err := out.AddEdge(from, dep); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("failed to add edge %s -> %s: %w", from, dep, err)
			}
		}
	}

	return out, nil
}

// Cycles returns every import cycle as a sorted list of member paths.
// Self-imports are reported as single-member cycles.
func (g ImportGraph) Cycles() ([][]string, error) {
	lib, err := g.Graphlib()
	if err != nil {
		return nil, err
	}

	components, err := graphlib.StronglyConnectedComponents(lib)
	if err != nil {
		return nil, fmt.Errorf("failed to compute strongly connected components: %w", err)
	}

	var cycles [][]string
	for _, component := range components {
		if len(component) == 1 && !g.hasSelfEdge(component[0]) {
			continue
		}
		members := append([]string(nil), component...)
		sort.Strings(members)
		cycles = append(cycles, members)
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles, nil
}

func (g ImportGraph) hasSelfEdge(node string) bool {
	for _, dep := range g[node] {
		if dep == node {
			return true
		}
	}
	return false
}
