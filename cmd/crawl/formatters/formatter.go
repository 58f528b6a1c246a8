package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/crawlgraph/depgraph"
)

// FormatOptions contains optional parameters for formatting import graphs.
type FormatOptions struct {
	// Label is an optional title or label for the graph
	Label string
	// Cycles lists import cycles as member paths; edges inside a cycle are highlighted
	Cycles [][]string
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts an import graph to a formatted string representation.
	Format(g depgraph.ImportGraph, opts FormatOptions) (string, error)
}

// JSONFormatter formats import graphs as indented JSON.
type JSONFormatter struct{}

// Format converts the import graph to JSON format.
// The opts parameter is accepted for interface compatibility but not used.
func (f *JSONFormatter) Format(g depgraph.ImportGraph, _ FormatOptions) (string, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// CycleIndex maps each node in a cycle to the cycle's index in cycles.
func CycleIndex(cycles [][]string) map[string]int {
	index := make(map[string]int)
	for i, cycle := range cycles {
		for _, node := range cycle {
			index[node] = i
		}
	}
	return index
}

// InCycle reports whether the edge from → to lies inside one cycle.
func InCycle(index map[string]int, from, to string) bool {
	fromCycle, ok := index[from]
	if !ok {
		return false
	}
	toCycle, ok := index[to]
	return ok && fromCycle == toCycle
}
