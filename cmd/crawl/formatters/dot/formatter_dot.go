package dot

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/crawlgraph/cmd/crawl/formatters"
	"github.com/LegacyCodeHQ/crawlgraph/depgraph"
)

// Formatter formats import graphs as Graphviz DOT.
type Formatter struct{}

// Format converts the import graph to Graphviz DOT format.
// Edges inside an import cycle are drawn in red.
func (f *Formatter) Format(g depgraph.ImportGraph, opts formatters.FormatOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph imports {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	nodes := g.Nodes()
	names := formatters.BuildNodeNames(nodes)
	for _, node := range nodes {
		sb.WriteString(fmt.Sprintf("  %q;\n", names[node]))
	}

	if len(nodes) > 0 {
		sb.WriteString("\n")
	}

	cycleIndex := formatters.CycleIndex(opts.Cycles)
	for _, source := range nodes {
		for _, target := range g[source] {
			sb.WriteString(fmt.Sprintf("  %q -> %q", names[source], names[target]))
			if formatters.InCycle(cycleIndex, source, target) {
				sb.WriteString(" [color=red]")
			}
			sb.WriteString(";\n")
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}
