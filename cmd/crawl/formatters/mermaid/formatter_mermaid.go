package mermaid

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/crawlgraph/cmd/crawl/formatters"
	"github.com/LegacyCodeHQ/crawlgraph/depgraph"
)

// cycleLinkStyle is applied to edges inside an import cycle.
const cycleLinkStyle = "stroke:#d62728,stroke-width:2px"

// Formatter formats import graphs as Mermaid.js flowcharts.
type Formatter struct{}

// Format converts the import graph to Mermaid.js flowchart format.
func (f *Formatter) Format(g depgraph.ImportGraph, opts formatters.FormatOptions) (string, error) {
	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	nodes := g.Nodes()
	names := formatters.BuildNodeNames(nodes)

	for i, cycle := range opts.Cycles {
		members := make([]string, 0, len(cycle))
		for _, node := range cycle {
			members = append(members, names[node])
		}
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s\n", i+1, strings.Join(members, ", ")))
	}

	// Mermaid node IDs can't have dots or slashes.
	nodeIDs := make(map[string]string, len(nodes))
	for i, node := range nodes {
		nodeIDs[node] = fmt.Sprintf("n%d", i)
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeIDs[node], names[node]))
	}

	cycleIndex := formatters.CycleIndex(opts.Cycles)
	var cycleLinks []string
	link := 0
	for _, source := range nodes {
		for _, target := range g[source] {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", nodeIDs[source], nodeIDs[target]))
			if formatters.InCycle(cycleIndex, source, target) {
				cycleLinks = append(cycleLinks, fmt.Sprint(link))
			}
			link++
		}
	}

	if len(cycleLinks) > 0 {
		sb.WriteString(fmt.Sprintf("    linkStyle %s %s\n", strings.Join(cycleLinks, ","), cycleLinkStyle))
	}

	return sb.String(), nil
}
