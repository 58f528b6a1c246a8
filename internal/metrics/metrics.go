// Package metrics exposes crawl statistics as prometheus metrics written to a
// node-exporter textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/LegacyCodeHQ/crawlgraph/depgraph/crawler"
)

const namespace = "crawlgraph"

// Recorder holds the crawl metrics on a private registry.
type Recorder struct {
	registry  *prometheus.Registry
	outcomes  *prometheus.CounterVec
	extracted prometheus.Counter
	edges     prometheus.Counter
	bytesRead prometheus.Counter
	cycles    prometheus.Gauge
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_outcomes_total",
			Help:      "Path resolutions by outcome.",
		}, []string{"status"}),
		extracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_extracted_total",
			Help:      "Files whose imports were extracted.",
		}),
		edges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_edges_total",
			Help:      "Distinct import edges recorded.",
		}),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_read_total",
			Help:      "Bytes of module source read.",
		}),
		cycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "import_cycles",
			Help:      "Import cycles in the last crawl.",
		}),
	}

	r.registry.MustRegister(r.outcomes, r.extracted, r.edges, r.bytesRead, r.cycles)
	return r
}

// Record adds one crawl's statistics.
func (r *Recorder) Record(stats crawler.Stats, cycles int) {
	for status, count := range stats.Outcomes {
		r.outcomes.WithLabelValues(status.String()).Add(float64(count))
	}
	r.extracted.Add(float64(stats.FilesExtracted))
	r.edges.Add(float64(stats.Edges))
	r.bytesRead.Add(float64(stats.BytesRead))
	r.cycles.Set(float64(cycles))
}

// Gatherer returns the registry backing the recorder.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics in the text exposition format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
