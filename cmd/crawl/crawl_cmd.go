package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/crawlgraph/cmd/crawl/formatters"
	"github.com/LegacyCodeHQ/crawlgraph/depgraph/crawler"
	"github.com/LegacyCodeHQ/crawlgraph/graphstore"
	"github.com/LegacyCodeHQ/crawlgraph/internal/config"
	"github.com/LegacyCodeHQ/crawlgraph/internal/logging"
	"github.com/LegacyCodeHQ/crawlgraph/internal/metrics"
	"github.com/LegacyCodeHQ/crawlgraph/source"
)

type crawlOptions struct {
	format          string
	store           string
	metricsTextfile string
}

// NewCommand returns a new crawl command instance.
func NewCommand() *cobra.Command {
	opts := &crawlOptions{}

	cmd := &cobra.Command{
		Use:   "crawl [entry...]",
		Short: "Crawl relative imports from an entry file and upload the import graph.",
		Long: `Crawl relative imports from one or more entry files and upload the import graph.

Only "import ... from './relative/path'" statements are followed. The graph is
printed to stdout, then uploaded to the configured store.

Examples:
  crawlgraph crawl                                # default entry (~/.config/ags/config.js)
  crawlgraph crawl ./src/main.js                  # explicit entry
  crawlgraph crawl ./a.js ./b.js --store memory   # several entries, no database
  crawlgraph crawl ./main.js -f mermaid --store none`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrawl(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", config.DefaultFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().StringVarP(&opts.store, "store", "s", config.DefaultStoreKind,
		"Graph store (none, memory, neo4j, postgres)")
	cmd.Flags().StringVar(&opts.metricsTextfile, "metrics-textfile", "",
		"Write crawl metrics in prometheus text format to this file")

	return cmd
}

func runCrawl(cmd *cobra.Command, args []string, opts *crawlOptions) error {
	cfg, err := config.Load(stringFlag(cmd, "config"))
	if err != nil {
		return err
	}
	applyOverrides(cmd, cfg, opts)

	if err := cfg.Validate(); err != nil {
		return err
	}

	entries := args
	if len(entries) == 0 {
		entries = []string{cfg.Entry}
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return err
	}

	formatter, err := NewFormatter(cfg.Format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	resolver, err := crawler.NewResolver(source.OS{}, crawler.ClassifyMIMEType, logger)
	if err != nil {
		return err
	}
	result, err := crawler.New(resolver, logger).Crawl(ctx, entries...)
	if err != nil {
		return fmt.Errorf("failed to crawl imports: %w", err)
	}

	cycles, err := result.Graph.Cycles()
	if err != nil {
		return err
	}

	output, err := formatter.Format(result.Graph, formatters.FormatOptions{
		Label:  filepath.Base(entries[0]),
		Cycles: cycles,
	})
	if err != nil {
		return fmt.Errorf("failed to format import graph: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), output)

	logSummary(logger, result, cycles)

	if cfg.Metrics.Textfile != "" {
		recorder := metrics.NewRecorder()
		recorder.Record(result.Stats, len(cycles))
		if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}

	if cfg.Store.Kind == config.StoreNone {
		return nil
	}
	if err := upload(ctx, cfg.Store, result); err != nil {
		return fmt.Errorf("failed to upload import graph to %s: %w", cfg.Store.Kind, err)
	}
	logger.Info("import graph uploaded", "store", cfg.Store.Kind)
	return nil
}

// upload opens the store for the duration of one upload and always closes it.
func upload(ctx context.Context, cfg config.StoreConfig, result *crawler.Result) (err error) {
	store, err := graphstore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close(ctx))
	}()

	return store.Upload(ctx, result.Graph)
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config, opts *crawlOptions) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("store") {
		cfg.Store.Kind = opts.store
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = opts.metricsTextfile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = stringFlag(cmd, "log-level")
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON, _ = flags.GetBool("log-json")
	}
}

func logSummary(logger *slog.Logger, result *crawler.Result, cycles [][]string) {
	stats := result.Stats
	logger.Info("crawl complete",
		"files", stats.FilesExtracted,
		"edges", stats.Edges,
		"read", humanize.Bytes(uint64(stats.BytesRead)),
		"not_found", stats.Outcomes[crawler.StatusNotFound],
		"directories", stats.Outcomes[crawler.StatusDirectory],
		"unsupported", stats.Outcomes[crawler.StatusUnsupportedType],
		"cycles", len(cycles))

	for _, cycle := range cycles {
		logger.Warn("import cycle", "files", cycle)
	}
}

// stringFlag returns the value of a local or inherited flag, or "" if undefined.
func stringFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}
