package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/crawlgraph/cmd/crawl"
	"github.com/LegacyCodeHQ/crawlgraph/internal/config"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCommand()

// NewRootCommand returns the crawlgraph root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "crawlgraph",
		Short: "Discover the relative import graph of a JavaScript project",
		Long: `Crawlgraph follows relative imports from an entry file, prints the
resulting import graph and uploads it to a graph store (Neo4j by default).

Use 'crawlgraph --help' to see all available commands, or 'crawlgraph <command> --help'
for detailed information about a specific command.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(crawl.NewCommand())

	root.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	root.PersistentFlags().String("config", "", "Config file (default: .crawlgraph.yaml in the current or home directory)")
	root.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
