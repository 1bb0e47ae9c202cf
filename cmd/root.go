// Package cmd implements the command-line interface for companyfinder.
// It provides the root command and subcommands for crawling, ingesting
// and searching company data.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/companyfinder/cmd/crawl"
	"github.com/jonesrussell/companyfinder/cmd/httpd"
	"github.com/jonesrussell/companyfinder/cmd/index"
	"github.com/jonesrussell/companyfinder/cmd/ingest"
	"github.com/jonesrussell/companyfinder/cmd/search"
	"github.com/jonesrussell/companyfinder/internal/config"
)

const version = "1.0.0"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	rootCmd = &cobra.Command{
		Use:   "companyfinder",
		Short: "A company website crawler and search engine",
		Long: `companyfinder crawls company websites for contact data,
ingests it into Elasticsearch and serves weighted company lookups.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Parse flags early so --config and --debug are visible to viper
	_ = rootCmd.ParseFlags(os.Args[1:])

	if Debug {
		_ = os.Setenv("APP_DEBUG", "true")
	}

	if err := config.InitializeViper(cfgFile); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("companyfinder version %s\n", version)
		},
	})

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(ingest.Command())
	rootCmd.AddCommand(index.Command())
	rootCmd.AddCommand(search.Command())
	rootCmd.AddCommand(httpd.Command())
}
