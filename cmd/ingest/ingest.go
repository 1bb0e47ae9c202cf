// Package ingest implements the commands that load company data files
// into Elasticsearch.
package ingest

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/companyfinder/cmd/common"
	"github.com/jonesrussell/companyfinder/internal/importer"
)

// Command returns the ingest command for use in the root command
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Import company data into Elasticsearch",
		Long: `Ingest reads company data files and upserts them into the
company index, merging with documents already stored for the same
domains.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "csv <file>",
		Short: "Import tabular company data from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), args[0], func(ctx context.Context, imp *importer.Importer, path string) (int, error) {
				return imp.ImportCSV(ctx, path)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "json <file>",
		Short: "Import scraped page records from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), args[0], func(ctx context.Context, imp *importer.Importer, path string) (int, error) {
				return imp.ImportJSON(ctx, path)
			})
		},
	})

	return cmd
}

func runIngest(
	ctx context.Context,
	path string,
	run func(context.Context, *importer.Importer, string) (int, error),
) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	store, err := common.CreateStorage(deps.Config, deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}

	imp := importer.New(store, deps.Logger)
	count, err := run(ctx, imp, path)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d company documents from %s\n", count, path)
	return nil
}
