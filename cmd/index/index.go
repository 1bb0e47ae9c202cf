// Package index implements the command-line interface for managing the
// Elasticsearch company index. It provides commands for creating,
// deleting, and inspecting the index.
package index

import (
	"github.com/spf13/cobra"
)

var forceDelete bool

// Command returns the index command for use in the root command
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the Elasticsearch company index",
		Long:  `Manage the Elasticsearch index that stores company documents`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(createCreateCmd(), createDeleteCmd(), createStatsCmd())
	return cmd
}

// createCreateCmd creates the create command
func createCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the company index with its mapping",
		RunE:  runCreateCmd,
	}
}

// createDeleteCmd creates the delete command
func createDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the company index",
		RunE:  runDeleteCmd,
	}
	cmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Force deletion without confirmation")
	return cmd
}

// createStatsCmd creates the stats command
func createStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show document count and size for the company index",
		RunE:  runStatsCmd,
	}
}
