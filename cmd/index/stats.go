// Package index implements the command-line interface for managing the
// Elasticsearch company index. This file contains the implementation of
// the stats command that displays index metrics in a formatted table.
package index

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/companyfinder/cmd/common"
)

// runStatsCmd executes the stats command
func runStatsCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	store, err := common.CreateStorage(deps.Config, deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}

	stats, err := store.IndexStats(ctx)
	if err != nil {
		deps.Logger.Error("Failed to collect index stats", "index", store.IndexName(), "error", err)
		return fmt.Errorf("failed to collect index stats: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Index", "Exists", "Docs", "Size"})
	t.AppendRow(table.Row{
		store.IndexName(),
		strconv.FormatBool(stats.Exists),
		strconv.FormatInt(stats.DocumentCount, 10),
		formatBytes(stats.SizeBytes),
	})
	t.Render()

	return nil
}

const bytesPerUnit = 1024

// formatBytes renders a byte count in a human readable unit
func formatBytes(n int64) string {
	if n < bytesPerUnit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(bytesPerUnit), 0
	for v := n / bytesPerUnit; v >= bytesPerUnit; v /= bytesPerUnit {
		div *= bytesPerUnit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
