// Package httpd implements the HTTP server command for the company
// search API.
package httpd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/companyfinder/cmd/common"
	"github.com/jonesrussell/companyfinder/internal/api"
	"github.com/jonesrussell/companyfinder/internal/search"
)

// Command returns the httpd command for use in the root command
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the company search HTTP API server",
		Long: `Start the HTTP server that exposes company search, company lookup,
and index stats endpoints. The server runs until interrupted and shuts
down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Start(cmd)
		},
	}
}

// Start starts the HTTP server and runs until interrupted
func Start(cmd *cobra.Command) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	store, err := common.CreateStorage(deps.Config, deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}

	searchService := search.NewService(store, deps.Logger)
	handler := api.NewHandler(searchService, store, deps.Logger)
	server := api.NewServer(deps.Config.GetServerConfig(), handler, deps.Logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
