// Package index implements the command-line interface for managing the
// Elasticsearch company index. This file contains the implementation of
// the create command.
package index

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/companyfinder/cmd/common"
	"github.com/jonesrussell/companyfinder/internal/logger"
	"github.com/jonesrussell/companyfinder/internal/storage"
)

// Creator implements the index create command
type Creator struct {
	logger  logger.Interface
	storage *storage.Storage
}

// NewCreator creates a new creator instance
func NewCreator(log logger.Interface, stor *storage.Storage) *Creator {
	return &Creator{
		logger:  log,
		storage: stor,
	}
}

// Start executes the create operation
func (c *Creator) Start(ctx context.Context) error {
	c.logger.Info("Creating index", "index", c.storage.IndexName())

	if err := c.storage.TestConnection(ctx); err != nil {
		c.logger.Error("Failed to connect to storage", "error", err)
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	exists, err := c.storage.IndexExists(ctx)
	if err != nil {
		c.logger.Error("Failed to check if index exists", "index", c.storage.IndexName(), "error", err)
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		c.logger.Info("Index already exists", "index", c.storage.IndexName())
		fmt.Printf("Index %s already exists\n", c.storage.IndexName())
		return nil
	}

	if createErr := c.storage.EnsureIndex(ctx); createErr != nil {
		c.logger.Error("Failed to create index", "index", c.storage.IndexName(), "error", createErr)
		return fmt.Errorf("failed to create index %s: %w", c.storage.IndexName(), createErr)
	}

	c.logger.Info("Successfully created index", "index", c.storage.IndexName())
	fmt.Printf("Created index %s\n", c.storage.IndexName())
	return nil
}

// runCreateCmd executes the create command
func runCreateCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	store, err := common.CreateStorage(deps.Config, deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}

	return NewCreator(deps.Logger, store).Start(ctx)
}
