// Package index implements the command-line interface for managing the
// Elasticsearch company index. This file contains the implementation of
// the delete command, which removes the index and every company document
// stored in it.
package index

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/companyfinder/cmd/common"
	"github.com/jonesrussell/companyfinder/internal/logger"
	"github.com/jonesrussell/companyfinder/internal/storage"
)

// ErrDeletionCancelled is returned when the user cancels the deletion
var ErrDeletionCancelled = errors.New("deletion cancelled by user")

// Deleter implements the index delete command
type Deleter struct {
	logger  logger.Interface
	storage *storage.Storage
	force   bool
}

// NewDeleter creates a new deleter instance
func NewDeleter(log logger.Interface, stor *storage.Storage, force bool) *Deleter {
	return &Deleter{
		logger:  log,
		storage: stor,
		force:   force,
	}
}

// Start executes the delete operation
func (d *Deleter) Start(ctx context.Context) error {
	if err := d.confirmDeletion(); err != nil {
		return err
	}

	return d.deleteIndex(ctx)
}

// confirmDeletion asks for user confirmation before deletion
func (d *Deleter) confirmDeletion() error {
	if _, err := fmt.Fprintf(os.Stdout, "The following index will be deleted:\n%s\n", d.storage.IndexName()); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}

	// If force flag is set or stdin is not a terminal, skip confirmation
	if d.force || !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil
	}

	if _, err := os.Stdout.WriteString("Are you sure you want to continue? (y/N): "); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		// If we get an EOF or empty input, treat it as 'N'
		if errors.Is(err, io.EOF) || response == "" {
			return ErrDeletionCancelled
		}
		return fmt.Errorf("failed to read user input: %w", err)
	}

	if !strings.EqualFold(response, "y") {
		return ErrDeletionCancelled
	}

	return nil
}

// deleteIndex deletes the configured company index
func (d *Deleter) deleteIndex(ctx context.Context) error {
	d.logger.Info("Starting index deletion", "index", d.storage.IndexName())

	if err := d.storage.TestConnection(ctx); err != nil {
		d.logger.Error("Failed to connect to storage", "error", err)
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	if err := d.storage.DeleteIndex(ctx); err != nil {
		if errors.Is(err, storage.ErrIndexNotFound) {
			d.logger.Info("Index does not exist", "index", d.storage.IndexName())
			fmt.Printf("Index %s does not exist\n", d.storage.IndexName())
			return nil
		}
		d.logger.Error("Failed to delete index", "index", d.storage.IndexName(), "error", err)
		return fmt.Errorf("failed to delete index %s: %w", d.storage.IndexName(), err)
	}

	d.logger.Info("Successfully deleted index", "index", d.storage.IndexName())
	fmt.Printf("Deleted index %s\n", d.storage.IndexName())
	return nil
}

// runDeleteCmd executes the delete command
func runDeleteCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	store, err := common.CreateStorage(deps.Config, deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}

	return NewDeleter(deps.Logger, store, forceDelete).Start(ctx)
}
