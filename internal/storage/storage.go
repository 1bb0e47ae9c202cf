package storage

import (
	"context"
	"fmt"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/companyfinder/internal/logger"
)

// Constants for timeout durations
const (
	DefaultBulkTimeout           = 30 * time.Second
	DefaultIndexTimeout          = 10 * time.Second
	DefaultSearchTimeout         = 10 * time.Second
	DefaultTestConnectionTimeout = 5 * time.Second
)

// Storage wraps an Elasticsearch client with company-document operations
// against a single index.
type Storage struct {
	client *es.Client
	logger logger.Interface
	index  string
}

// NewStorage creates a storage instance bound to the given index.
func NewStorage(client *es.Client, log logger.Interface, index string) *Storage {
	return &Storage{
		client: client,
		logger: log,
		index:  index,
	}
}

// IndexName returns the index this storage writes to.
func (s *Storage) IndexName() string {
	return s.index
}

// Helper function to create a context with timeout
func (s *Storage) createContextWithTimeout(
	ctx context.Context,
	timeout time.Duration,
) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// closeResponse closes an Elasticsearch response body, logging close failures.
func (s *Storage) closeResponse(body interface{ Close() error }, op string) {
	if closeErr := body.Close(); closeErr != nil {
		s.logger.Error("Failed to close response body",
			"error", closeErr,
			"operation", op)
	}
}

// TestConnection tests the connection to Elasticsearch.
func (s *Storage) TestConnection(ctx context.Context) error {
	if s.client == nil {
		return ErrClientNotInitialized
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultTestConnectionTimeout)
	defer cancel()

	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error pinging storage: %w", err)
	}
	defer s.closeResponse(res.Body, "TestConnection")

	if res.IsError() {
		return fmt.Errorf("error pinging storage: %s", res.String())
	}

	return nil
}
