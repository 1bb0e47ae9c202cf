package common

import (
	"fmt"

	"github.com/jonesrussell/companyfinder/internal/config"
	"github.com/jonesrussell/companyfinder/internal/logger"
	"github.com/jonesrussell/companyfinder/internal/storage"
)

// CreateStorage creates the Elasticsearch client and wraps it in a
// Storage bound to the configured company index.
func CreateStorage(cfg config.Interface, log logger.Interface) (*storage.Storage, error) {
	esConfig := cfg.GetElasticsearchConfig()

	client, err := storage.NewClient(esConfig, log)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return storage.NewStorage(client, log, esConfig.IndexName), nil
}
