package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// IndexStats summarizes the company index.
type IndexStats struct {
	Exists        bool
	DocumentCount int64
	SizeBytes     int64
}

// companyMapping is the index mapping for company documents. The domain
// is the document ID and an exact-match field; company names are
// full-text with a keyword sub-field so queries can both fuzzy-match
// and term-match them.
func companyMapping() map[string]any {
	return map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"domain": map[string]any{"type": "keyword"},
				"company_names": map[string]any{
					"type": "text",
					"fields": map[string]any{
						"keyword": map[string]any{"type": "keyword"},
					},
				},
				"phones":       map[string]any{"type": "keyword"},
				"social_media": map[string]any{"type": "keyword"},
				"addresses":    map[string]any{"type": "text"},
				"page_types":   map[string]any{"type": "keyword"},
				"urls":         map[string]any{"type": "keyword"},
			},
		},
	}
}

// IndexExists checks whether the company index exists.
func (s *Storage) IndexExists(ctx context.Context) (bool, error) {
	if s.client == nil {
		return false, ErrClientNotInitialized
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultTestConnectionTimeout)
	defer cancel()

	res, err := s.client.Indices.Exists(
		[]string{s.index},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("failed to check index existence: %w", err)
	}
	defer s.closeResponse(res.Body, "IndexExists")

	return res.StatusCode == http.StatusOK, nil
}

// EnsureIndex creates the company index with its mapping if it does not
// already exist. Creating is idempotent from the caller's point of view.
func (s *Storage) EnsureIndex(ctx context.Context) error {
	exists, err := s.IndexExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Debug("Index already exists", "index", s.index)
		return nil
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	var buf bytes.Buffer
	if encodeErr := json.NewEncoder(&buf).Encode(companyMapping()); encodeErr != nil {
		return fmt.Errorf("error encoding mapping: %w", encodeErr)
	}

	res, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(&buf),
	)
	if err != nil {
		s.logger.Error("Failed to create index", "index", s.index, "error", err)
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer s.closeResponse(res.Body, "EnsureIndex")

	if res.IsError() {
		s.logger.Error("Failed to create index", "index", s.index, "error", res.String())
		return fmt.Errorf("failed to create index: %s", res.String())
	}

	s.logger.Info("Created index", "index", s.index)
	return nil
}

// DeleteIndex deletes the company index.
func (s *Storage) DeleteIndex(ctx context.Context) error {
	if s.client == nil {
		return ErrClientNotInitialized
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	res, err := s.client.Indices.Delete(
		[]string{s.index},
		s.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		s.logger.Error("Failed to delete index", "error", err)
		return fmt.Errorf("error deleting index: %w", err)
	}
	defer s.closeResponse(res.Body, "DeleteIndex")

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrIndexNotFound, s.index)
	}
	if res.IsError() {
		s.logger.Error("Failed to delete index", "error", res.String())
		return fmt.Errorf("error deleting index: %s", res.String())
	}

	s.logger.Info("Deleted index", "index", s.index)
	return nil
}

// IndexStats retrieves document count and on-disk size for the company
// index. A missing index reports Exists=false rather than an error.
func (s *Storage) IndexStats(ctx context.Context) (*IndexStats, error) {
	if s.client == nil {
		return nil, ErrClientNotInitialized
	}

	exists, err := s.IndexExists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &IndexStats{Exists: false}, nil
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	res, err := s.client.Indices.Stats(
		s.client.Indices.Stats.WithIndex(s.index),
		s.client.Indices.Stats.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get index stats: %w", err)
	}
	defer s.closeResponse(res.Body, "IndexStats")

	if res.IsError() {
		return nil, fmt.Errorf("error getting index stats: %s", res.String())
	}

	var statsData map[string]any
	if decodeErr := json.NewDecoder(res.Body).Decode(&statsData); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", decodeErr)
	}

	stats := &IndexStats{Exists: true}
	if indices, ok := statsData["indices"].(map[string]any); ok {
		if indexStats, ok := indices[s.index].(map[string]any); ok {
			if total, ok := indexStats["total"].(map[string]any); ok {
				if docs, ok := total["docs"].(map[string]any); ok {
					if count, ok := docs["count"].(float64); ok {
						stats.DocumentCount = int64(count)
					}
				}
				if store, ok := total["store"].(map[string]any); ok {
					if size, ok := store["size_in_bytes"].(float64); ok {
						stats.SizeBytes = int64(size)
					}
				}
			}
		}
	}

	return stats, nil
}
