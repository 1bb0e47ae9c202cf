package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Hit is a single ranked search result.
type Hit struct {
	Score  float64        `json:"_score"`
	Source map[string]any `json:"_source"`
}

// searchResponse mirrors the subset of the Elasticsearch search envelope
// this package consumes.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []Hit `json:"hits"`
	} `json:"hits"`
}

// getResponse mirrors the document-get envelope.
type getResponse struct {
	Found  bool           `json:"found"`
	Source map[string]any `json:"_source"`
}

// bulkResponse mirrors the bulk-write envelope, one item per action.
type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// GetCompany retrieves the stored document for a domain. A missing
// document returns ErrDocumentNotFound; callers treat that as "no prior
// record", not a failure.
func (s *Storage) GetCompany(ctx context.Context, domain string) (map[string]any, error) {
	if s.client == nil {
		return nil, ErrClientNotInitialized
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	res, err := s.client.Get(
		s.index,
		domain,
		s.client.Get.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("error getting document: %w", err)
	}
	defer s.closeResponse(res.Body, "GetCompany")

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, domain)
	}
	if res.IsError() {
		return nil, fmt.Errorf("error getting document: %s", res.String())
	}

	var envelope getResponse
	if decodeErr := json.NewDecoder(res.Body).Decode(&envelope); decodeErr != nil {
		return nil, fmt.Errorf("error decoding document: %w", decodeErr)
	}
	if !envelope.Found {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, domain)
	}

	return envelope.Source, nil
}

// CompanyExists reports whether a document exists for the domain.
func (s *Storage) CompanyExists(ctx context.Context, domain string) (bool, error) {
	if s.client == nil {
		return false, ErrClientNotInitialized
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	res, err := s.client.Exists(
		s.index,
		domain,
		s.client.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("error checking document existence: %w", err)
	}
	defer s.closeResponse(res.Body, "CompanyExists")

	return res.StatusCode == http.StatusOK, nil
}

// BulkUpsert writes all staged documents in one bulk request keyed by
// domain, with refresh forced so the writes are immediately searchable.
// Per-item failures are logged and excluded from the returned count;
// partial failure is not escalated to an error.
func (s *Storage) BulkUpsert(ctx context.Context, docs map[string]map[string]any) (int, error) {
	if s.client == nil {
		return 0, ErrClientNotInitialized
	}
	if len(docs) == 0 {
		return 0, nil
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultBulkTimeout)
	defer cancel()

	var buf bytes.Buffer
	for domain, doc := range docs {
		meta := map[string]any{
			"index": map[string]any{
				"_index": s.index,
				"_id":    domain,
			},
		}
		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return 0, fmt.Errorf("failed to encode bulk action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(doc); err != nil {
			return 0, fmt.Errorf("failed to encode document: %w", err)
		}
	}

	res, err := s.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
		s.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk request failed: %w", err)
	}
	defer s.closeResponse(res.Body, "BulkUpsert")

	if res.IsError() {
		return 0, fmt.Errorf("bulk indexing error: %s", res.String())
	}

	var envelope bulkResponse
	if decodeErr := json.NewDecoder(res.Body).Decode(&envelope); decodeErr != nil {
		return 0, fmt.Errorf("error decoding bulk response: %w", decodeErr)
	}

	succeeded := 0
	for _, item := range envelope.Items {
		for _, result := range item {
			if result.Status >= http.StatusOK && result.Status < http.StatusMultipleChoices {
				succeeded++
				continue
			}
			reason := "status " + strconv.Itoa(result.Status)
			if result.Error != nil {
				reason = result.Error.Type + ": " + result.Error.Reason
			}
			s.logger.Error("Bulk item failed",
				"docID", result.ID,
				"index", s.index,
				"reason", reason)
		}
	}

	s.logger.Info("Bulk upsert completed",
		"index", s.index,
		"staged", len(docs),
		"succeeded", succeeded)
	return succeeded, nil
}

// Search executes a query against the company index and returns the
// ranked hits. The caller controls the result count.
func (s *Storage) Search(ctx context.Context, query map[string]any, size int) ([]Hit, error) {
	if s.client == nil {
		return nil, ErrClientNotInitialized
	}

	ctx, cancel := s.createContextWithTimeout(ctx, DefaultSearchTimeout)
	defer cancel()

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("error marshaling search query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
		s.client.Search.WithSize(size),
	)
	if err != nil {
		return nil, fmt.Errorf("error executing search: %w", err)
	}
	defer s.closeResponse(res.Body, "Search")

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, s.index)
	}
	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var envelope searchResponse
	if decodeErr := json.NewDecoder(res.Body).Decode(&envelope); decodeErr != nil {
		return nil, fmt.Errorf("error decoding search response: %w", decodeErr)
	}

	return envelope.Hits.Hits, nil
}
