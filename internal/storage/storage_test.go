package storage_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/companyfinder/internal/logger"
	"github.com/jonesrussell/companyfinder/internal/storage"
)

// mockTransport implements http.RoundTripper for mocking Elasticsearch responses
type mockTransport struct {
	RoundTripFn func(req *http.Request) (*http.Response, error)
}

func (t *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.RoundTripFn(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}},
	}
}

func newTestStorage(t *testing.T, fn func(req *http.Request) (*http.Response, error)) *storage.Storage {
	t.Helper()
	client, err := es.NewClient(es.Config{
		Transport: &mockTransport{RoundTripFn: fn},
	})
	require.NoError(t, err)
	return storage.NewStorage(client, logger.NewNoOp(), "companies")
}

func TestGetCompany_Found(t *testing.T) {
	s := newTestStorage(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/companies/_doc/example.com", req.URL.Path)
		return jsonResponse(http.StatusOK, `{
			"found": true,
			"_source": {
				"domain": "example.com",
				"company_names": ["Example Corp"]
			}
		}`), nil
	})

	doc, err := s.GetCompany(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", doc["domain"])
	assert.Equal(t, []any{"Example Corp"}, doc["company_names"])
}

func TestGetCompany_NotFound(t *testing.T) {
	s := newTestStorage(t, func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"found": false}`), nil
	})

	_, err := s.GetCompany(context.Background(), "missing.com")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrDocumentNotFound)
	assert.Contains(t, err.Error(), "missing.com")
}

func TestCompanyExists(t *testing.T) {
	s := newTestStorage(t, func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/present.com") {
			return jsonResponse(http.StatusOK, ``), nil
		}
		return jsonResponse(http.StatusNotFound, ``), nil
	})

	exists, err := s.CompanyExists(context.Background(), "present.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.CompanyExists(context.Background(), "absent.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBulkUpsert_AllSucceed(t *testing.T) {
	var captured []byte
	s := newTestStorage(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/_bulk", req.URL.Path)
		assert.Equal(t, "true", req.URL.Query().Get("refresh"))
		captured, _ = io.ReadAll(req.Body)
		return jsonResponse(http.StatusOK, `{
			"errors": false,
			"items": [
				{"index": {"_id": "a.com", "status": 201}},
				{"index": {"_id": "b.com", "status": 200}}
			]
		}`), nil
	})

	docs := map[string]map[string]any{
		"a.com": {"domain": "a.com"},
		"b.com": {"domain": "b.com", "phones": []string{"5551234"}},
	}
	count, err := s.BulkUpsert(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// NDJSON body: one action line and one document line per staged doc
	lines := strings.Split(strings.TrimSpace(string(captured)), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, string(captured), `"_id":"a.com"`)
}

func TestBulkUpsert_PartialFailure(t *testing.T) {
	s := newTestStorage(t, func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{
			"errors": true,
			"items": [
				{"index": {"_id": "good.com", "status": 201}},
				{"index": {"_id": "bad.com", "status": 400, "error": {"type": "mapper_parsing_exception", "reason": "failed to parse"}}}
			]
		}`), nil
	})

	docs := map[string]map[string]any{
		"good.com": {"domain": "good.com"},
		"bad.com":  {"domain": "bad.com"},
	}
	count, err := s.BulkUpsert(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBulkUpsert_Empty(t *testing.T) {
	s := newTestStorage(t, func(_ *http.Request) (*http.Response, error) {
		t.Fatal("no request expected for an empty batch")
		return nil, nil
	})

	count, err := s.BulkUpsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSearch_ReturnsRankedHits(t *testing.T) {
	s := newTestStorage(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/companies/_search", req.URL.Path)
		assert.Equal(t, "10", req.URL.Query().Get("size"))
		return jsonResponse(http.StatusOK, `{
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_score": 9.1, "_source": {"domain": "acme.com"}},
					{"_score": 2.4, "_source": {"domain": "other.com"}}
				]
			}
		}`), nil
	})

	hits, err := s.Search(context.Background(), map[string]any{"query": map[string]any{"match_all": map[string]any{}}}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.InDelta(t, 9.1, hits[0].Score, 0.001)
	assert.Equal(t, "acme.com", hits[0].Source["domain"])
}

func TestSearch_NoHits(t *testing.T) {
	s := newTestStorage(t, func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"hits": {"total": {"value": 0}, "hits": []}}`), nil
	})

	hits, err := s.Search(context.Background(), map[string]any{}, 1)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestEnsureIndex_CreatesWhenMissing(t *testing.T) {
	var createBody []byte
	s := newTestStorage(t, func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodHead {
			return jsonResponse(http.StatusNotFound, ``), nil
		}
		require.Equal(t, http.MethodPut, req.Method)
		require.Equal(t, "/companies", req.URL.Path)
		createBody, _ = io.ReadAll(req.Body)
		return jsonResponse(http.StatusOK, `{"acknowledged": true}`), nil
	})

	require.NoError(t, s.EnsureIndex(context.Background()))
	assert.Contains(t, string(createBody), `"domain":{"type":"keyword"}`)
	assert.Contains(t, string(createBody), `"company_names"`)
}

func TestEnsureIndex_NoOpWhenPresent(t *testing.T) {
	s := newTestStorage(t, func(req *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodHead, req.Method)
		return jsonResponse(http.StatusOK, ``), nil
	})

	require.NoError(t, s.EnsureIndex(context.Background()))
}

func TestDeleteIndex_NotFound(t *testing.T) {
	s := newTestStorage(t, func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"error":{"type":"index_not_found_exception"}}`), nil
	})

	err := s.DeleteIndex(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrIndexNotFound)
}

func TestIndexStats(t *testing.T) {
	s := newTestStorage(t, func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodHead {
			return jsonResponse(http.StatusOK, ``), nil
		}
		return jsonResponse(http.StatusOK, `{
			"indices": {
				"companies": {
					"total": {
						"docs": {"count": 42},
						"store": {"size_in_bytes": 10240}
					}
				}
			}
		}`), nil
	})

	stats, err := s.IndexStats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.Exists)
	assert.Equal(t, int64(42), stats.DocumentCount)
	assert.Equal(t, int64(10240), stats.SizeBytes)
}

func TestIndexStats_MissingIndex(t *testing.T) {
	s := newTestStorage(t, func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, ``), nil
	})

	stats, err := s.IndexStats(context.Background())
	require.NoError(t, err)
	assert.False(t, stats.Exists)
	assert.Zero(t, stats.DocumentCount)
}
