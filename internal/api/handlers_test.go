package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/companyfinder/internal/api"
	"github.com/jonesrussell/companyfinder/internal/logger"
	"github.com/jonesrussell/companyfinder/internal/search"
	"github.com/jonesrussell/companyfinder/internal/storage"
)

// fakeStore backs both the search service and the document handlers.
type fakeStore struct {
	docs      map[string]map[string]any
	hits      []storage.Hit
	stats     *storage.IndexStats
	searchErr error
}

func (f *fakeStore) GetCompany(_ context.Context, domain string) (map[string]any, error) {
	doc, ok := f.docs[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrDocumentNotFound, domain)
	}
	return doc, nil
}

func (f *fakeStore) IndexStats(context.Context) (*storage.IndexStats, error) {
	return f.stats, nil
}

func (f *fakeStore) Search(context.Context, map[string]any, int) ([]storage.Hit, error) {
	return f.hits, f.searchErr
}

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNoOp()
	svc := search.NewService(store, log)
	handler := api.NewHandler(svc, store, log)

	router := gin.New()
	api.SetupRoutes(router, handler)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestSearch_BestMatch(t *testing.T) {
	router := newTestRouter(&fakeStore{
		hits: []storage.Hit{
			{Score: 5.0, Source: map[string]any{"domain": "acme.com"}},
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/v1/search", map[string]any{
		"name": "Acme",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var result search.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Found)
	assert.InDelta(t, 5.0, result.Score, 0.001)
	assert.Equal(t, "acme.com", result.Company["domain"])
	assert.Equal(t, []string{"Acme"}, result.SearchCriteria.Names)
}

func TestSearch_StringOrArrayFields(t *testing.T) {
	store := &fakeStore{
		hits: []storage.Hit{
			{Score: 1.0, Source: map[string]any{"domain": "acme.com"}},
		},
	}
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodPost, "/api/v1/search", map[string]any{
		"name": []string{"Acme", "Acme Corp"},
		"urls": "https://www.acme.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var result search.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, []string{"Acme", "Acme Corp"}, result.SearchCriteria.Names)
	assert.Equal(t, []string{"acme.com"}, result.SearchCriteria.CleanedURLs)
}

func TestSearch_AllFieldsEmpty(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/search", map[string]any{
		"name": "  ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch_NoHitsIs404(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/search", map[string]any{
		"name": "Nobody",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var result search.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Found)
	assert.Equal(t, "No matching companies found", result.Message)
}

func TestSearch_DebugMode(t *testing.T) {
	router := newTestRouter(&fakeStore{
		hits: []storage.Hit{
			{Score: 9.0, Source: map[string]any{"domain": "a.com"}},
			{Score: 3.0, Source: map[string]any{"domain": "b.com"}},
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/v1/search", map[string]any{
		"name":  "Acme",
		"debug": true,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var result search.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Results, 2)
	assert.Equal(t, "a.com", result.Results[0].Company["domain"])
}

func TestSearch_StoreFailureIs500(t *testing.T) {
	router := newTestRouter(&fakeStore{searchErr: fmt.Errorf("connection refused")})

	w := doJSON(t, router, http.MethodPost, "/api/v1/search", map[string]any{
		"name": "Acme",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetCompany(t *testing.T) {
	router := newTestRouter(&fakeStore{
		docs: map[string]map[string]any{
			"acme.com": {"domain": "acme.com", "company_names": []any{"Acme"}},
		},
	})

	w := doJSON(t, router, http.MethodGet, "/api/v1/companies/acme.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["found"])

	company, ok := body["company"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "acme.com", company["domain"])
}

func TestGetCompany_NotFound(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/companies/missing.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexStats(t *testing.T) {
	router := newTestRouter(&fakeStore{
		stats: &storage.IndexStats{Exists: true, DocumentCount: 12, SizeBytes: 4096},
	})

	w := doJSON(t, router, http.MethodGet, "/api/v1/index/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["exists"])
	assert.InDelta(t, 12, body["document_count"], 0.001)
}
