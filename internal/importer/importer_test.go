package importer_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/companyfinder/internal/importer"
	"github.com/jonesrussell/companyfinder/internal/logger"
	"github.com/jonesrussell/companyfinder/internal/storage"
)

// fakeStore is an in-memory stand-in for the Elasticsearch storage.
type fakeStore struct {
	docs          map[string]map[string]any
	ensureCalls   int
	failDomains   map[string]bool
	getFailDomain string
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]map[string]any)}
}

func (f *fakeStore) EnsureIndex(context.Context) error {
	f.ensureCalls++
	return nil
}

func (f *fakeStore) GetCompany(_ context.Context, domain string) (map[string]any, error) {
	if domain == f.getFailDomain {
		return nil, fmt.Errorf("connection reset")
	}
	doc, ok := f.docs[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrDocumentNotFound, domain)
	}
	return doc, nil
}

func (f *fakeStore) BulkUpsert(_ context.Context, docs map[string]map[string]any) (int, error) {
	written := 0
	for domain, doc := range docs {
		if f.failDomains[domain] {
			continue
		}
		f.docs[domain] = doc
		written++
	}
	return written, nil
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportCSV_ConsolidatesNames(t *testing.T) {
	csvData := `domain,company_commercial_name,company_legal_name,company_all_available_names
example.com,Example Corp,Example Corporation Inc,Example Corp|Example Inc|Example Company
`
	store := newFakeStore()
	imp := importer.New(store, logger.NewNoOp())

	count, err := imp.ImportCSV(context.Background(), writeTempFile(t, "companies.csv", csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, store.ensureCalls)

	doc := store.docs["example.com"]
	require.NotNil(t, doc)
	assert.Equal(t, "example.com", doc["domain"])
	assert.ElementsMatch(t,
		[]string{"Example Corp", "Example Corporation Inc", "Example Inc", "Example Company"},
		doc["company_names"])
}

func TestImportCSV_SkipsRowsWithoutDomain(t *testing.T) {
	csvData := `domain,company_commercial_name
,Orphan Co
good.com,Good Co
`
	store := newFakeStore()
	imp := importer.New(store, logger.NewNoOp())

	count, err := imp.ImportCSV(context.Background(), writeTempFile(t, "companies.csv", csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, store.docs, "good.com")
	assert.Len(t, store.docs, 1)
}

func TestImportJSON_AggregatesPerDomain(t *testing.T) {
	jsonData := `[
		{"domain": "multi.com", "phone": "+1-555-1001", "social_media": ["t.co/multi"], "url": "https://multi.com/"},
		{"domain": "multi.com", "phone": "+1-555-1002", "social_media": ["fb.com/multi", "t.co/multi"], "url": "https://multi.com/contact"}
	]`
	store := newFakeStore()
	imp := importer.New(store, logger.NewNoOp())

	count, err := imp.ImportJSON(context.Background(), writeTempFile(t, "scraped.json", jsonData))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	doc := store.docs["multi.com"]
	require.NotNil(t, doc)
	assert.ElementsMatch(t, []string{"+1-555-1001", "+1-555-1002"}, doc["phones"])
	assert.ElementsMatch(t, []string{"t.co/multi", "fb.com/multi"}, doc["social_media"])
}

func TestImport_MergesWithExistingDocument(t *testing.T) {
	store := newFakeStore()
	store.docs["example.com"] = map[string]any{
		"domain":        "example.com",
		"company_names": []any{"Example Corp"},
	}
	imp := importer.New(store, logger.NewNoOp())

	jsonData := `[{"domain": "example.com", "phone": "+1-555-9999", "page_type": "contact"}]`
	count, err := imp.ImportJSON(context.Background(), writeTempFile(t, "scraped.json", jsonData))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	doc := store.docs["example.com"]
	assert.ElementsMatch(t, []string{"Example Corp"}, doc["company_names"])
	assert.ElementsMatch(t, []string{"+1-555-9999"}, doc["phones"])
}

func TestImport_FetchFailureTreatedAsNew(t *testing.T) {
	store := newFakeStore()
	store.getFailDomain = "flaky.com"
	imp := importer.New(store, logger.NewNoOp())

	jsonData := `[{"domain": "flaky.com", "phone": "+1-555-0000"}]`
	count, err := imp.ImportJSON(context.Background(), writeTempFile(t, "scraped.json", jsonData))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, store.docs, "flaky.com")
}

func TestImport_PartialBulkFailureNotFatal(t *testing.T) {
	store := newFakeStore()
	store.failDomains = map[string]bool{"bad.com": true}
	imp := importer.New(store, logger.NewNoOp())

	jsonData := `[
		{"domain": "bad.com", "phone": "1"},
		{"domain": "good.com", "phone": "2"}
	]`
	count, err := imp.ImportJSON(context.Background(), writeTempFile(t, "scraped.json", jsonData))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestImportJSON_EmptyInput(t *testing.T) {
	store := newFakeStore()
	imp := importer.New(store, logger.NewNoOp())

	count, err := imp.ImportJSON(context.Background(), writeTempFile(t, "scraped.json", `[]`))
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, store.ensureCalls)
}
