package search_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/companyfinder/internal/search"
)

func TestSplitCamelCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"concatenated words", "AcmeWidgets", []string{"Acme", "Widgets"}},
		{"lowercase word", "acme", []string{"acme"}},
		{"short runs dropped", "ABCo", nil},
		{"abbreviation letters dropped", "IBMSoftware", []string{"Software"}},
		{"mixed", "BigRedTruckCo", []string{"Big", "Red", "Truck"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, search.SplitCamelCase(tt.input))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "15551234567", search.NormalizePhone("+1 (555) 123-4567"))
	assert.Equal(t, "5551001", search.NormalizePhone("555-1001"))
	assert.Equal(t, "", search.NormalizePhone("no digits"))
}

func TestCleanURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.acme.com/about", "acme.com"},
		{"http://acme.com", "acme.com"},
		{"acme.com", "acme.com"},
		{"WWW.ACME.COM", "acme.com"},
		{"  ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, search.CleanURL(tt.input), "input %q", tt.input)
	}
}

func TestBuildQuery_NoCriteria(t *testing.T) {
	query := search.BuildQuery(nil, nil, nil, nil)
	assert.Equal(t, map[string]any{"query": map[string]any{"match_all": map[string]any{}}}, query)
}

func TestBuildQuery_NamesAndURLs(t *testing.T) {
	query := search.BuildQuery([]string{"Acme"}, nil, []string{"acme.com"}, nil)

	boolQuery, ok := query["query"].(map[string]any)["bool"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, boolQuery["minimum_should_match"])

	// Serialize so clause presence can be asserted without walking the tree
	raw, err := json.Marshal(query)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `"company_names":{"boost":3,"fuzziness":"AUTO","query":"Acme"}`)
	assert.Contains(t, body, `"company_names.keyword":{"boost":3,"value":"Acme"}`)
	assert.Contains(t, body, `"domain":{"boost":3,"value":"acme.com"}`)
	assert.Contains(t, body, `"urls":{"boost":2,"value":"acme.com"}`)

	sort, ok := query["sort"].([]any)
	require.True(t, ok)
	require.Len(t, sort, 1)
	assert.Equal(t, map[string]any{"_score": map[string]any{"order": "desc"}}, sort[0])
}

func TestBuildQuery_CamelCaseTokensClause(t *testing.T) {
	query := search.BuildQuery([]string{"AcmeWidgets"}, nil, nil, nil)

	raw, err := json.Marshal(query)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"query":"Acme Widgets"`)
}

func TestBuildQuery_PhonesAndAddresses(t *testing.T) {
	query := search.BuildQuery(nil, []string{"5551001"}, nil, []string{"123 Main St"})

	raw, err := json.Marshal(query)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `"phones":{"boost":2,"value":"5551001"}`)
	assert.Contains(t, body, `"addresses":{"boost":1,"fuzziness":"AUTO","query":"123 Main St"}`)
}
