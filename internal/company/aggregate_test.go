package company_test

import (
	"testing"

	"github.com/jonesrussell/companyfinder/internal/company"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateByDomain_SingleDomain(t *testing.T) {
	records := []company.PageRecord{
		{Domain: "multi.com", Phone: "+1-555-1001", SocialMedia: company.StringList{"t.co/multi"}},
		{Domain: "multi.com", Phone: "+1-555-1002", SocialMedia: company.StringList{"fb.com/multi", "t.co/multi"}},
	}

	aggregated := company.AggregateByDomain(records)
	require.Len(t, aggregated, 1)

	record := aggregated["multi.com"]
	require.NotNil(t, record)
	assert.ElementsMatch(t, []string{"+1-555-1001", "+1-555-1002"}, record.Phones)
	assert.ElementsMatch(t, []string{"t.co/multi", "fb.com/multi"}, record.SocialMedia)
}

func TestAggregateByDomain_MultipleDomains(t *testing.T) {
	records := []company.PageRecord{
		{Domain: "a.com", Phone: "+15551001", URL: "https://a.com"},
		{Domain: "b.com", Phone: "+15552001", URL: "https://b.com"},
		{Domain: "a.com", Address: "1 Main St", URL: "https://a.com/contact"},
	}

	aggregated := company.AggregateByDomain(records)
	require.Len(t, aggregated, 2)

	a := aggregated["a.com"]
	require.NotNil(t, a)
	assert.Equal(t, []string{"+15551001"}, a.Phones)
	assert.Equal(t, []string{"1 Main St"}, a.Addresses)
	assert.ElementsMatch(t, []string{"https://a.com", "https://a.com/contact"}, a.URLs)

	b := aggregated["b.com"]
	require.NotNil(t, b)
	assert.Equal(t, []string{"+15552001"}, b.Phones)
}

func TestAggregateByDomain_SkipsMissingDomain(t *testing.T) {
	records := []company.PageRecord{
		{Phone: "+15551001"},
		{Domain: "  ", Phone: "+15551002"},
		{Domain: "ok.com", Phone: "+15551003"},
	}

	aggregated := company.AggregateByDomain(records)
	require.Len(t, aggregated, 1)
	assert.Equal(t, []string{"+15551003"}, aggregated["ok.com"].Phones)
}

func TestAggregateByDomain_Empty(t *testing.T) {
	assert.Empty(t, company.AggregateByDomain(nil))
}
