// Package search builds weighted company-lookup queries and shapes the
// ranked results into best-match or debug responses.
package search

import (
	"strings"
	"unicode"
)

// Boost tiers for the should clauses, highest to lowest.
const (
	highestBoost = 3.0
	mediumBoost  = 2.0
	lowestBoost  = 1.0
)

// BuildQuery produces a disjunctive query over the provided criteria.
// Each name contributes a fuzzy match, an exact keyword term, and a
// camel-case-split token match; phones and urls contribute exact terms;
// addresses contribute fuzzy matches at the lowest tier. With no
// criteria at all the query matches everything, which is the deliberate
// fallback rather than an error.
func BuildQuery(names, phones, urls, addresses []string) map[string]any {
	var should []any

	for _, name := range names {
		should = append(should, map[string]any{
			"match": map[string]any{
				"company_names": map[string]any{
					"query":     name,
					"fuzziness": "AUTO",
					"boost":     highestBoost,
				},
			},
		})
		should = append(should, map[string]any{
			"term": map[string]any{
				"company_names.keyword": map[string]any{
					"value": name,
					"boost": highestBoost,
				},
			},
		})

		if parts := SplitCamelCase(name); len(parts) > 0 {
			should = append(should, map[string]any{
				"match": map[string]any{
					"company_names": map[string]any{
						"query":     strings.Join(parts, " "),
						"fuzziness": "AUTO",
						"boost":     mediumBoost,
					},
				},
			})
		}
	}

	for _, phone := range phones {
		should = append(should, map[string]any{
			"term": map[string]any{
				"phones": map[string]any{
					"value": phone,
					"boost": mediumBoost,
				},
			},
		})
	}

	for _, url := range urls {
		should = append(should, map[string]any{
			"term": map[string]any{
				"domain": map[string]any{
					"value": url,
					"boost": highestBoost,
				},
			},
		})
		should = append(should, map[string]any{
			"term": map[string]any{
				"urls": map[string]any{
					"value": url,
					"boost": mediumBoost,
				},
			},
		})
	}

	for _, address := range addresses {
		should = append(should, map[string]any{
			"match": map[string]any{
				"addresses": map[string]any{
					"query":     address,
					"fuzziness": "AUTO",
					"boost":     lowestBoost,
				},
			},
		})
	}

	if len(should) == 0 {
		return map[string]any{"query": map[string]any{"match_all": map[string]any{}}}
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"should":               should,
				"minimum_should_match": 1,
			},
		},
		"sort": []any{
			map[string]any{"_score": map[string]any{"order": "desc"}},
		},
	}
}

// SplitCamelCase splits a name on capital-letter boundaries, keeping
// only runs of at least three characters, to catch concatenated-word
// company names ("AcmeWidgets" becomes ["Acme", "Widgets"]). This is a
// compatibility heuristic, not general tokenization: short runs,
// including abbreviation letters, are dropped outright.
func SplitCamelCase(name string) []string {
	const minRun = 3

	var parts []string
	var current []rune
	for _, r := range name {
		if unicode.IsUpper(r) {
			if len(current) >= minRun {
				parts = append(parts, string(current))
			}
			current = []rune{r}
		} else {
			current = append(current, r)
		}
	}
	if len(current) >= minRun {
		parts = append(parts, string(current))
	}

	return parts
}
