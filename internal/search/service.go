package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/companyfinder/internal/company"
	"github.com/jonesrussell/companyfinder/internal/logger"
	"github.com/jonesrussell/companyfinder/internal/storage"
)

// ErrNoCriteria indicates a request with no usable search field.
var ErrNoCriteria = errors.New("at least one search field must be provided")

const (
	bestMatchSize = 1
	debugSize     = 10
)

// Searcher is the slice of the storage API the service needs.
type Searcher interface {
	Search(ctx context.Context, query map[string]any, size int) ([]storage.Hit, error)
}

// Request is a company lookup. Each criterion accepts a single string
// or an array of strings; Debug switches from single-best-match to
// top-ten mode.
type Request struct {
	Name    company.StringList `json:"name"`
	Phone   company.StringList `json:"phone"`
	URLs    company.StringList `json:"urls"`
	Address company.StringList `json:"address"`
	Debug   bool               `json:"debug"`
}

// Criteria echoes the normalized search inputs back to the caller.
type Criteria struct {
	Names            []string `json:"names"`
	NormalizedPhones []string `json:"normalized_phones"`
	CleanedURLs      []string `json:"cleaned_urls"`
	Addresses        []string `json:"addresses"`
}

// Match is one scored result in debug mode.
type Match struct {
	Score   float64        `json:"score"`
	Company map[string]any `json:"company"`
}

// Result is the shaped search response. Found=false with a Message is
// the normal zero-hit outcome, not an error.
type Result struct {
	Found          bool           `json:"found"`
	Score          float64        `json:"score,omitempty"`
	Company        map[string]any `json:"company,omitempty"`
	Results        []Match        `json:"results,omitempty"`
	Message        string         `json:"message,omitempty"`
	SearchCriteria Criteria       `json:"search_criteria"`
}

// Service executes company lookups against the store.
type Service struct {
	storage Searcher
	logger  logger.Interface
}

// NewService creates a search service backed by the given storage.
func NewService(s Searcher, log logger.Interface) *Service {
	return &Service{
		storage: s,
		logger:  log,
	}
}

// Search normalizes the request criteria, builds the weighted query and
// shapes the ranked hits. A request with no usable criteria returns
// ErrNoCriteria.
func (s *Service) Search(ctx context.Context, req *Request) (*Result, error) {
	criteria := normalizeCriteria(req)
	if len(criteria.Names) == 0 && len(criteria.NormalizedPhones) == 0 &&
		len(criteria.CleanedURLs) == 0 && len(criteria.Addresses) == 0 {
		return nil, ErrNoCriteria
	}

	query := BuildQuery(criteria.Names, criteria.NormalizedPhones, criteria.CleanedURLs, criteria.Addresses)

	size := bestMatchSize
	if req.Debug {
		size = debugSize
	}

	hits, err := s.storage.Search(ctx, query, size)
	if err != nil {
		return nil, fmt.Errorf("search execution failed: %w", err)
	}

	s.logger.Debug("Search executed",
		"hits", len(hits),
		"debug", req.Debug)

	if len(hits) == 0 {
		return &Result{
			Found:          false,
			Message:        "No matching companies found",
			SearchCriteria: criteria,
		}, nil
	}

	if req.Debug {
		results := make([]Match, 0, len(hits))
		for _, hit := range hits {
			results = append(results, Match{Score: hit.Score, Company: hit.Source})
		}
		return &Result{
			Found:          true,
			Results:        results,
			SearchCriteria: criteria,
		}, nil
	}

	best := hits[0]
	return &Result{
		Found:          true,
		Score:          best.Score,
		Company:        best.Source,
		SearchCriteria: criteria,
	}, nil
}

// normalizeCriteria trims, cleans and normalizes every provided field,
// dropping blank entries.
func normalizeCriteria(req *Request) Criteria {
	criteria := Criteria{
		Names:     company.UniqueStrings(req.Name),
		Addresses: company.UniqueStrings(req.Address),
	}

	for _, phone := range company.UniqueStrings(req.Phone) {
		criteria.NormalizedPhones = append(criteria.NormalizedPhones, NormalizePhone(phone))
	}
	for _, rawURL := range company.UniqueStrings(req.URLs) {
		criteria.CleanedURLs = append(criteria.CleanedURLs, CleanURL(rawURL))
	}

	return criteria
}
