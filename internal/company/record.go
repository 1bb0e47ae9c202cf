// Package company defines the per-domain company record aggregate and the
// merge semantics used by the importer and the search API.
package company

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Record is the per-domain aggregate of extracted company facts. The domain
// is the primary key; every other field is an ordered collection of unique,
// trimmed, non-empty strings.
type Record struct {
	Domain       string   `json:"domain"        mapstructure:"domain"`
	CompanyNames []string `json:"company_names" mapstructure:"company_names"`
	Phones       []string `json:"phones"        mapstructure:"phones"`
	SocialMedia  []string `json:"social_media"  mapstructure:"social_media"`
	Addresses    []string `json:"addresses"     mapstructure:"addresses"`
	PageTypes    []string `json:"page_types"    mapstructure:"page_types"`
	URLs         []string `json:"urls"          mapstructure:"urls"`
}

// UniqueStrings returns the first-occurrence, trimmed, non-empty, unique
// values of items, preserving input order. It is the single normalization
// primitive for Record collections and is idempotent.
func UniqueStrings(items []string) []string {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	unique := make([]string, 0, len(items))
	for _, item := range items {
		cleaned := strings.TrimSpace(item)
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		unique = append(unique, cleaned)
	}

	if len(unique) == 0 {
		return nil
	}
	return unique
}

// NewRecord creates an empty Record for the given domain.
func NewRecord(domain string) (*Record, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return nil, ErrMissingDomain
	}
	return &Record{Domain: domain}, nil
}

// AddCompanyNames appends names and re-applies uniqueness.
func (r *Record) AddCompanyNames(names []string) {
	if len(names) == 0 {
		return
	}
	r.CompanyNames = UniqueStrings(append(r.CompanyNames, names...))
}

// AddCompanyNamesPipeSeparated splits a pipe-delimited string of names and
// adds each segment.
func (r *Record) AddCompanyNamesPipeSeparated(pipeSeparated string) {
	if pipeSeparated == "" {
		return
	}
	r.AddCompanyNames(strings.Split(pipeSeparated, "|"))
}

// AddPhones appends phone numbers and re-applies uniqueness. Phones are
// expected to be pre-normalized by the producer.
func (r *Record) AddPhones(phones []string) {
	if len(phones) == 0 {
		return
	}
	r.Phones = UniqueStrings(append(r.Phones, phones...))
}

// AddSocialMedia appends social media links and re-applies uniqueness.
func (r *Record) AddSocialMedia(links []string) {
	if len(links) == 0 {
		return
	}
	r.SocialMedia = UniqueStrings(append(r.SocialMedia, links...))
}

// AddAddresses appends addresses and re-applies uniqueness.
func (r *Record) AddAddresses(addresses []string) {
	if len(addresses) == 0 {
		return
	}
	r.Addresses = UniqueStrings(append(r.Addresses, addresses...))
}

// AddPageTypes appends page types and re-applies uniqueness.
func (r *Record) AddPageTypes(pageTypes []string) {
	if len(pageTypes) == 0 {
		return
	}
	r.PageTypes = UniqueStrings(append(r.PageTypes, pageTypes...))
}

// AddURLs appends source page URLs and re-applies uniqueness.
func (r *Record) AddURLs(urls []string) {
	if len(urls) == 0 {
		return
	}
	r.URLs = UniqueStrings(append(r.URLs, urls...))
}

// MergeWith combines this record with another record for the same domain
// and returns a new Record. Neither input is mutated, so a merge can be
// retried safely; repeating the same merge yields the same field sets.
func (r *Record) MergeWith(other *Record) (*Record, error) {
	if r.Domain != other.Domain {
		return nil, fmt.Errorf("%w: %s != %s", ErrDomainMismatch, r.Domain, other.Domain)
	}

	merged := &Record{Domain: r.Domain}
	merged.AddCompanyNames(concat(r.CompanyNames, other.CompanyNames))
	merged.AddPhones(concat(r.Phones, other.Phones))
	merged.AddSocialMedia(concat(r.SocialMedia, other.SocialMedia))
	merged.AddAddresses(concat(r.Addresses, other.Addresses))
	merged.AddPageTypes(concat(r.PageTypes, other.PageTypes))
	merged.AddURLs(concat(r.URLs, other.URLs))

	return merged, nil
}

// Document projects the Record to its Elasticsearch document form. Only
// non-empty collections are emitted; the domain is always present. Readers
// of stored documents treat an absent field the same as an empty one.
func (r *Record) Document() map[string]any {
	doc := map[string]any{"domain": r.Domain}

	if len(r.CompanyNames) > 0 {
		doc["company_names"] = r.CompanyNames
	}
	if len(r.Phones) > 0 {
		doc["phones"] = r.Phones
	}
	if len(r.SocialMedia) > 0 {
		doc["social_media"] = r.SocialMedia
	}
	if len(r.Addresses) > 0 {
		doc["addresses"] = r.Addresses
	}
	if len(r.PageTypes) > 0 {
		doc["page_types"] = r.PageTypes
	}
	if len(r.URLs) > 0 {
		doc["urls"] = r.URLs
	}

	return doc
}

// FromDocument reconstructs a Record from a stored document. The domain
// argument wins over any domain field in the document. Absent collection
// fields decode to empty collections.
func FromDocument(doc map[string]any, domain string) (*Record, error) {
	record, err := NewRecord(domain)
	if err != nil {
		return nil, err
	}

	var stored Record
	if decodeErr := mapstructure.WeakDecode(doc, &stored); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode stored document: %w", decodeErr)
	}

	record.AddCompanyNames(stored.CompanyNames)
	record.AddPhones(stored.Phones)
	record.AddSocialMedia(stored.SocialMedia)
	record.AddAddresses(stored.Addresses)
	record.AddPageTypes(stored.PageTypes)
	record.AddURLs(stored.URLs)

	return record, nil
}

// FromCSVRow creates a Record from one tabular input row. The row must
// carry a non-empty domain; commercial name, legal name and the
// pipe-delimited all-available-names column are consolidated into
// CompanyNames.
func FromCSVRow(row map[string]string) (*Record, error) {
	record, err := NewRecord(row["domain"])
	if err != nil {
		return nil, err
	}

	if name := row["company_commercial_name"]; name != "" {
		record.AddCompanyNames([]string{name})
	}
	if name := row["company_legal_name"]; name != "" {
		record.AddCompanyNames([]string{name})
	}
	if names := row["company_all_available_names"]; names != "" {
		record.AddCompanyNamesPipeSeparated(names)
	}

	return record, nil
}

// FromPageRecord creates a Record from one scraped-page record. Singular
// scalar fields map into their plural collections with one value each.
func FromPageRecord(pr *PageRecord) (*Record, error) {
	record, err := NewRecord(pr.Domain)
	if err != nil {
		return nil, err
	}

	if pr.Phone != "" {
		record.AddPhones([]string{pr.Phone})
	}
	if len(pr.SocialMedia) > 0 {
		record.AddSocialMedia(pr.SocialMedia)
	}
	if pr.Address != "" {
		record.AddAddresses([]string{pr.Address})
	}
	if pr.PageType != "" {
		record.AddPageTypes([]string{pr.PageType})
	}
	if pr.URL != "" {
		record.AddURLs([]string{pr.URL})
	}

	return record, nil
}

// concat returns a new slice holding a followed by b.
func concat(a, b []string) []string {
	combined := make([]string, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	return combined
}
