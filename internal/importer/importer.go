// Package importer loads company data from CSV and scraped-JSON files
// and upserts it into Elasticsearch, merging with any documents already
// stored for the same domains.
package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jonesrussell/companyfinder/internal/company"
	"github.com/jonesrussell/companyfinder/internal/logger"
	"github.com/jonesrussell/companyfinder/internal/storage"
)

// Store is the slice of the storage API the importer needs.
type Store interface {
	EnsureIndex(ctx context.Context) error
	GetCompany(ctx context.Context, domain string) (map[string]any, error)
	BulkUpsert(ctx context.Context, docs map[string]map[string]any) (int, error)
}

// Importer orchestrates file parsing and the read-merge-write upsert
// protocol against the company index.
type Importer struct {
	storage Store
	logger  logger.Interface
}

// New creates an importer backed by the given storage.
func New(s Store, log logger.Interface) *Importer {
	return &Importer{
		storage: s,
		logger:  log,
	}
}

// ImportCSV imports tabular company data. Rows without a domain are
// logged and skipped; the rest of the file is still processed. Returns
// the number of documents successfully written.
func (i *Importer) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	records, err := i.parseCSV(f)
	if err != nil {
		return 0, err
	}

	i.logger.Info("Parsed CSV file", "path", path, "records", len(records))
	return i.importRecords(ctx, records)
}

// parseCSV reads a header row then converts each data row into a Record.
func (i *Importer) parseCSV(r io.Reader) ([]*company.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var records []*company.Record
	line := 1
	for {
		fields, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", readErr)
		}
		line++

		row := make(map[string]string, len(header))
		for idx, name := range header {
			if idx < len(fields) {
				row[name] = fields[idx]
			}
		}

		record, rowErr := company.FromCSVRow(row)
		if rowErr != nil {
			if errors.Is(rowErr, company.ErrMissingDomain) {
				i.logger.Warn("Skipping CSV row without domain", "line", line)
				continue
			}
			return nil, fmt.Errorf("failed to parse CSV row %d: %w", line, rowErr)
		}
		records = append(records, record)
	}

	return records, nil
}

// ImportJSON imports scraped page records from a JSON array, collapsing
// them to one record per domain before the upsert. Returns the number of
// documents successfully written.
func (i *Importer) ImportJSON(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read JSON file: %w", err)
	}

	var pages []company.PageRecord
	if err := json.Unmarshal(data, &pages); err != nil {
		return 0, fmt.Errorf("failed to decode JSON file: %w", err)
	}

	byDomain := company.AggregateByDomain(pages)
	i.logger.Info("Aggregated scraped pages",
		"path", path,
		"pages", len(pages),
		"domains", len(byDomain))

	domains := make([]string, 0, len(byDomain))
	for domain := range byDomain {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	records := make([]*company.Record, 0, len(byDomain))
	for _, domain := range domains {
		records = append(records, byDomain[domain])
	}

	return i.importRecords(ctx, records)
}

// importRecords runs the upsert protocol: fetch any existing document
// per domain, merge the candidate into it, stage the projection, then
// write all staged documents in one bulk request. A fetch failure other
// than not-found is logged and treated as "no existing record" so the
// batch keeps moving. The read-merge-write sequence is not atomic across
// concurrent importers; the later bulk write wins for a contested domain.
func (i *Importer) importRecords(ctx context.Context, records []*company.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	if err := i.storage.EnsureIndex(ctx); err != nil {
		return 0, fmt.Errorf("failed to ensure index: %w", err)
	}

	staged := make(map[string]map[string]any, len(records))
	for _, candidate := range records {
		merged := candidate

		existing, err := i.storage.GetCompany(ctx, candidate.Domain)
		switch {
		case err == nil:
			prior, convErr := company.FromDocument(existing, candidate.Domain)
			if convErr != nil {
				i.logger.Warn("Failed to decode existing document, overwriting",
					"domain", candidate.Domain,
					"error", convErr)
				break
			}
			merged, err = prior.MergeWith(candidate)
			if err != nil {
				return 0, fmt.Errorf("failed to merge records for %s: %w", candidate.Domain, err)
			}
		case errors.Is(err, storage.ErrDocumentNotFound):
			// No prior record, use the candidate as-is.
		default:
			i.logger.Warn("Failed to fetch existing document, treating as new",
				"domain", candidate.Domain,
				"error", err)
		}

		staged[merged.Domain] = merged.Document()
	}

	count, err := i.storage.BulkUpsert(ctx, staged)
	if err != nil {
		return 0, fmt.Errorf("bulk upsert failed: %w", err)
	}

	i.logger.Info("Import completed",
		"candidates", len(records),
		"written", count)
	return count, nil
}
