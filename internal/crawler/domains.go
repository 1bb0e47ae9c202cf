package crawler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/jonesrussell/companyfinder/internal/logger"
)

// domainPattern is a simple hostname check: dot-separated labels of at
// most 63 characters, letters-only TLD of at least two characters.
var domainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// IsValidDomain reports whether a string looks like a crawlable domain.
func IsValidDomain(domain string) bool {
	return domainPattern.MatchString(domain)
}

// DomainLoader reads crawl targets from a CSV file with a "domain"
// column. Invalid rows are counted and logged, never fatal.
type DomainLoader struct {
	logger       logger.Interface
	invalidCount int
}

// NewDomainLoader creates a domain loader.
func NewDomainLoader(log logger.Interface) *DomainLoader {
	return &DomainLoader{logger: log}
}

// InvalidCount returns the number of rows rejected by the last load.
func (l *DomainLoader) InvalidCount() int {
	return l.invalidCount
}

// LoadDomains reads and validates domains from the CSV file at path.
func (l *DomainLoader) LoadDomains(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open domains file: %w", err)
	}
	defer f.Close()

	return l.parse(f)
}

func (l *DomainLoader) parse(r io.Reader) ([]string, error) {
	l.invalidCount = 0

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read domains header: %w", err)
	}

	domainCol := -1
	for idx, name := range header {
		if strings.TrimSpace(name) == "domain" {
			domainCol = idx
			break
		}
	}
	if domainCol < 0 {
		return nil, errors.New("domains file has no 'domain' column")
	}

	var domains []string
	for {
		fields, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read domains row: %w", readErr)
		}
		if domainCol >= len(fields) {
			continue
		}

		domain := strings.TrimSpace(fields[domainCol])
		if !IsValidDomain(domain) {
			l.invalidCount++
			l.logger.Warn("Invalid domain", "domain", domain)
			continue
		}
		domains = append(domains, domain)
	}

	l.logger.Info("Loaded domains",
		"valid", len(domains),
		"invalid", l.invalidCount)
	return domains, nil
}
