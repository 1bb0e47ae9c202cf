package crawler

import (
	"sync"

	"github.com/jonesrussell/companyfinder/internal/logger"
)

// Stats tracks crawl progress and per-field extraction counts.
type Stats struct {
	mu           sync.Mutex
	pagesCrawled int
	failures     int
	withName     int
	withPhone    int
	withSocial   int
	withAddress  int
	contactPages int
	domains      map[string]struct{}
}

// NewStats creates empty crawl statistics.
func NewStats() *Stats {
	return &Stats{domains: make(map[string]struct{})}
}

// RecordPage accounts one scraped page.
func (s *Stats) RecordPage(record *PageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pagesCrawled++
	s.domains[record.Domain] = struct{}{}
	if record.Name != "" {
		s.withName++
	}
	if record.Phone != "" {
		s.withPhone++
	}
	if len(record.SocialMedia) > 0 {
		s.withSocial++
	}
	if record.Address != "" {
		s.withAddress++
	}
	if record.PageType == "contact" {
		s.contactPages++
	}
}

// IncrementFailures accounts one failed request.
func (s *Stats) IncrementFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
}

// PagesCrawled returns the number of pages scraped.
func (s *Stats) PagesCrawled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagesCrawled
}

// Failures returns the number of failed requests.
func (s *Stats) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// Domains returns how many distinct domains produced at least one page.
func (s *Stats) Domains() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.domains)
}

// LogSummary emits the end-of-crawl summary.
func (s *Stats) LogSummary(log logger.Interface) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info("Crawl summary",
		"pages_crawled", s.pagesCrawled,
		"failures", s.failures,
		"domains_scraped", len(s.domains),
		"pages_with_name", s.withName,
		"pages_with_phone", s.withPhone,
		"pages_with_social", s.withSocial,
		"pages_with_address", s.withAddress,
		"contact_pages", s.contactPages)
}
