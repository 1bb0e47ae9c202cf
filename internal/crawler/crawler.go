// Package crawler visits company websites and extracts contact data
// into page records ready for ingestion.
package crawler

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	colly "github.com/gocolly/colly/v2"
	"github.com/google/uuid"

	crawlerconfig "github.com/jonesrussell/companyfinder/internal/config/crawler"
	"github.com/jonesrussell/companyfinder/internal/logger"
)

// RandomDelayDivisor is used to calculate random delay from the rate limit.
const RandomDelayDivisor = 2

// PageRecord is one scraped page in the output file. The field set
// matches the scraped-data import contract; name is carried for
// statistics and ignored by ingestion.
type PageRecord struct {
	Domain      string   `json:"domain"`
	URL         string   `json:"url"`
	PageType    string   `json:"page_type"`
	Name        string   `json:"name,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	SocialMedia []string `json:"social_media,omitempty"`
	Address     string   `json:"address,omitempty"`
}

// Crawler drives a colly collector over a set of company domains.
type Crawler struct {
	cfg       *crawlerconfig.Config
	logger    logger.Interface
	collector *colly.Collector
	extractor *Extractor
	stats     *Stats

	mu      sync.Mutex
	results []PageRecord
}

// New creates a crawler for the given configuration. Each crawler owns
// its own extraction cache and result set.
func New(cfg *crawlerconfig.Config, log logger.Interface) *Crawler {
	return &Crawler{
		cfg:       cfg,
		logger:    log,
		extractor: NewExtractor(),
		stats:     NewStats(),
	}
}

// Stats returns the running crawl statistics.
func (c *Crawler) Stats() *Stats {
	return c.stats
}

// Results returns the records scraped so far.
func (c *Crawler) Results() []PageRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]PageRecord, len(c.results))
	copy(out, c.results)
	return out
}

// Crawl visits every domain and follows contact and about links up to
// the configured depth. It blocks until all queued requests finish.
func (c *Crawler) Crawl(ctx context.Context, domains []string) error {
	if len(domains) == 0 {
		return errors.New("no domains to crawl")
	}

	jobID := uuid.New().String()
	log := c.logger.With("job_id", jobID)
	log.Info("Starting crawl",
		"domains", len(domains),
		"max_depth", c.cfg.MaxDepth)

	if err := c.setupCollector(ctx, log, domains); err != nil {
		return err
	}

	for _, domain := range domains {
		if visitErr := c.collector.Visit("https://" + domain); visitErr != nil {
			log.Warn("Failed to queue domain", "domain", domain, "error", visitErr)
			c.stats.IncrementFailures()
		}
	}

	c.collector.Wait()

	log.Info("Crawl finished",
		"pages_crawled", c.stats.PagesCrawled(),
		"failures", c.stats.Failures())
	return nil
}

// CrawlURL visits a single target URL with no domain restriction,
// still following contact and about links up to the configured depth.
func (c *Crawler) CrawlURL(ctx context.Context, target string) error {
	jobID := uuid.New().String()
	log := c.logger.With("job_id", jobID)
	log.Info("Starting crawl", "target", target)

	if err := c.setupCollector(ctx, log, nil); err != nil {
		return err
	}

	if err := c.collector.Visit(target); err != nil {
		return fmt.Errorf("failed to visit %s: %w", target, err)
	}
	c.collector.Wait()

	log.Info("Crawl finished",
		"pages_crawled", c.stats.PagesCrawled(),
		"failures", c.stats.Failures())
	return nil
}

// setupCollector configures the collector, its rate limit and callbacks.
func (c *Crawler) setupCollector(ctx context.Context, log logger.Interface, domains []string) error {
	opts := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.MaxDepth(c.cfg.MaxDepth),
		colly.Async(true),
		colly.UserAgent(c.cfg.UserAgent),
		colly.AllowedDomains(allowedHosts(domains)...),
	}
	if !c.cfg.RespectRobotsTxt {
		opts = append(opts, colly.IgnoreRobotsTxt())
	}

	c.collector = colly.NewCollector(opts...)
	c.collector.SetRequestTimeout(c.cfg.RequestTimeout)
	c.collector.WithTransport(&http.Transport{
		TLSClientConfig: &tls.Config{
			//nolint:gosec // InsecureSkipVerify is configurable for development environments
			InsecureSkipVerify: c.cfg.InsecureSkipVerify,
		},
	})

	rateLimit, err := crawlerconfig.ParseRateLimit(c.cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", c.cfg.RateLimit, err)
	}
	if limitErr := c.collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       rateLimit,
		RandomDelay: rateLimit / RandomDelayDivisor,
		Parallelism: c.cfg.Parallelism,
	}); limitErr != nil {
		return fmt.Errorf("failed to set rate limit: %w", limitErr)
	}

	c.setupCallbacks(ctx, log)
	return nil
}

// setupCallbacks wires response, link-following and error handling.
func (c *Crawler) setupCallbacks(ctx context.Context, log logger.Interface) {
	c.collector.OnRequest(func(r *colly.Request) {
		select {
		case <-ctx.Done():
			r.Abort()
		default:
			log.Debug("Visiting URL", "url", r.URL.String())
		}
	})

	// Abort non-HTML responses before the body downloads
	c.collector.OnResponseHeaders(func(r *colly.Response) {
		contentType := strings.ToLower(strings.TrimSpace(r.Headers.Get("Content-Type")))
		if contentType != "" && !strings.Contains(contentType, "text/html") &&
			!strings.HasPrefix(contentType, "application/xhtml+xml") {
			r.Request.Abort()
		}
	})

	c.collector.OnResponse(func(r *colly.Response) {
		c.processResponse(log, r)
	})

	c.collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		href := e.Attr("href")
		lower := strings.ToLower(href)
		if (strings.Contains(lower, "contact") || strings.Contains(lower, "about")) &&
			!strings.HasPrefix(href, "#") {
			if visitErr := e.Request.Visit(href); visitErr != nil {
				c.logVisitError(log, href, visitErr)
			}
		}
	})

	c.collector.OnError(func(r *colly.Response, visitErr error) {
		if isExpectedCrawlError(visitErr) {
			log.Debug("Expected error while crawling",
				"url", r.Request.URL.String(),
				"error", visitErr)
			return
		}
		log.Error("Crawl error",
			"url", r.Request.URL.String(),
			"status", r.StatusCode,
			"error", visitErr)
		c.stats.IncrementFailures()
	})
}

// processResponse extracts company data from an HTML response and
// records the page result.
func (c *Crawler) processResponse(log logger.Interface, r *colly.Response) {
	pageURL := r.Request.URL.String()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
	if err != nil {
		log.Error("Failed to parse HTML", "url", pageURL, "error", err)
		c.stats.IncrementFailures()
		return
	}

	data := c.extractor.Extract(pageURL, doc)

	record := PageRecord{
		Domain:      strings.TrimPrefix(strings.ToLower(r.Request.URL.Hostname()), "www."),
		URL:         pageURL,
		PageType:    ClassifyPageType(r.Request.URL.Path),
		Name:        data.Name,
		Phone:       data.Phone,
		SocialMedia: data.SocialMedia,
		Address:     data.Address,
	}

	c.mu.Lock()
	c.results = append(c.results, record)
	c.mu.Unlock()

	c.stats.RecordPage(&record)

	log.Debug("Page processed",
		"url", pageURL,
		"page_type", record.PageType,
		"has_phone", record.Phone != "")
}

// logVisitError keeps already-visited and max-depth noise at debug.
func (c *Crawler) logVisitError(log logger.Interface, href string, visitErr error) {
	if isExpectedCrawlError(visitErr) {
		log.Debug("Skipping link", "href", href, "error", visitErr)
		return
	}
	log.Warn("Failed to follow link", "href", href, "error", visitErr)
}

// isExpectedCrawlError returns true for colly's routine skip errors.
func isExpectedCrawlError(visitErr error) bool {
	var alreadyVisited *colly.AlreadyVisitedError
	if errors.As(visitErr, &alreadyVisited) ||
		errors.Is(visitErr, colly.ErrMaxDepth) ||
		errors.Is(visitErr, colly.ErrForbiddenDomain) ||
		errors.Is(visitErr, colly.ErrMissingURL) {
		return true
	}
	msg := visitErr.Error()
	return strings.Contains(msg, "already visited") ||
		strings.Contains(msg, "Max depth") ||
		strings.Contains(msg, "Forbidden domain")
}

// ClassifyPageType maps a URL path to home, contact, about or other.
func ClassifyPageType(path string) string {
	trimmed := strings.Trim(strings.ToLower(path), "/")
	switch {
	case trimmed == "":
		return "home"
	case strings.Contains(trimmed, "contact"):
		return "contact"
	case strings.Contains(trimmed, "about"):
		return "about"
	default:
		return "other"
	}
}

// allowedHosts expands domains with their www. variants so redirects
// between the two stay in scope.
func allowedHosts(domains []string) []string {
	hosts := make([]string, 0, len(domains)*2)
	for _, domain := range domains {
		hosts = append(hosts, domain)
		if !strings.HasPrefix(domain, "www.") {
			hosts = append(hosts, "www."+domain)
		}
	}
	return hosts
}
