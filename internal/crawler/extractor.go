package crawler

import (
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// PageData is the company data extracted from a single page.
type PageData struct {
	URL         string
	Name        string
	Phone       string
	SocialMedia []string
	Address     string
}

// Phone formats matched in page text, most specific first.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,3}\s*\(\d{3}\)\s*\d{3}-\d{4}`), // +1 (555) 123-4567
	regexp.MustCompile(`\+\d{1,3}\s*\d{3}\s*\d{3}\s*\d{4}`),   // +1 555 123 4567
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}`),             // (555) 123-4567
	regexp.MustCompile(`\d{3}-\d{3}-\d{4}`),                   // 555-123-4567
}

// titleSuffixPattern strips trailing " - Home" style segments from page titles.
var titleSuffixPattern = regexp.MustCompile(`\s*-\s*.*$`)

// usAddressPattern is a simple US street address match.
var usAddressPattern = regexp.MustCompile(`\d+\s+[\w\s]+,\s+[\w\s]+,\s+[A-Z]{2}\s+\d{5}`)

var digitPattern = regexp.MustCompile(`\d`)

// socialMediaDomains are the hosts recognized as social profiles.
var socialMediaDomains = []string{
	"facebook.com",
	"twitter.com",
	"linkedin.com",
	"instagram.com",
	"youtube.com",
	"pinterest.com",
}

// Extractor pulls company data out of parsed pages. Extracted results
// are cached per URL; the cache belongs to this extractor instance, so
// each crawl session owns its own state.
type Extractor struct {
	mu        sync.Mutex
	extracted map[string]*PageData
}

// NewExtractor creates an extractor with an empty cache.
func NewExtractor() *Extractor {
	return &Extractor{
		extracted: make(map[string]*PageData),
	}
}

// Extract pulls company data from the page at pageURL and caches it.
func (e *Extractor) Extract(pageURL string, doc *goquery.Document) *PageData {
	data := &PageData{
		URL:         pageURL,
		Name:        extractCompanyName(doc),
		Phone:       extractPhone(doc),
		SocialMedia: extractSocialMedia(doc),
		Address:     extractAddress(doc),
	}

	e.mu.Lock()
	e.extracted[pageURL] = data
	e.mu.Unlock()

	return data
}

// HasData reports whether a URL has already been extracted.
func (e *Extractor) HasData(pageURL string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.extracted[pageURL]
	return ok
}

// extractCompanyName reads the page title, stripping everything after a
// dash separator, and falls back to the first h1.
func extractCompanyName(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title != "" {
		return titleSuffixPattern.ReplaceAllString(title, "")
	}

	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractPhone scans the page text for the first recognizable phone number.
func extractPhone(doc *goquery.Document) string {
	text := doc.Text()
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

// extractSocialMedia collects link targets whose host is a known social
// network.
func extractSocialMedia(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if IsSocialMediaURL(href) {
			links = append(links, href)
		}
	})
	return links
}

// IsSocialMediaURL reports whether a link points at a known social
// network, ignoring a leading "www.".
func IsSocialMediaURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Host)
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return false
	}

	for _, domain := range socialMediaDomains {
		if strings.Contains(host, domain) {
			return true
		}
	}
	return false
}

// extractAddress prefers an address-classed container, falling back to
// a US street address pattern over the page text.
func extractAddress(doc *goquery.Document) string {
	container := doc.Find(`div[class*="address"]`).First()
	if container.Length() > 0 {
		if address := strings.Join(strings.Fields(container.Text()), " "); address != "" {
			return address
		}
	}

	return usAddressPattern.FindString(doc.Text())
}

// NormalizePhoneE164 converts a matched phone number into E.164 form,
// assuming US for bare ten-digit numbers. Anything shorter is returned
// unchanged.
func NormalizePhoneE164(phone string) string {
	digits := strings.Join(digitPattern.FindAllString(phone, -1), "")

	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) > 10:
		return "+" + digits
	default:
		return phone
	}
}
