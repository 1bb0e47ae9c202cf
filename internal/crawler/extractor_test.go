package crawler_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/companyfinder/internal/crawler"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtract_FullPage(t *testing.T) {
	html := `<html>
		<head><title>Acme Widgets - Home</title></head>
		<body>
			<h1>Welcome</h1>
			<p>Call us at (555) 123-4567 today.</p>
			<div class="footer-address">123 Main Street, Springfield, IL 62704</div>
			<a href="https://www.facebook.com/acmewidgets">Facebook</a>
			<a href="https://twitter.com/acmewidgets">Twitter</a>
			<a href="/products">Products</a>
		</body>
	</html>`

	e := crawler.NewExtractor()
	data := e.Extract("https://acme.com/", parseHTML(t, html))

	assert.Equal(t, "Acme Widgets", data.Name)
	assert.Equal(t, "(555) 123-4567", data.Phone)
	assert.ElementsMatch(t, []string{
		"https://www.facebook.com/acmewidgets",
		"https://twitter.com/acmewidgets",
	}, data.SocialMedia)
	assert.Equal(t, "123 Main Street, Springfield, IL 62704", data.Address)
	assert.True(t, e.HasData("https://acme.com/"))
}

func TestExtractCompanyName_FallsBackToH1(t *testing.T) {
	html := `<html><body><h1>  Acme Widgets  </h1></body></html>`

	e := crawler.NewExtractor()
	data := e.Extract("https://acme.com/", parseHTML(t, html))
	assert.Equal(t, "Acme Widgets", data.Name)
}

func TestExtractPhone_Formats(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"parenthesized", "Reach us: (555) 123-4567", "(555) 123-4567"},
		{"dashed", "Tel 555-123-4567", "555-123-4567"},
		{"international parenthesized", "Phone: +1 (555) 123-4567", "+1 (555) 123-4567"},
		{"international spaced", "Phone: +1 555 123 4567", "+1 555 123 4567"},
		{"none", "No numbers here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := "<html><body><p>" + tt.text + "</p></body></html>"
			data := crawler.NewExtractor().Extract("https://x.com/", parseHTML(t, html))
			assert.Equal(t, tt.expected, data.Phone)
		})
	}
}

func TestExtractAddress_PatternFallback(t *testing.T) {
	html := `<html><body><p>Visit us at 42 Elm Street, Portland, OR 97201 any time.</p></body></html>`

	data := crawler.NewExtractor().Extract("https://x.com/", parseHTML(t, html))
	assert.Equal(t, "42 Elm Street, Portland, OR 97201", data.Address)
}

func TestIsSocialMediaURL(t *testing.T) {
	assert.True(t, crawler.IsSocialMediaURL("https://www.facebook.com/acme"))
	assert.True(t, crawler.IsSocialMediaURL("https://linkedin.com/company/acme"))
	assert.False(t, crawler.IsSocialMediaURL("https://acme.com/about"))
	assert.False(t, crawler.IsSocialMediaURL("/relative/path"))
	assert.False(t, crawler.IsSocialMediaURL("#fragment"))
}

func TestNormalizePhoneE164(t *testing.T) {
	assert.Equal(t, "+15551234567", crawler.NormalizePhoneE164("(555) 123-4567"))
	assert.Equal(t, "+15551234567", crawler.NormalizePhoneE164("+1 555 123 4567"))
	assert.Equal(t, "555-1001", crawler.NormalizePhoneE164("555-1001"))
}

func TestClassifyPageType(t *testing.T) {
	assert.Equal(t, "home", crawler.ClassifyPageType("/"))
	assert.Equal(t, "home", crawler.ClassifyPageType(""))
	assert.Equal(t, "contact", crawler.ClassifyPageType("/contact-us"))
	assert.Equal(t, "about", crawler.ClassifyPageType("/about/team"))
	assert.Equal(t, "other", crawler.ClassifyPageType("/products"))
}
