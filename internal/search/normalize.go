package search

import (
	"net/url"
	"strings"
)

// NormalizePhone strips a phone number down to its digits.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanURL reduces a URL to its bare lowercase host: protocol and a
// leading "www." are stripped, a missing scheme is tolerated. Anything
// that cannot be parsed falls back to the trimmed input.
func CleanURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	withScheme := raw
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		withScheme = "http://" + raw
	}

	parsed, err := url.Parse(withScheme)
	if err != nil || parsed.Host == "" {
		return trimmed
	}

	host := strings.ToLower(parsed.Host)
	host = strings.TrimPrefix(host, "www.")
	return host
}
