// Package crawler provides crawler configuration management.
package crawler

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Default configuration values
const (
	DefaultMaxDepth       = 2
	DefaultParallelism    = 2
	DefaultRateLimit      = 2 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultUserAgent      = "companyfinder/1.0 (+https://github.com/jonesrussell/companyfinder)"
	DefaultDomainsFile    = "configs/companies-domains.csv"
	DefaultOutputFile     = "scraped-companies.json"
)

// Config represents crawler configuration settings.
type Config struct {
	// MaxDepth limits how deep link following goes from a start URL.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
	// Parallelism is the number of concurrent fetches per domain.
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism"`
	// RateLimit is the delay between requests to the same domain
	// (accepts "2s", "1m", or a bare number of seconds).
	RateLimit string `mapstructure:"rate_limit" yaml:"rate_limit"`
	// RequestTimeout bounds a single page fetch.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	// UserAgent is the User-Agent header sent with each request.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// RespectRobotsTxt toggles robots.txt compliance.
	RespectRobotsTxt bool `mapstructure:"respect_robots_txt" yaml:"respect_robots_txt"`
	// DomainsFile is the CSV file listing domains to crawl.
	DomainsFile string `mapstructure:"domains_file" yaml:"domains_file"`
	// OutputFile is the JSON file scraped page records are written to.
	OutputFile string `mapstructure:"output_file" yaml:"output_file"`
	// InsecureSkipVerify disables TLS certificate verification for fetches.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// ParseRateLimit parses a rate limit string. It accepts a duration string
// ("2s", "1m") or a bare number interpreted as seconds.
func ParseRateLimit(value string) (time.Duration, error) {
	if value == "" {
		return DefaultRateLimit, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, fmt.Errorf("invalid rate limit: %q", value)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.New("max depth must be non-negative")
	}
	if c.Parallelism <= 0 {
		return errors.New("parallelism must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if _, err := ParseRateLimit(c.RateLimit); err != nil {
		return err
	}
	return nil
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		MaxDepth:         DefaultMaxDepth,
		Parallelism:      DefaultParallelism,
		RateLimit:        DefaultRateLimit.String(),
		RequestTimeout:   DefaultRequestTimeout,
		UserAgent:        DefaultUserAgent,
		RespectRobotsTxt: true,
		DomainsFile:      DefaultDomainsFile,
		OutputFile:       DefaultOutputFile,
	}
}
