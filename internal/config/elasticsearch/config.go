// Package elasticsearch provides Elasticsearch configuration management.
package elasticsearch

import (
	"fmt"
	"strings"
	"time"
)

// Default configuration values
const (
	DefaultAddresses    = "http://127.0.0.1:9200"
	DefaultIndexName    = "companies"
	DefaultRetryEnabled = true
	DefaultInitialWait  = 1 * time.Second
	DefaultMaxWait      = 30 * time.Second
	DefaultMaxRetries   = 3
	MinPasswordLength   = 8
	// DefaultDiscoverNodes is false to prevent node discovery on single-node setups.
	DefaultDiscoverNodes = false
)

// Error codes for configuration validation
const (
	ErrCodeEmptyAddresses = "EMPTY_ADDRESSES"
	ErrCodeEmptyIndexName = "EMPTY_INDEX_NAME"
	ErrCodeInvalidFormat  = "INVALID_FORMAT"
	ErrCodeWeakPassword   = "WEAK_PASSWORD"
	ErrCodeInvalidRetry   = "INVALID_RETRY"
)

// ConfigError represents a configuration validation error
type ConfigError struct {
	Code    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// RetryConfig holds client retry settings.
type RetryConfig struct {
	Enabled     bool          `mapstructure:"enabled"      yaml:"enabled"`
	InitialWait time.Duration `mapstructure:"initial_wait" yaml:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"     yaml:"max_wait"`
	MaxRetries  int           `mapstructure:"max_retries"  yaml:"max_retries"`
}

// Config represents Elasticsearch configuration settings.
type Config struct {
	// Addresses is a list of Elasticsearch node addresses.
	Addresses []string `mapstructure:"addresses" yaml:"addresses"`
	// APIKey is the base64 encoded API key for authentication ("id:key").
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// Username is the username for authentication.
	Username string `mapstructure:"username" yaml:"username"`
	// Password is the password for authentication (minimum 8 characters).
	Password string `mapstructure:"password" yaml:"password"`
	// IndexName is the name of the companies index.
	IndexName string `mapstructure:"index_name" yaml:"index_name"`
	// Retry contains retry configuration.
	Retry RetryConfig `mapstructure:"retry" yaml:"retry"`
	// DiscoverNodes enables/disables node discovery.
	DiscoverNodes bool `mapstructure:"discover_nodes" yaml:"discover_nodes"`
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// validateRequiredFields validates required configuration fields
func (c *Config) validateRequiredFields() error {
	if len(c.Addresses) == 0 {
		return &ConfigError{
			Code:    ErrCodeEmptyAddresses,
			Message: "at least one address is required",
		}
	}

	if c.IndexName == "" {
		return &ConfigError{
			Code:    ErrCodeEmptyIndexName,
			Message: "index name is required",
		}
	}

	return nil
}

// validatePassword validates the password configuration
func (c *Config) validatePassword() error {
	if c.Password != "" && len(c.Password) < MinPasswordLength {
		return &ConfigError{
			Code:    ErrCodeWeakPassword,
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// validateRetry validates the retry configuration
func (c *Config) validateRetry() error {
	if c.Retry.Enabled {
		if c.Retry.InitialWait < 0 || c.Retry.MaxWait < 0 || c.Retry.MaxRetries < 0 {
			return &ConfigError{
				Code:    ErrCodeInvalidRetry,
				Message: "retry configuration must be non-negative",
			}
		}
	}
	return nil
}

// validateAPIKeyFormat validates the API key format
func (c *Config) validateAPIKeyFormat() error {
	if c.APIKey != "" {
		parts := strings.Split(c.APIKey, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return &ConfigError{
				Code:    ErrCodeInvalidFormat,
				Message: "API key must be in the format 'id:key'",
			}
		}
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c == nil {
		return &ConfigError{
			Code:    ErrCodeEmptyAddresses,
			Message: "configuration is required",
		}
	}

	if err := c.validateRequiredFields(); err != nil {
		return err
	}
	if err := c.validatePassword(); err != nil {
		return err
	}
	if err := c.validateRetry(); err != nil {
		return err
	}
	return c.validateAPIKeyFormat()
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Addresses: []string{DefaultAddresses},
		IndexName: DefaultIndexName,
		Retry: RetryConfig{
			Enabled:     DefaultRetryEnabled,
			InitialWait: DefaultInitialWait,
			MaxWait:     DefaultMaxWait,
			MaxRetries:  DefaultMaxRetries,
		},
		DiscoverNodes: DefaultDiscoverNodes,
	}
}

// ParseAddressesFromString parses comma-separated addresses from a string.
func ParseAddressesFromString(addrStr string) []string {
	addresses := strings.Split(addrStr, ",")
	filtered := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			filtered = append(filtered, addr)
		}
	}
	return filtered
}
