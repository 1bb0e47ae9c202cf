// Package config provides configuration management for the companyfinder
// application. It handles loading, validation, and access to configuration
// values from YAML files and environment variables via Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jonesrussell/companyfinder/internal/config/crawler"
	"github.com/jonesrussell/companyfinder/internal/config/elasticsearch"
	"github.com/jonesrussell/companyfinder/internal/config/server"
)

// Interface defines the interface for configuration management.
type Interface interface {
	// GetServerConfig returns the HTTP server configuration.
	GetServerConfig() *server.Config
	// GetCrawlerConfig returns the crawler configuration.
	GetCrawlerConfig() *crawler.Config
	// GetElasticsearchConfig returns the Elasticsearch configuration.
	GetElasticsearchConfig() *elasticsearch.Config
	// Validate validates the configuration.
	Validate() error
}

// Ensure Config implements Interface
var _ Interface = (*Config)(nil)

// Config represents the application configuration.
type Config struct {
	// Server holds HTTP server configuration
	Server *server.Config `mapstructure:"server" yaml:"server"`
	// Crawler holds crawler configuration
	Crawler *crawler.Config `mapstructure:"crawler" yaml:"crawler"`
	// Elasticsearch holds Elasticsearch configuration
	Elasticsearch *elasticsearch.Config `mapstructure:"elasticsearch" yaml:"elasticsearch"`
}

// GetServerConfig returns the HTTP server configuration.
func (c *Config) GetServerConfig() *server.Config {
	return c.Server
}

// GetCrawlerConfig returns the crawler configuration.
func (c *Config) GetCrawlerConfig() *crawler.Config {
	return c.Crawler
}

// GetElasticsearchConfig returns the Elasticsearch configuration.
func (c *Config) GetElasticsearchConfig() *elasticsearch.Config {
	return c.Elasticsearch
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Crawler.Validate(); err != nil {
		return fmt.Errorf("crawler: %w", err)
	}
	if err := c.Elasticsearch.Validate(); err != nil {
		return fmt.Errorf("elasticsearch: %w", err)
	}
	return nil
}

// LoadConfig unmarshals the Viper state into a Config. InitializeViper must
// have been called first.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyDefaults initializes nil sub-configs with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server == nil {
		cfg.Server = server.NewConfig()
	}
	if cfg.Crawler == nil {
		cfg.Crawler = crawler.NewConfig()
	}
	if cfg.Elasticsearch == nil {
		cfg.Elasticsearch = elasticsearch.NewConfig()
	}
}
