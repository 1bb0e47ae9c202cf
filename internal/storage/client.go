// Package storage provides the Elasticsearch persistence layer for
// company records.
package storage

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/companyfinder/internal/config/elasticsearch"
	"github.com/jonesrussell/companyfinder/internal/logger"
)

// NewClient creates an Elasticsearch client from the given configuration
// and verifies connectivity with a ping. An unreachable cluster returns
// ErrStoreUnavailable immediately; there is no retry loop here beyond the
// transport-level retries configured below.
func NewClient(cfg *elasticsearch.Config, log logger.Interface) (*es.Client, error) {
	if cfg == nil {
		return nil, errors.New("elasticsearch configuration is required")
	}

	addresses := normalizeAddresses(cfg.Addresses)
	log.Debug("Connecting to Elasticsearch", "addresses", addresses)

	clientConfig := es.Config{
		Addresses:            addresses,
		Transport:            createTransport(cfg),
		DiscoverNodesOnStart: cfg.DiscoverNodes,
	}

	if cfg.APIKey != "" {
		clientConfig.APIKey = cfg.APIKey
	} else if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	if cfg.Retry.Enabled {
		clientConfig.RetryOnStatus = []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout}
		clientConfig.MaxRetries = cfg.Retry.MaxRetries
		clientConfig.RetryBackoff = func(attempt int) time.Duration {
			wait := cfg.Retry.InitialWait * time.Duration(1<<(attempt-1))
			if wait > cfg.Retry.MaxWait {
				wait = cfg.Retry.MaxWait
			}
			return wait
		}
	}

	client, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := client.Ping()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, res.String())
	}

	log.Info("Connected to Elasticsearch", "addresses", addresses)
	return client, nil
}

// createTransport creates an HTTP transport with TLS configuration.
func createTransport(cfg *elasticsearch.Config) *http.Transport {
	transport := &http.Transport{}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{
			//nolint:gosec // InsecureSkipVerify is configurable for development environments
			InsecureSkipVerify: true,
		}
	}
	return transport
}

// normalizeAddresses ensures every address carries a scheme. Bare
// host:port pairs from the environment default to http.
func normalizeAddresses(addresses []string) []string {
	normalized := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
			addr = "http://" + addr
		}
		normalized = append(normalized, strings.TrimSuffix(addr, "/"))
	}
	return normalized
}
