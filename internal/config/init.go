package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonesrussell/companyfinder/internal/config/crawler"
	"github.com/jonesrussell/companyfinder/internal/config/elasticsearch"
)

// InitializeViper initializes Viper configuration from environment
// variables and config files. Must be called before LoadConfig().
func InitializeViper(cfgFile string) error {
	loadEnvFile()
	setupViper(cfgFile)
	setDefaults()
	readConfigFile()

	if err := bindEnvironmentVariables(); err != nil {
		return fmt.Errorf("failed to bind environment variables: %w", err)
	}

	setupDevelopmentLogging()
	return nil
}

// loadEnvFile loads .env file (ignores error if file doesn't exist).
func loadEnvFile() {
	_ = godotenv.Load()
}

// setupViper configures Viper for environment variable and config file reading.
func setupViper(cfgFile string) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
}

// readConfigFile reads the config file (optional; defaults and env vars
// cover the missing-file case).
func readConfigFile() {
	_ = viper.ReadInConfig()
}

// bindEnvironmentVariables binds all environment variables to config keys.
func bindEnvironmentVariables() error {
	if err := bindAppEnvVars(); err != nil {
		return fmt.Errorf("failed to bind app env vars: %w", err)
	}
	if err := bindElasticsearchEnvVars(); err != nil {
		return fmt.Errorf("failed to bind elasticsearch env vars: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults - production safe
	viper.SetDefault("app", map[string]any{
		"name":        "companyfinder",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	// Logger defaults - production safe
	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"development":  false,
		"encoding":     "json",
		"output_paths": []string{"stdout"},
		"enable_color": false,
	})

	// Server defaults - production safe
	viper.SetDefault("server", map[string]any{
		"address":       ":8080",
		"read_timeout":  "15s",
		"write_timeout": "15s",
		"idle_timeout":  "60s",
	})

	// Elasticsearch defaults - production safe
	viper.SetDefault("elasticsearch", map[string]any{
		"addresses":  []string{elasticsearch.DefaultAddresses},
		"index_name": elasticsearch.DefaultIndexName,
		"retry": map[string]any{
			"enabled":      true,
			"initial_wait": "1s",
			"max_wait":     "30s",
			"max_retries":  elasticsearch.DefaultMaxRetries,
		},
		"discover_nodes": false,
	})

	// Crawler defaults - production safe
	viper.SetDefault("crawler", map[string]any{
		"max_depth":          crawler.DefaultMaxDepth,
		"parallelism":        crawler.DefaultParallelism,
		"rate_limit":         "2s",
		"request_timeout":    "30s",
		"user_agent":         crawler.DefaultUserAgent,
		"respect_robots_txt": true,
		"domains_file":       crawler.DefaultDomainsFile,
		"output_file":        crawler.DefaultOutputFile,
	})
}

// bindAppEnvVars binds application and logger environment variables to config keys.
func bindAppEnvVars() error {
	if err := viper.BindEnv("app.environment", "APP_ENV"); err != nil {
		return fmt.Errorf("failed to bind APP_ENV: %w", err)
	}
	if err := viper.BindEnv("app.debug", "APP_DEBUG"); err != nil {
		return fmt.Errorf("failed to bind APP_DEBUG: %w", err)
	}
	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.encoding", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	return nil
}

// bindElasticsearchEnvVars binds Elasticsearch environment variables to config keys.
func bindElasticsearchEnvVars() error {
	// Support both ELASTICSEARCH_HOSTS and ELASTICSEARCH_ADDRESSES, plus the
	// original deployment's ES_URI
	if err := viper.BindEnv("elasticsearch.addresses",
		"ELASTICSEARCH_HOSTS", "ELASTICSEARCH_ADDRESSES", "ES_URI"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch addresses: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.password",
		"ELASTIC_PASSWORD", "ELASTICSEARCH_PASSWORD"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch password: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.username", "ELASTICSEARCH_USERNAME"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch username: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.api_key", "ELASTICSEARCH_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch API key: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.index_name", "ELASTICSEARCH_INDEX_NAME"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch index name: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.insecure_skip_verify", "ELASTICSEARCH_SKIP_TLS"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch TLS skip verify: %w", err)
	}
	return nil
}

// setupDevelopmentLogging configures logging settings based on environment
// variables: APP_DEBUG controls level, APP_ENV=development controls formatting.
func setupDevelopmentLogging() {
	debugFlag := viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.enable_color", true)
		viper.Set("logger.encoding", "console")
	}
}
