// Package config loads the harvester configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration validation errors.
var (
	ErrNoKeywords       = errors.New("at least one keyword is required")
	ErrEmptyKeyword     = errors.New("keywords must not be blank")
	ErrMissingStorePath = errors.New("store.path is required")
	ErrInvalidTimeout   = errors.New("feed.timeout_sec must be at least 1")
	ErrInvalidLogLevel  = errors.New("logging.level must be one of: debug, info, warn, error")
)

const defaultFeedBaseURL = "https://news.google.com/rss/search"

// Config is the complete harvester configuration.
type Config struct {
	Keywords   []string         `mapstructure:"keywords"`
	Store      StoreConfig      `mapstructure:"store"`
	Feed       FeedConfig       `mapstructure:"feed"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Publishers PublishersConfig `mapstructure:"publishers"`
	History    HistoryConfig    `mapstructure:"history"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// StoreConfig locates the persisted article collection.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// FeedConfig controls the feed collaborator.
type FeedConfig struct {
	BaseURL    string            `mapstructure:"base_url"`
	TimeoutSec int               `mapstructure:"timeout_sec"`
	Headers    map[string]string `mapstructure:"headers"`
}

// EnrichmentConfig controls the optional source-name enrichment pass.
type EnrichmentConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	Workers        int  `mapstructure:"workers"`
	RequestDelayMs int  `mapstructure:"request_delay_ms"`
	TimeoutSec     int  `mapstructure:"timeout_sec"`
}

// PublishersConfig locates the optional publishers declaration file.
type PublishersConfig struct {
	File string `mapstructure:"file"`
}

// HistoryConfig locates the optional run-history database.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads the YAML config at path, overlaying environment variables from a
// .env file when one is present next to the process.
func Load(path string) (*Config, error) {
	// Missing .env is fine; values may come from the real environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("NEWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.path", "news.json")
	v.SetDefault("feed.base_url", defaultFeedBaseURL)
	v.SetDefault("feed.timeout_sec", 15)
	v.SetDefault("enrichment.enabled", false)
	v.SetDefault("enrichment.workers", 4)
	v.SetDefault("enrichment.request_delay_ms", 0)
	v.SetDefault("enrichment.timeout_sec", 10)
	v.SetDefault("logging.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if len(c.Keywords) == 0 {
		return ErrNoKeywords
	}
	for i, kw := range c.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: keywords[%d]", ErrEmptyKeyword, i)
		}
	}

	if strings.TrimSpace(c.Store.Path) == "" {
		return ErrMissingStorePath
	}
	if c.Feed.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	if c.Enrichment.Workers < 1 {
		c.Enrichment.Workers = 1
	}
	return nil
}

// FeedTimeout returns the feed HTTP timeout as a duration.
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.Feed.TimeoutSec) * time.Second
}

// EnrichmentDelay returns the per-request delay for the enrichment pass.
func (c *Config) EnrichmentDelay() time.Duration {
	return time.Duration(c.Enrichment.RequestDelayMs) * time.Millisecond
}

// EnrichmentTimeout returns the HTTP timeout for the enrichment pass.
func (c *Config) EnrichmentTimeout() time.Duration {
	return time.Duration(c.Enrichment.TimeoutSec) * time.Second
}
