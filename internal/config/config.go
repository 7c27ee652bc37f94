// Package config loads and validates pipeline configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Profile ProfileConfig `mapstructure:"profile"`
	Crawl   CrawlConfig   `mapstructure:"crawl"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Store   StoreConfig   `mapstructure:"store"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// ProfileConfig governs keyword extraction.
type ProfileConfig struct {
	MaxKeywords int `mapstructure:"max_keywords"`
}

// CrawlConfig governs pagination and enrichment.
type CrawlConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	PerPage        int    `mapstructure:"per_page"`
	MaxPages       int    `mapstructure:"max_pages"`
	MaxRecords     int    `mapstructure:"max_records"`
	Workers        int    `mapstructure:"workers"`
	EnrichDetails  bool   `mapstructure:"enrich_details"`
	ListDelayMs    int    `mapstructure:"list_delay_ms"`
	DetailDelayMs  int    `mapstructure:"detail_delay_ms"`
	IDStrategy     string `mapstructure:"id_strategy"`
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	FetchParallel  int    `mapstructure:"fetch_parallel"`
}

// HTTPConfig configures retry behavior for fetches.
type HTTPConfig struct {
	MaxRetries       int `mapstructure:"max_retries"`
	BackoffInitialMs int `mapstructure:"backoff_initial_ms"`
	BackoffMaxMs     int `mapstructure:"backoff_max_ms"`
}

// StoreConfig selects and configures the job store backend.
type StoreConfig struct {
	// Backend is "sqlite", "postgres", or "memory".
	Backend    string `mapstructure:"backend"`
	SQLitePath string `mapstructure:"sqlite_path"`
	DSN        string `mapstructure:"dsn"`
}

// ExportConfig sets the CSV output directory.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment. Environment variables use the
// JOBSCOUT prefix with underscores, e.g. JOBSCOUT_STORE_BACKEND.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("JOBSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("profile.max_keywords", 5)
	v.SetDefault("crawl.base_url", "https://www.saramin.co.kr/zf_user/search/recruit")
	v.SetDefault("crawl.per_page", 40)
	v.SetDefault("crawl.max_pages", 8)
	v.SetDefault("crawl.max_records", 300)
	v.SetDefault("crawl.workers", 2)
	v.SetDefault("crawl.enrich_details", false)
	v.SetDefault("crawl.list_delay_ms", 1000)
	v.SetDefault("crawl.detail_delay_ms", 2000)
	v.SetDefault("crawl.id_strategy", "native")
	v.SetDefault("crawl.user_agent", "jobscout/1.0")
	v.SetDefault("crawl.timeout_seconds", 15)
	v.SetDefault("crawl.fetch_parallel", 4)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.backoff_initial_ms", 500)
	v.SetDefault("http.backoff_max_ms", 15000)
	v.SetDefault("store.backend", "sqlite")
	v.SetDefault("store.sqlite_path", "jobscout.db")
	v.SetDefault("export.dir", "exports")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Profile.MaxKeywords <= 0 {
		return fmt.Errorf("profile.max_keywords must be > 0")
	}
	if c.Crawl.MaxPages <= 0 {
		return fmt.Errorf("crawl.max_pages must be > 0")
	}
	if c.Crawl.Workers <= 0 {
		return fmt.Errorf("crawl.workers must be > 0")
	}
	if c.Crawl.ListDelayMs < 0 || c.Crawl.DetailDelayMs < 0 {
		return fmt.Errorf("crawl delays must be >= 0")
	}
	switch c.Crawl.IDStrategy {
	case "native", "urlhash":
	default:
		return fmt.Errorf("crawl.id_strategy must be native or urlhash")
	}
	switch c.Store.Backend {
	case "sqlite", "memory":
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn must be set for the postgres backend")
		}
	default:
		return fmt.Errorf("store.backend must be sqlite, postgres, or memory")
	}
	return nil
}

// ListDelay is the minimum spacing between list-page requests.
func (c Config) ListDelay() time.Duration {
	return time.Duration(c.Crawl.ListDelayMs) * time.Millisecond
}

// DetailDelay is the minimum spacing between detail-page requests.
func (c Config) DetailDelay() time.Duration {
	return time.Duration(c.Crawl.DetailDelayMs) * time.Millisecond
}

// FetchTimeout is the per-request HTTP timeout.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Crawl.TimeoutSeconds) * time.Second
}

// BackoffInitial is the base retry delay.
func (c Config) BackoffInitial() time.Duration {
	return time.Duration(c.HTTP.BackoffInitialMs) * time.Millisecond
}

// BackoffMax caps the retry delay.
func (c Config) BackoffMax() time.Duration {
	return time.Duration(c.HTTP.BackoffMaxMs) * time.Millisecond
}
