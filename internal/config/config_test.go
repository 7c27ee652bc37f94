package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Profile.MaxKeywords != 5 {
		t.Fatalf("expected default max_keywords 5, got %d", cfg.Profile.MaxKeywords)
	}
	if cfg.Store.Backend != "sqlite" {
		t.Fatalf("expected default sqlite backend, got %q", cfg.Store.Backend)
	}
	if got := cfg.ListDelay(); got != time.Second {
		t.Fatalf("expected 1s list delay, got %v", got)
	}
	if got := cfg.DetailDelay(); got != 2*time.Second {
		t.Fatalf("expected 2s detail delay, got %v", got)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
profile:
  max_keywords: 3
crawl:
  per_page: 20
  max_pages: 4
  workers: 4
  enrich_details: true
  list_delay_ms: 1500
  id_strategy: urlhash
http:
  max_retries: 5
  backoff_initial_ms: 100
  backoff_max_ms: 500
store:
  backend: postgres
  dsn: postgres://localhost/jobscout
export:
  dir: /tmp/exports
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Profile.MaxKeywords != 3 {
		t.Fatalf("expected max_keywords 3, got %d", cfg.Profile.MaxKeywords)
	}
	if cfg.Crawl.PerPage != 20 || !cfg.Crawl.EnrichDetails {
		t.Fatalf("expected crawl overrides to apply: %+v", cfg.Crawl)
	}
	if cfg.Crawl.IDStrategy != "urlhash" {
		t.Fatalf("expected urlhash strategy, got %q", cfg.Crawl.IDStrategy)
	}
	if cfg.Store.Backend != "postgres" || cfg.Store.DSN == "" {
		t.Fatalf("expected postgres store config: %+v", cfg.Store)
	}
	if got := cfg.ListDelay(); got != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s list delay, got %v", got)
	}
	if got := cfg.BackoffMax(); got != 500*time.Millisecond {
		t.Fatalf("expected 500ms backoff cap, got %v", got)
	}
	if cfg.Logging.Development {
		t.Fatalf("expected development logging disabled")
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server:  ServerConfig{Port: 8080},
		Profile: ProfileConfig{MaxKeywords: 5},
		Crawl: CrawlConfig{
			MaxPages:   8,
			Workers:    2,
			IDStrategy: "native",
		},
		Store: StoreConfig{Backend: "sqlite", SQLitePath: "jobs.db"},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "invalid port",
			cfg: func() Config {
				c := base
				c.Server.Port = 0
				return c
			}(),
			want: "server.port",
		},
		{
			name: "invalid max keywords",
			cfg: func() Config {
				c := base
				c.Profile.MaxKeywords = 0
				return c
			}(),
			want: "profile.max_keywords",
		},
		{
			name: "invalid max pages",
			cfg: func() Config {
				c := base
				c.Crawl.MaxPages = 0
				return c
			}(),
			want: "crawl.max_pages",
		},
		{
			name: "invalid workers",
			cfg: func() Config {
				c := base
				c.Crawl.Workers = 0
				return c
			}(),
			want: "crawl.workers",
		},
		{
			name: "negative delay",
			cfg: func() Config {
				c := base
				c.Crawl.ListDelayMs = -1
				return c
			}(),
			want: "delays",
		},
		{
			name: "unknown id strategy",
			cfg: func() Config {
				c := base
				c.Crawl.IDStrategy = "random"
				return c
			}(),
			want: "id_strategy",
		},
		{
			name: "postgres without dsn",
			cfg: func() Config {
				c := base
				c.Store.Backend = "postgres"
				return c
			}(),
			want: "store.dsn",
		},
		{
			name: "unknown backend",
			cfg: func() Config {
				c := base
				c.Store.Backend = "redis"
				return c
			}(),
			want: "store.backend",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
