// Package cmd defines the jobscout CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daehyun-ko/jobscout/internal/clock"
	"github.com/daehyun-ko/jobscout/internal/config"
	"github.com/daehyun-ko/jobscout/internal/job"
	"github.com/daehyun-ko/jobscout/internal/logging"
	"github.com/daehyun-ko/jobscout/internal/store"
	"github.com/daehyun-ko/jobscout/internal/store/memory"
	"github.com/daehyun-ko/jobscout/internal/store/postgres"
	"github.com/daehyun-ko/jobscout/internal/store/sqlite"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jobscout",
		Short: "Collects and serves job postings matched to a profile",
		Long: `jobscout turns a free-text career profile into search keywords,
crawls a job board for matching postings, and keeps them in a
dedup-aware store for downstream matching.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	root.AddCommand(
		newProfileCmd(),
		newCrawlCmd(),
		newExportCmd(),
		newServeCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger shared by every subcommand.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func openStore(ctx context.Context, cfg config.Config, clk clock.Clock) (store.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return sqlite.Open(cfg.Store.SQLitePath, clk)
	case "postgres":
		return postgres.Open(ctx, cfg.Store.DSN, clk)
	case "memory":
		return memory.New(clk), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func idStrategy(cfg config.Config) job.IDStrategy {
	if cfg.Crawl.IDStrategy == "urlhash" {
		return job.URLHash{}
	}
	return job.NativeID{}
}
