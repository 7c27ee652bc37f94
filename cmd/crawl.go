package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/daehyun-ko/jobscout/internal/clock"
	"github.com/daehyun-ko/jobscout/internal/config"
	"github.com/daehyun-ko/jobscout/internal/crawl"
	"github.com/daehyun-ko/jobscout/internal/export"
	"github.com/daehyun-ko/jobscout/internal/parse"
	"github.com/daehyun-ko/jobscout/internal/profile"
	"github.com/daehyun-ko/jobscout/internal/ratelimit"
	"github.com/daehyun-ko/jobscout/internal/store"
)

func newCrawlCmd() *cobra.Command {
	var (
		keywordsFlag string
		profileFlag  string
		exportCSV    bool
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawls job postings for the given keywords or profile",
		Long: `Fetches paginated job listings for each keyword, parses them into
records, and upserts them into the store. Keywords come from --keywords
directly or are extracted from --profile text first. With --export-csv
the records stored during the run are also snapshotted to a CSV file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			applyCrawlOverrides(&cfg, cmd.Flags())
			if err := cfg.Validate(); err != nil {
				return err
			}

			keywords, err := resolveKeywords(cfg.Profile.MaxKeywords, keywordsFlag, profileFlag)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			clk := clock.System{}
			st, err := openStore(ctx, cfg, clk)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logger.Warn("store close failed", zap.Error(cerr))
				}
			}()

			fetcher, err := crawl.NewCollyFetcher(crawl.FetcherConfig{
				UserAgent:      cfg.Crawl.UserAgent,
				RequestTimeout: cfg.FetchTimeout(),
				Parallelism:    cfg.Crawl.FetchParallel,
			}, logger.Named("fetcher"))
			if err != nil {
				return fmt.Errorf("init fetcher: %w", err)
			}

			retry := crawl.NewRetryPolicy(cfg.HTTP.MaxRetries, cfg.BackoffInitial(), cfg.BackoffMax())

			var enricher crawl.Enricher
			if cfg.Crawl.EnrichDetails {
				enricher = crawl.NewDetailEnricher(
					fetcher,
					ratelimit.New(cfg.DetailDelay()),
					retry,
					logger.Named("enricher"),
				)
			}

			ctrl := crawl.New(
				crawl.Config{
					BaseURL:       cfg.Crawl.BaseURL,
					PerPage:       cfg.Crawl.PerPage,
					MaxPages:      cfg.Crawl.MaxPages,
					MaxRecords:    cfg.Crawl.MaxRecords,
					Workers:       cfg.Crawl.Workers,
					EnrichDetails: cfg.Crawl.EnrichDetails,
				},
				fetcher,
				ratelimit.New(cfg.ListDelay()),
				retry,
				parse.NewListing(idStrategy(cfg)),
				enricher,
				st,
				clk,
				logger.Named("crawl"),
			)

			summary := ctrl.Run(ctx, keywords)

			if exportCSV {
				path, n, serr := snapshotRun(ctx, st, cfg.Export.Dir, keywords, summary.StartedAt, clk.Now())
				if serr != nil {
					return fmt.Errorf("snapshot run: %w", serr)
				}
				logger.Info("run snapshot written",
					zap.String("path", path),
					zap.Int("records", n),
				)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(summary); err != nil {
				return err
			}

			if summary.Unreachable() {
				return fmt.Errorf("source unreachable: no keyword produced any records")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keywordsFlag, "keywords", "", "comma-separated search keywords")
	cmd.Flags().StringVar(&profileFlag, "profile", "", "free-text profile to extract keywords from")
	cmd.Flags().BoolVar(&exportCSV, "export-csv", false, "write the run's records to a CSV snapshot")
	cmd.Flags().Int("pages", 8, "maximum listing pages per keyword")
	cmd.Flags().Int("workers", 2, "concurrent keyword workers")
	cmd.Flags().Int("max-keywords", 5, "keyword cap when extracting from --profile")
	cmd.Flags().Int("delay", 1000, "minimum delay between listing requests in milliseconds")
	cmd.Flags().Int("summary-delay", 2000, "minimum delay between detail requests in milliseconds")
	cmd.Flags().Bool("fetch-summary", false, "fetch each posting's detail page for a summary")
	cmd.Flags().String("db", "jobscout.db", "sqlite database path")
	cmd.Flags().String("csv-dir", "exports", "directory for the CSV snapshot")
	return cmd
}

// applyCrawlOverrides copies explicitly-set crawl flags over the loaded
// config. Flags left at their defaults do not touch the config, so file and
// environment settings still win unless the user asks otherwise.
func applyCrawlOverrides(cfg *config.Config, fs *pflag.FlagSet) {
	if fs.Changed("pages") {
		cfg.Crawl.MaxPages, _ = fs.GetInt("pages")
	}
	if fs.Changed("workers") {
		cfg.Crawl.Workers, _ = fs.GetInt("workers")
	}
	if fs.Changed("max-keywords") {
		cfg.Profile.MaxKeywords, _ = fs.GetInt("max-keywords")
	}
	if fs.Changed("delay") {
		cfg.Crawl.ListDelayMs, _ = fs.GetInt("delay")
	}
	if fs.Changed("summary-delay") {
		cfg.Crawl.DetailDelayMs, _ = fs.GetInt("summary-delay")
	}
	if fs.Changed("fetch-summary") {
		cfg.Crawl.EnrichDetails, _ = fs.GetBool("fetch-summary")
	}
	if fs.Changed("db") {
		cfg.Store.SQLitePath, _ = fs.GetString("db")
	}
	if fs.Changed("csv-dir") {
		cfg.Export.Dir, _ = fs.GetString("csv-dir")
	}
}

// snapshotRun dumps the records stored during this run to a CSV under dir and
// returns the written path and record count. ListChangedSince is strictly
// after its cutoff, so the run start is stepped back one nanosecond to keep
// records stamped exactly at the start.
func snapshotRun(ctx context.Context, st store.Store, dir string, keywords []string, startedAt, now time.Time) (string, int, error) {
	records, err := st.ListChangedSince(ctx, startedAt.Add(-time.Nanosecond))
	if err != nil {
		return "", 0, fmt.Errorf("list run records: %w", err)
	}

	label := "crawl"
	if len(keywords) == 1 {
		label = keywords[0]
	}
	path, err := export.Write(dir, label, now, records)
	if err != nil {
		return "", 0, err
	}
	return path, len(records), nil
}

func resolveKeywords(maxKeywords int, keywordsFlag, profileFlag string) ([]string, error) {
	if keywordsFlag != "" {
		var keywords []string
		for _, kw := range strings.Split(keywordsFlag, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("--keywords contained no usable keywords")
		}
		return keywords, nil
	}
	if profileFlag != "" {
		extractor := profile.NewExtractor(profile.DefaultLexicon(), maxKeywords)
		keywords := extractor.Extract(profileFlag).SearchKeywords
		if len(keywords) == 0 {
			return nil, fmt.Errorf("no keywords extracted from profile text")
		}
		return keywords, nil
	}
	return nil, fmt.Errorf("either --keywords or --profile is required")
}
