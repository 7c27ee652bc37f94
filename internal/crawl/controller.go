package crawl

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/daehyun-ko/jobscout/internal/clock"
	"github.com/daehyun-ko/jobscout/internal/job"
	"github.com/daehyun-ko/jobscout/internal/metrics"
	"github.com/daehyun-ko/jobscout/internal/store"
)

const defaultBaseURL = "https://www.saramin.co.kr/zf_user/search/recruit"

// Config holds the crawl orchestration knobs.
type Config struct {
	// BaseURL is the search endpoint for list pages.
	BaseURL string
	// PerPage is the number of postings requested per list page.
	PerPage int
	// MaxPages bounds pagination per keyword.
	MaxPages int
	// MaxRecords caps the records parsed per keyword; zero means no cap.
	MaxRecords int
	// Workers bounds concurrent keywords. Pages within a keyword stay
	// sequential because pagination state is.
	Workers int
	// EnrichDetails controls whether detail pages are fetched for summaries.
	EnrichDetails bool
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.PerPage <= 0 {
		c.PerPage = 40
	}
	if c.MaxRecords < 0 {
		c.MaxRecords = 0
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 8
	}
	if c.Workers <= 0 {
		c.Workers = 2
	}
	return c
}

// ListParser turns one list page's HTML into records.
type ListParser interface {
	Parse(pageURL string, html []byte) ([]job.Record, error)
}

// Controller drives the crawl: for each keyword it walks list pages in order,
// parses cards into records, optionally enriches them, and upserts into the
// store. Keywords are independent units of work and run on a bounded pool.
type Controller struct {
	cfg      Config
	list     *fetchClient
	parser   ListParser
	enricher Enricher
	store    store.Store
	clock    clock.Clock
	logger   *zap.Logger
}

// New builds a Controller. enricher may be nil to disable detail enrichment
// regardless of cfg.EnrichDetails.
func New(cfg Config, fetcher Fetcher, limiter Waiter, retry RetryPolicy, parser ListParser, enricher Enricher, st store.Store, clk clock.Clock, logger *zap.Logger) *Controller {
	cfg = cfg.withDefaults()
	if clk == nil {
		clk = clock.System{}
	}
	if !cfg.EnrichDetails {
		enricher = nil
	}
	return &Controller{
		cfg:      cfg,
		list:     newFetchClient(fetcher, limiter, retry, "list", logger),
		parser:   parser,
		enricher: enricher,
		store:    st,
		clock:    clk,
		logger:   logger,
	}
}

// Run crawls every keyword and always returns a Summary, even when each
// keyword fails. A keyword's failure never aborts its siblings.
func (c *Controller) Run(ctx context.Context, keywords []string) Summary {
	summary := Summary{
		RunID:     uuid.NewString(),
		StartedAt: c.clock.Now(),
		Keywords:  make([]KeywordStats, len(keywords)),
	}
	c.logger.Info("crawl starting",
		zap.String("run_id", summary.RunID),
		zap.Strings("keywords", keywords),
		zap.Int("workers", c.cfg.Workers))

	var g errgroup.Group
	g.SetLimit(c.cfg.Workers)
	for i, kw := range keywords {
		g.Go(func() error {
			summary.Keywords[i] = c.crawlKeyword(ctx, kw)
			return nil
		})
	}
	_ = g.Wait()

	summary.FinishedAt = c.clock.Now()
	summary.tally()
	c.logger.Info("crawl finished",
		zap.String("run_id", summary.RunID),
		zap.Int("records_stored", summary.RecordsStored),
		zap.Int("fetch_failures", summary.FetchFailures))
	return summary
}

func (c *Controller) crawlKeyword(ctx context.Context, keyword string) KeywordStats {
	stats := KeywordStats{Keyword: keyword, StopReason: StopMaxPages}
	log := c.logger.With(zap.String("keyword", keyword))

	for page := 1; page <= c.cfg.MaxPages; page++ {
		if ctx.Err() != nil {
			stats.StopReason = StopCanceled
			return stats
		}
		pageURL := c.searchURL(keyword, page)

		body, err := c.list.get(ctx, pageURL)
		if err != nil {
			stats.StopReason = StopFetchFailed
			if ctx.Err() != nil {
				stats.StopReason = StopCanceled
			}
			log.Warn("list fetch failed, abandoning keyword",
				zap.Int("page", page), zap.Error(err))
			return stats
		}

		records, err := c.parser.Parse(pageURL, body)
		if err != nil {
			stats.StopReason = StopParseFailed
			metrics.ParseFailures.Inc()
			log.Warn("list parse failed, abandoning keyword",
				zap.Int("page", page), zap.Error(err))
			return stats
		}
		if len(records) == 0 {
			stats.StopReason = StopEmptyPage
			metrics.EmptyPages.Inc()
			log.Debug("empty page, pagination done", zap.Int("page", page))
			return stats
		}

		stats.Pages++
		metrics.PagesParsed.Inc()
		capped := c.processPage(ctx, records, log, &stats)
		if capped {
			stats.StopReason = StopRecordCap
			return stats
		}
	}
	return stats
}

// processPage normalizes, enriches, and stores one page's records. It returns
// true once the per-keyword record cap is hit.
func (c *Controller) processPage(ctx context.Context, records []job.Record, log *zap.Logger, stats *KeywordStats) bool {
	for _, rec := range records {
		rec = job.Normalize(rec, c.clock.Now())
		stats.Parsed++
		metrics.RecordsParsed.Inc()

		if c.enricher != nil {
			enriched, err := c.enricher.Enrich(ctx, rec)
			if err != nil {
				stats.EnrichFailures++
				log.Debug("enrichment failed, storing without summary",
					zap.String("job_id", rec.JobID), zap.Error(err))
			} else {
				rec = enriched
			}
		}

		if err := c.store.Upsert(ctx, rec); err != nil {
			stats.StoreFailures++
			metrics.Upserts.WithLabelValues("failed").Inc()
			log.Error("upsert failed, continuing",
				zap.String("job_id", rec.JobID), zap.Error(err))
		} else {
			stats.Stored++
			metrics.Upserts.WithLabelValues("ok").Inc()
		}

		if c.cfg.MaxRecords > 0 && stats.Parsed >= c.cfg.MaxRecords {
			return true
		}
	}
	return false
}

func (c *Controller) searchURL(keyword string, page int) string {
	q := url.Values{}
	q.Set("search_area", "main")
	q.Set("search_done", "y")
	q.Set("searchType", "search")
	q.Set("searchword", keyword)
	q.Set("recruitPage", strconv.Itoa(page))
	q.Set("recruitSort", "relation")
	q.Set("recruitPageCount", strconv.Itoa(c.cfg.PerPage))
	return c.cfg.BaseURL + "?" + q.Encode()
}
