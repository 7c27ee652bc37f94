package crawl

import (
	"context"

	"go.uber.org/zap"

	"github.com/daehyun-ko/jobscout/internal/job"
	"github.com/daehyun-ko/jobscout/internal/metrics"
	"github.com/daehyun-ko/jobscout/internal/parse"
)

// Enricher augments a listing record with detail-page data. A failed
// enrichment returns the record unchanged together with the cause; the crawl
// keeps going either way.
type Enricher interface {
	Enrich(ctx context.Context, rec job.Record) (job.Record, error)
}

// DetailEnricher fetches a record's detail page and fills in its Summary.
// Detail traffic runs through its own limiter so listing pages are not
// starved.
type DetailEnricher struct {
	client *fetchClient
	logger *zap.Logger
}

// NewDetailEnricher builds an enricher around the given fetcher and limiter.
func NewDetailEnricher(fetcher Fetcher, limiter Waiter, retry RetryPolicy, logger *zap.Logger) *DetailEnricher {
	return &DetailEnricher{
		client: newFetchClient(fetcher, limiter, retry, "detail", logger),
		logger: logger,
	}
}

// Enrich fetches rec.URL and extracts the posting summary. Records without a
// URL pass through untouched.
func (e *DetailEnricher) Enrich(ctx context.Context, rec job.Record) (job.Record, error) {
	if rec.URL == "" {
		return rec, nil
	}

	body, err := e.client.get(ctx, rec.URL)
	if err != nil {
		metrics.EnrichFailures.Inc()
		return rec, err
	}

	summary, err := parse.Summary(rec.URL, body)
	if err != nil {
		metrics.EnrichFailures.Inc()
		return rec, err
	}
	if summary != "" {
		rec.Summary = summary
	}
	return rec, nil
}
