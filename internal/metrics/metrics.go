// Package metrics exposes Prometheus collectors for the crawl pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FetchAttempts counts HTTP fetches by page kind (list, detail).
	FetchAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobscout_fetch_attempts_total",
		Help: "HTTP fetch attempts, labeled by page kind.",
	}, []string{"kind"})

	// FetchFailures counts classified fetch failures after retry exhaustion.
	FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobscout_fetch_failures_total",
		Help: "Fetch failures after retries, labeled by classification.",
	}, []string{"class"})

	// Retries counts retry attempts triggered by transient fetch failures.
	Retries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobscout_fetch_retries_total",
		Help: "Retry attempts caused by transient fetch failures.",
	})

	// PagesParsed counts list pages that yielded at least one card.
	PagesParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobscout_pages_parsed_total",
		Help: "List pages parsed into one or more cards.",
	})

	// EmptyPages counts list pages with zero parseable cards. An empty page
	// terminates a keyword's pagination and is counted separately from fetch
	// failures.
	EmptyPages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobscout_empty_pages_total",
		Help: "List pages with zero parseable cards.",
	})

	// ParseFailures counts pages whose HTML shape could not be parsed.
	ParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobscout_parse_failures_total",
		Help: "Pages with malformed or unexpected HTML.",
	})

	// RecordsParsed counts cards successfully turned into records.
	RecordsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobscout_records_parsed_total",
		Help: "Job cards parsed into records.",
	})

	// Upserts counts store writes, labeled by outcome (ok, failed).
	Upserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobscout_upserts_total",
		Help: "Store upserts, labeled by outcome.",
	}, []string{"outcome"})

	// EnrichFailures counts non-fatal detail enrichment failures.
	EnrichFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobscout_enrich_failures_total",
		Help: "Detail page enrichment failures; the record is stored without a summary.",
	})

	// RateLimitWaitSeconds observes time spent waiting on the rate limiter.
	RateLimitWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jobscout_rate_limit_wait_seconds",
		Help:    "Time spent waiting for a per-host request permit.",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})
)

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
