package crawl

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/daehyun-ko/jobscout/internal/metrics"
)

// Waiter blocks until the caller may hit the given URL's host again.
type Waiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// fetchClient wraps a Fetcher with rate limiting, classification and retries.
// kind labels the fetch in metrics ("list" or "detail").
type fetchClient struct {
	fetcher Fetcher
	limiter Waiter
	retry   RetryPolicy
	kind    string
	logger  *zap.Logger
}

func newFetchClient(fetcher Fetcher, limiter Waiter, retry RetryPolicy, kind string, logger *zap.Logger) *fetchClient {
	if retry == nil {
		retry = NewExponentialRetryPolicy()
	}
	return &fetchClient{
		fetcher: fetcher,
		limiter: limiter,
		retry:   retry,
		kind:    kind,
		logger:  logger,
	}
}

// get fetches a URL, retrying transient failures per the policy. The returned
// error on exhaustion is the last classified *FetchError.
func (c *fetchClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx, rawURL); err != nil {
				return nil, err
			}
		}

		page, err := c.fetcher.Fetch(ctx, rawURL)
		ferr := classifyFetch(rawURL, page, err)
		if ferr == nil {
			metrics.FetchAttempts.WithLabelValues(c.kind).Inc()
			return page.Body, nil
		}
		metrics.FetchAttempts.WithLabelValues(c.kind).Inc()

		if !c.retry.ShouldRetry(ferr, attempt) {
			metrics.FetchFailures.WithLabelValues(ferr.Class()).Inc()
			return nil, ferr
		}

		wait := c.retry.Backoff(attempt, ferr)
		metrics.Retries.Inc()
		c.logger.Warn("fetch failed, retrying",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt+1),
			zap.Int("status", ferr.StatusCode),
			zap.Duration("backoff", wait),
			zap.Error(ferr.Err))
		if err := sleepCtx(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
