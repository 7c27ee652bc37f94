package crawl

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// FetchError is the classified outcome of a failed fetch. Transient failures
// (timeouts, 5xx, 429, connection resets) are retried by the retry policy;
// permanent ones (other 4xx) fail the page immediately.
type FetchError struct {
	URL        string
	StatusCode int
	Transient  bool
	// RetryAfter is a backoff floor taken from a 429 response's Retry-After
	// header, zero otherwise.
	RetryAfter time.Duration
	Err        error
}

func (e *FetchError) Error() string {
	class := "permanent"
	if e.Transient {
		class = "transient"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %s failure (status %d): %v", e.URL, class, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s failure: %v", e.URL, class, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Class returns the metrics label for the failure.
func (e *FetchError) Class() string {
	if e.Transient {
		return "transient"
	}
	return "permanent"
}

// classifyFetch turns a raw fetch outcome into a FetchError, or nil for a
// successful 2xx response.
func classifyFetch(url string, page Page, err error) *FetchError {
	status := page.StatusCode
	switch {
	case err == nil && status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return &FetchError{
			URL:        url,
			StatusCode: status,
			Transient:  true,
			RetryAfter: parseRetryAfter(page.Headers.Get("Retry-After")),
			Err:        err,
		}
	case status >= 500:
		return &FetchError{URL: url, StatusCode: status, Transient: true, Err: err}
	case status >= 400:
		return &FetchError{URL: url, StatusCode: status, Transient: false, Err: err}
	default:
		// No HTTP status at all: transport-level trouble (timeout, reset,
		// DNS). Worth retrying.
		return &FetchError{URL: url, StatusCode: status, Transient: true, Err: err}
	}
}

// parseRetryAfter handles the delay-seconds form of the header; the HTTP-date
// form is rare enough on this source to ignore.
func parseRetryAfter(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
