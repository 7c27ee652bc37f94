package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerServesRegisteredCounters(t *testing.T) {
	FetchAttempts.WithLabelValues("list").Inc()
	Upserts.WithLabelValues("ok").Inc()
	EmptyPages.Inc()

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "jobscout_fetch_attempts_total")
	assert.Contains(t, body, "jobscout_upserts_total")
	assert.Contains(t, body, "jobscout_empty_pages_total")
	assert.Contains(t, body, "jobscout_rate_limit_wait_seconds")
}
