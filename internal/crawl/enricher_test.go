package crawl

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daehyun-ko/jobscout/internal/job"
)

const detailHTML = `<!DOCTYPE html>
<html>
<head>
<meta name="description" content="백엔드 결제 시스템을 개발합니다.">
</head>
<body></body>
</html>`

func TestEnrichFillsSummary(t *testing.T) {
	fetcher := fetcherFunc(func(_ context.Context, rawURL string) (Page, error) {
		return Page{URL: rawURL, StatusCode: http.StatusOK, Body: []byte(detailHTML)}, nil
	})
	enricher := NewDetailEnricher(fetcher, nil, fastPolicy(), zap.NewNop())

	rec, err := enricher.Enrich(context.Background(), job.Record{
		JobID: "rec-1",
		URL:   "https://example.com/jobs/rec-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "백엔드 결제 시스템을 개발합니다.", rec.Summary)
}

func TestEnrichFailureReturnsRecordUnchanged(t *testing.T) {
	fetcher := fetcherFunc(func(_ context.Context, rawURL string) (Page, error) {
		return Page{URL: rawURL, StatusCode: http.StatusNotFound}, errors.New("not found")
	})
	enricher := NewDetailEnricher(fetcher, nil, fastPolicy(), zap.NewNop())
	original := job.Record{JobID: "rec-2", Title: "데이터 엔지니어", URL: "https://example.com/jobs/rec-2"}

	rec, err := enricher.Enrich(context.Background(), original)

	require.Error(t, err)
	assert.Equal(t, original, rec)
}

func TestEnrichSkipsRecordsWithoutURL(t *testing.T) {
	called := false
	fetcher := fetcherFunc(func(_ context.Context, _ string) (Page, error) {
		called = true
		return Page{}, errors.New("should not fetch")
	})
	enricher := NewDetailEnricher(fetcher, nil, fastPolicy(), zap.NewNop())

	rec, err := enricher.Enrich(context.Background(), job.Record{JobID: "rec-3"})

	require.NoError(t, err)
	assert.False(t, called)
	assert.Empty(t, rec.Summary)
}
