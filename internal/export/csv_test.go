package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daehyun-ko/jobscout/internal/job"
)

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 11, 20, 9, 30, 15, 0, time.UTC)

	assert.Equal(t, "python_20251120_093015.csv", Filename("python", ts))
	assert.Equal(t, "데이터_분석가_20251120_093015.csv", Filename("데이터 분석가", ts))
	assert.Equal(t, "a_b_20251120_093015.csv", Filename("a/b", ts))
}

func TestWriteRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	ts := time.Date(2025, 11, 20, 9, 30, 15, 0, time.UTC)
	records := []job.Record{
		{
			JobID:       "rec-1",
			Title:       "백엔드 개발자",
			Company:     "acme",
			Career:      "경력 3년",
			Education:   "학력무관",
			Location:    "서울 강남구",
			Salary:      "면접 후 결정",
			JobCategory: "IT개발·데이터",
			Skills:      []string{"python", "django"},
			PostedAt:    "2025-11-18",
			DueDate:     "2025-12-01",
			Summary:     "결제 시스템, \"정산\" 포함",
			URL:         "https://example.com/jobs/rec-1",
			ScrapedAt:   ts,
		},
		{JobID: "rec-2", Title: "데이터 엔지니어", ScrapedAt: ts},
	}

	path, err := Write(dir, "python", ts, records)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "python_20251120_093015.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, header, rows[0])
	assert.Equal(t, "rec-1", rows[1][0])
	assert.Equal(t, "python, django", rows[1][8])
	assert.Equal(t, "결제 시스템, \"정산\" 포함", rows[1][11], "quoting survives the round trip")
	assert.Equal(t, "2025-11-20T09:30:15Z", rows[1][13])

	// Sparse records export with empty cells, not errors.
	assert.Equal(t, "rec-2", rows[2][0])
	assert.Empty(t, rows[2][2])
}

func TestWriteEmptyRecordsStillProducesHeader(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2025, 11, 20, 9, 30, 15, 0, time.UTC)

	path, err := Write(dir, "go", ts, nil)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, header, rows[0])
}
