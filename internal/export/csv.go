// Package export writes stored job records to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/daehyun-ko/jobscout/internal/job"
)

var header = []string{
	"job_id",
	"title",
	"company",
	"career",
	"education",
	"location",
	"salary",
	"job_category",
	"skills",
	"posted_at",
	"due_date",
	"summary",
	"url",
	"scraped_at",
}

// Filename builds the export file name for a keyword at the given instant:
// <keyword>_<YYYYMMDD_HHMMSS>.csv. Path separators in the keyword are
// flattened so it stays a single file name.
func Filename(keyword string, ts time.Time) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(keyword)
	return fmt.Sprintf("%s_%s.csv", safe, ts.Format("20060102_150405"))
}

// Write dumps records into dir under the keyword-stamped file name and
// returns the written path. The directory is created if missing.
func Write(dir, keyword string, ts time.Time, records []job.Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(keyword, ts))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.JobID,
			rec.Title,
			rec.Company,
			rec.Career,
			rec.Education,
			rec.Location,
			rec.Salary,
			rec.JobCategory,
			strings.Join(rec.Skills, ", "),
			rec.PostedAt,
			rec.DueDate,
			rec.Summary,
			rec.URL,
			rec.ScrapedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write record %s: %w", rec.JobID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	return path, nil
}
