// Package sqlite implements the job store on an embedded sqlite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/daehyun-ko/jobscout/internal/clock"
	"github.com/daehyun-ko/jobscout/internal/job"
	"github.com/daehyun-ko/jobscout/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_postings (
	job_id       TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	company      TEXT,
	career       TEXT,
	education    TEXT,
	location     TEXT,
	salary       TEXT,
	job_category TEXT,
	skills       TEXT,
	posted_at    TEXT,
	due_date     TEXT,
	summary      TEXT,
	url          TEXT,
	scraped_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_job_postings_scraped_at ON job_postings(scraped_at DESC);
CREATE INDEX IF NOT EXISTS idx_job_postings_posted_at ON job_postings(posted_at);
`

const upsertSQL = `
INSERT INTO job_postings (
	job_id, title, company, career, education, location, salary,
	job_category, skills, posted_at, due_date, summary, url, scraped_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(job_id) DO UPDATE SET
	title=excluded.title,
	company=excluded.company,
	career=excluded.career,
	education=excluded.education,
	location=excluded.location,
	salary=excluded.salary,
	job_category=excluded.job_category,
	skills=excluded.skills,
	posted_at=excluded.posted_at,
	due_date=excluded.due_date,
	summary=excluded.summary,
	url=excluded.url,
	scraped_at=excluded.scraped_at;`

const selectColumns = `job_id, title, company, career, education, location, salary,
	job_category, skills, posted_at, due_date, summary, url, scraped_at`

// timeLayout is fixed-width so stored timestamps sort lexicographically;
// RFC3339Nano trims trailing zeros and would not.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists records in a local sqlite file. sqlite serializes writers
// internally; the pool is capped at one open connection so concurrent keyword
// workers queue on the driver rather than tripping SQLITE_BUSY.
type Store struct {
	db    *sql.DB
	clock clock.Clock
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string, clk clock.Clock) (*Store, error) {
	if clk == nil {
		clk = clock.System{}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db, clock: clk}, nil
}

// Upsert inserts or fully overwrites the row for rec.JobID, stamping
// ScrapedAt with the current UTC time.
func (s *Store) Upsert(ctx context.Context, rec job.Record) error {
	scrapedAt := s.clock.Now().UTC().Format(timeLayout)
	_, err := s.db.ExecContext(ctx, upsertSQL,
		rec.JobID, rec.Title, rec.Company, rec.Career, rec.Education,
		rec.Location, rec.Salary, rec.JobCategory, joinSkills(rec.Skills),
		rec.PostedAt, rec.DueDate, rec.Summary, rec.URL, scrapedAt,
	)
	if err != nil {
		return &store.Error{JobID: rec.JobID, Err: err}
	}
	return nil
}

// Get fetches one record by ID.
func (s *Store) Get(ctx context.Context, jobID string) (job.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM job_postings WHERE job_id = ?", jobID)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return job.Record{}, store.ErrNotFound
	}
	if err != nil {
		return job.Record{}, fmt.Errorf("get job %s: %w", jobID, err)
	}
	return rec, nil
}

// List returns all records, most recently scraped first.
func (s *Store) List(ctx context.Context) ([]job.Record, error) {
	return s.query(ctx,
		"SELECT "+selectColumns+" FROM job_postings ORDER BY scraped_at DESC, job_id")
}

// ListChangedSince returns records scraped strictly after t. Fixed-width UTC
// timestamps sort lexicographically, so the comparison stays in SQL.
func (s *Store) ListChangedSince(ctx context.Context, t time.Time) ([]job.Record, error) {
	return s.query(ctx,
		"SELECT "+selectColumns+" FROM job_postings WHERE scraped_at > ? ORDER BY scraped_at DESC, job_id",
		t.UTC().Format(timeLayout))
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM job_postings").Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// Close shuts down the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]job.Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var out []job.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (job.Record, error) {
	var rec job.Record
	var skills, scrapedAt string
	err := row.Scan(
		&rec.JobID, &rec.Title, &rec.Company, &rec.Career, &rec.Education,
		&rec.Location, &rec.Salary, &rec.JobCategory, &skills,
		&rec.PostedAt, &rec.DueDate, &rec.Summary, &rec.URL, &scrapedAt,
	)
	if err != nil {
		return job.Record{}, err
	}
	rec.Skills = splitSkills(skills)
	rec.ScrapedAt, err = time.Parse(timeLayout, scrapedAt)
	if err != nil {
		return job.Record{}, fmt.Errorf("parse scraped_at %q: %w", scrapedAt, err)
	}
	return rec, nil
}

func joinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

func splitSkills(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
