// Package postgres implements the job store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

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
	skills       TEXT[],
	posted_at    TEXT,
	due_date     TEXT,
	summary      TEXT,
	url          TEXT,
	scraped_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_job_postings_scraped_at ON job_postings (scraped_at DESC);`

const upsertSQL = `
INSERT INTO job_postings (
	job_id, title, company, career, education, location, salary,
	job_category, skills, posted_at, due_date, summary, url, scraped_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (job_id) DO UPDATE SET
	title = EXCLUDED.title,
	company = EXCLUDED.company,
	career = EXCLUDED.career,
	education = EXCLUDED.education,
	location = EXCLUDED.location,
	salary = EXCLUDED.salary,
	job_category = EXCLUDED.job_category,
	skills = EXCLUDED.skills,
	posted_at = EXCLUDED.posted_at,
	due_date = EXCLUDED.due_date,
	summary = EXCLUDED.summary,
	url = EXCLUDED.url,
	scraped_at = EXCLUDED.scraped_at`

const selectColumns = `job_id, title, company, career, education, location, salary,
	job_category, skills, posted_at, due_date, summary, url, scraped_at`

// DB is the subset of pgxpool.Pool the store uses; pgxmock satisfies it in
// tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Store persists records in PostgreSQL. Row-level locking gives per-key write
// serialization without a global lock.
type Store struct {
	db    DB
	clock clock.Clock
}

// Open connects to the DSN, pings it, and ensures the schema.
func Open(ctx context.Context, dsn string, clk clock.Clock) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: pool, clock: clk}, nil
}

// NewWithDB wraps an existing connection; used by tests.
func NewWithDB(db DB, clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.System{}
	}
	return &Store{db: db, clock: clk}
}

// Upsert inserts or fully overwrites the row for rec.JobID.
func (s *Store) Upsert(ctx context.Context, rec job.Record) error {
	skills := rec.Skills
	if skills == nil {
		skills = []string{}
	}
	_, err := s.db.Exec(ctx, upsertSQL,
		rec.JobID, rec.Title, rec.Company, rec.Career, rec.Education,
		rec.Location, rec.Salary, rec.JobCategory, skills,
		rec.PostedAt, rec.DueDate, rec.Summary, rec.URL, s.clock.Now().UTC(),
	)
	if err != nil {
		return &store.Error{JobID: rec.JobID, Err: err}
	}
	return nil
}

// Get fetches one record by ID.
func (s *Store) Get(ctx context.Context, jobID string) (job.Record, error) {
	row := s.db.QueryRow(ctx,
		"SELECT "+selectColumns+" FROM job_postings WHERE job_id = $1", jobID)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
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

// ListChangedSince returns records scraped strictly after t.
func (s *Store) ListChangedSince(ctx context.Context, t time.Time) ([]job.Record, error) {
	return s.query(ctx,
		"SELECT "+selectColumns+" FROM job_postings WHERE scraped_at > $1 ORDER BY scraped_at DESC, job_id",
		t.UTC())
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM job_postings").Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]job.Record, error) {
	rows, err := s.db.Query(ctx, q, args...)
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

func scanRecord(row pgx.Row) (job.Record, error) {
	var rec job.Record
	err := row.Scan(
		&rec.JobID, &rec.Title, &rec.Company, &rec.Career, &rec.Education,
		&rec.Location, &rec.Salary, &rec.JobCategory, &rec.Skills,
		&rec.PostedAt, &rec.DueDate, &rec.Summary, &rec.URL, &rec.ScrapedAt,
	)
	if err != nil {
		return job.Record{}, err
	}
	rec.ScrapedAt = rec.ScrapedAt.UTC()
	return rec, nil
}
