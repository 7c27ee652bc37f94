// Package store defines the persistent job store contract and its backends.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daehyun-ko/jobscout/internal/job"
)

// ErrNotFound is returned when no record matches the requested identifier.
var ErrNotFound = errors.New("job not found")

// Error wraps a write-path failure. The crawl controller logs it and moves
// on; it never aborts a run.
type Error struct {
	JobID string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store job %s: %v", e.JobID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Store persists job records keyed by JobID. Upsert must be atomic per record
// and safe under concurrent writers to different keys; ScrapedAt is set by
// the implementation at write time and overwritten on every upsert.
type Store interface {
	Upsert(ctx context.Context, rec job.Record) error
	Get(ctx context.Context, jobID string) (job.Record, error)
	List(ctx context.Context) ([]job.Record, error)
	// ListChangedSince returns records whose ScrapedAt is strictly after t.
	// It is the read surface for the downstream embedding builder.
	ListChangedSince(ctx context.Context, t time.Time) ([]job.Record, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
