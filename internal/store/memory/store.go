// Package memory provides an in-memory job store for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/daehyun-ko/jobscout/internal/clock"
	"github.com/daehyun-ko/jobscout/internal/job"
	"github.com/daehyun-ko/jobscout/internal/store"
)

// Store keeps records in a mutex-guarded map.
type Store struct {
	mu    sync.RWMutex
	rows  map[string]job.Record
	clock clock.Clock
}

// New constructs a Store. A nil clk falls back to the system clock.
func New(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.System{}
	}
	return &Store{rows: make(map[string]job.Record), clock: clk}
}

// Upsert inserts or overwrites the record, stamping ScrapedAt.
func (s *Store) Upsert(_ context.Context, rec job.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ScrapedAt = s.clock.Now().UTC()
	s.rows[rec.JobID] = rec
	return nil
}

// Get fetches one record by ID.
func (s *Store) Get(_ context.Context, jobID string) (job.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rows[jobID]
	if !ok {
		return job.Record{}, store.ErrNotFound
	}
	return rec, nil
}

// List returns all records ordered by ScrapedAt descending.
func (s *Store) List(_ context.Context) ([]job.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(job.Record) bool { return true }), nil
}

// ListChangedSince returns records scraped strictly after t.
func (s *Store) ListChangedSince(_ context.Context, t time.Time) ([]job.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(r job.Record) bool { return r.ScrapedAt.After(t) }), nil
}

// Count returns the number of stored records.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) snapshot(keep func(job.Record) bool) []job.Record {
	out := make([]job.Record, 0, len(s.rows))
	for _, rec := range s.rows {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScrapedAt.Equal(out[j].ScrapedAt) {
			return out[i].JobID < out[j].JobID
		}
		return out[i].ScrapedAt.After(out[j].ScrapedAt)
	})
	return out
}
