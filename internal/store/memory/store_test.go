package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daehyun-ko/jobscout/internal/clock"
	"github.com/daehyun-ko/jobscout/internal/job"
	"github.com/daehyun-ko/jobscout/internal/store"
)

var testNow = time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)

func TestUpsertOverwritesAndRestamps(t *testing.T) {
	clk := &clock.Fixed{T: testNow}
	st := New(clk)
	ctx := context.Background()

	require.NoError(t, st.Upsert(ctx, job.Record{JobID: "a", Title: "백엔드 개발자"}))
	clk.Advance(time.Hour)
	require.NoError(t, st.Upsert(ctx, job.Record{JobID: "a", Title: "백엔드 개발자 (수정)"}))

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "same job_id never duplicates")

	rec, err := st.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "백엔드 개발자 (수정)", rec.Title)
	assert.True(t, rec.ScrapedAt.Equal(testNow.Add(time.Hour)))
}

func TestGetNotFound(t *testing.T) {
	st := New(&clock.Fixed{T: testNow})

	_, err := st.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	clk := &clock.Fixed{T: testNow}
	st := New(clk)
	ctx := context.Background()

	require.NoError(t, st.Upsert(ctx, job.Record{JobID: "old"}))
	clk.Advance(time.Minute)
	require.NoError(t, st.Upsert(ctx, job.Record{JobID: "new"}))

	records, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].JobID)
	assert.Equal(t, "old", records[1].JobID)
}

func TestListChangedSinceIsExclusive(t *testing.T) {
	clk := &clock.Fixed{T: testNow}
	st := New(clk)
	ctx := context.Background()

	require.NoError(t, st.Upsert(ctx, job.Record{JobID: "at-cutoff"}))
	clk.Advance(time.Second)
	require.NoError(t, st.Upsert(ctx, job.Record{JobID: "after-cutoff"}))

	records, err := st.ListChangedSince(ctx, testNow)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "after-cutoff", records[0].JobID)
}
