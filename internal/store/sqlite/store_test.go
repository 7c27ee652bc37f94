package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daehyun-ko/jobscout/internal/clock"
	"github.com/daehyun-ko/jobscout/internal/job"
	"github.com/daehyun-ko/jobscout/internal/store"
)

func openTestStore(t *testing.T, clk clock.Clock) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "jobs.db"), clk)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecord(id string) job.Record {
	return job.Record{
		JobID:       id,
		Title:       "백엔드 개발자",
		Company:     "테스트컴퍼니",
		Career:      "경력 3년",
		Education:   "대졸 이상",
		Location:    "서울 강남구",
		Salary:      "연봉 5,000만원",
		JobCategory: "백엔드, 서버개발",
		Skills:      []string{"python", "django"},
		PostedAt:    "2025-11-17",
		DueDate:     "2025-12-01",
		URL:         "https://www.saramin.co.kr/zf_user/jobs/relay/view?rec_idx=" + id,
	}
}

func TestStore_UpsertIsIdempotent(t *testing.T) {
	clk := &clock.Fixed{T: time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)}
	s := openTestStore(t, clk)
	ctx := context.Background()

	rec := sampleRecord("100")
	require.NoError(t, s.Upsert(ctx, rec))

	first, err := s.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, clk.T, first.ScrapedAt)

	// Second upsert with changed fields leaves exactly one row with the
	// latest values and an advanced scraped_at.
	clk.Advance(time.Hour)
	rec.Title = "시니어 백엔드 개발자"
	rec.Summary = "상세 요약"
	require.NoError(t, s.Upsert(ctx, rec))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	second, err := s.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "시니어 백엔드 개발자", second.Title)
	assert.Equal(t, "상세 요약", second.Summary)
	assert.True(t, second.ScrapedAt.After(first.ScrapedAt))
}

func TestStore_RoundTripFields(t *testing.T) {
	s := openTestStore(t, nil)
	ctx := context.Background()

	rec := sampleRecord("200")
	require.NoError(t, s.Upsert(ctx, rec))

	got, err := s.Get(ctx, "200")
	require.NoError(t, err)
	assert.Equal(t, rec.Title, got.Title)
	assert.Equal(t, rec.Company, got.Company)
	assert.Equal(t, rec.Skills, got.Skills)
	assert.Equal(t, rec.PostedAt, got.PostedAt)
	assert.Equal(t, rec.URL, got.URL)
	assert.Equal(t, "", got.Summary)
	assert.False(t, got.ScrapedAt.IsZero())
}

func TestStore_GetNotFound(t *testing.T) {
	s := openTestStore(t, nil)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ListChangedSince(t *testing.T) {
	clk := &clock.Fixed{T: time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)}
	s := openTestStore(t, clk)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, sampleRecord("old")))
	cutoff := clk.T
	clk.Advance(time.Minute)
	require.NoError(t, s.Upsert(ctx, sampleRecord("new")))

	changed, err := s.ListChangedSince(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, "new", changed[0].JobID)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "new", all[0].JobID)
}

func TestStore_ConcurrentUpserts(t *testing.T) {
	s := openTestStore(t, nil)
	ctx := context.Background()

	done := make(chan error)
	for i := 0; i < 4; i++ {
		go func(i int) {
			var err error
			for j := 0; j < 10 && err == nil; j++ {
				rec := sampleRecord(string(rune('a' + i)))
				err = s.Upsert(ctx, rec)
			}
			done <- err
		}(i)
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, <-done)
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
