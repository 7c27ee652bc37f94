package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, time.November, 20, 12, 0, 0, 0, time.UTC)

func TestNormalizeSkills(t *testing.T) {
	t.Run("splits on source separators", func(t *testing.T) {
		got := NormalizeSkills([]string{"Python/SQL, AWS|Docker"})
		assert.Equal(t, []string{"python", "sql", "aws", "docker"}, got)
	})

	t.Run("applies synonyms and drops duplicates in order", func(t *testing.T) {
		got := NormalizeSkills([]string{"Python3", "파이토치", "python", "sklearn", "PyTorch"})
		assert.Equal(t, []string{"python", "파이토치", "scikit-learn", "torch"}, got)
	})

	t.Run("keeps language punctuation", func(t *testing.T) {
		got := NormalizeSkills([]string{"C#", "C++", ".NET"})
		assert.Equal(t, []string{"c#", "c++", ".net"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NormalizeSkills(nil))
		assert.Empty(t, NormalizeSkills([]string{"", "  ", "/|,"}))
	})
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already iso", "2025-01-02", "2025-01-02"},
		{"iso with suffix", "2025-01-02T09:30:00", "2025-01-02"},
		{"dotted absolute", "2025.01.02", "2025-01-02"},
		{"slashed absolute", "2025/01/02", "2025-01-02"},
		{"deadline with weekday", "~11.11(월)", "2025-11-11"},
		{"deadline without tilde", "11.11", "2025-11-11"},
		{"relative days", "3일 전", "2025-11-17"},
		{"today", "오늘", "2025-11-20"},
		{"yesterday", "어제", "2025-11-19"},
		{"unparseable preserved", "상시채용", "상시채용"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeDate(tc.in, testNow))
		})
	}
}

func TestNormalize(t *testing.T) {
	rec := Record{
		Title:    "백엔드 개발자",
		Skills:   []string{"Python, Python3", "Django"},
		PostedAt: "3일 전",
		DueDate:  "~12.01(월)",
		URL:      "https://example.com/job?rec_idx=1",
	}
	got := Normalize(rec, testNow)
	assert.Equal(t, []string{"python", "django"}, got.Skills)
	assert.Equal(t, "2025-11-17", got.PostedAt)
	assert.Equal(t, "2025-12-01", got.DueDate)
	assert.Equal(t, rec.URL, got.URL)
}
