package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daehyun-ko/jobscout/internal/config"
	"github.com/daehyun-ko/jobscout/internal/job"
)

func TestResolveKeywordsFromFlag(t *testing.T) {
	keywords, err := resolveKeywords(5, " python , 데이터 분석가 ,", "")

	require.NoError(t, err)
	assert.Equal(t, []string{"python", "데이터 분석가"}, keywords)
}

func TestResolveKeywordsFromProfile(t *testing.T) {
	keywords, err := resolveKeywords(5, "", "3년차 백엔드 개발자인데 python을 주로 씁니다")

	require.NoError(t, err)
	require.NotEmpty(t, keywords)
	assert.Contains(t, keywords, "백엔드 개발자")
}

func TestResolveKeywordsRequiresInput(t *testing.T) {
	_, err := resolveKeywords(5, "", "")

	assert.Error(t, err)

	_, err = resolveKeywords(5, " , ,", "")
	assert.Error(t, err)
}

func TestProfileTextPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.txt")
	require.NoError(t, os.WriteFile(path, []byte("백엔드 개발자"), 0o600))

	text, err := profileText([]string{"인라인 텍스트"}, path, strings.NewReader("stdin"))
	require.NoError(t, err)
	assert.Equal(t, "인라인 텍스트", text, "argument wins over --file")

	text, err = profileText(nil, path, strings.NewReader("stdin"))
	require.NoError(t, err)
	assert.Equal(t, "백엔드 개발자", text)

	text, err = profileText(nil, "", strings.NewReader("  stdin 프로필  "))
	require.NoError(t, err)
	assert.Equal(t, "stdin 프로필", text)

	_, err = profileText(nil, "", strings.NewReader("   "))
	assert.Error(t, err)
}

func TestIDStrategySelection(t *testing.T) {
	cfg := config.Config{}

	cfg.Crawl.IDStrategy = "native"
	assert.IsType(t, job.NativeID{}, idStrategy(cfg))

	cfg.Crawl.IDStrategy = "urlhash"
	assert.IsType(t, job.URLHash{}, idStrategy(cfg))
}
