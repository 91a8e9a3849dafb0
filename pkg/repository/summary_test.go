package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsread/pkg/domain"
)

func TestSummaryRepository_SaveSummary(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	url := "https://example.com/a.htm"

	summary, err := repos.Summary.GetSummary(ctx, url)
	require.NoError(t, err)
	assert.Empty(t, summary, "absent summary is empty")

	require.NoError(t, repos.Summary.SaveSummary(ctx, url, "S1"))
	require.NoError(t, repos.Summary.SaveSummary(ctx, url, "S1"))

	var count int
	require.NoError(t, repos.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM summaries WHERE url = ?", url))
	assert.Equal(t, 1, count, "saving the same summary twice keeps one row")

	require.NoError(t, repos.Summary.SaveSummary(ctx, url, "S2"))
	summary, err = repos.Summary.GetSummary(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "S2", summary)
}

func TestSummaryRepository_SurvivesArticleReplace(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	url := "https://example.com/a.htm"

	require.NoError(t, repos.Article.ReplaceArticles(ctx, 4, []domain.Article{{Title: "a", URL: url}}))
	require.NoError(t, repos.Summary.SaveSummary(ctx, url, "kept"))
	require.NoError(t, repos.Article.ReplaceArticles(ctx, 4, nil))

	summary, err := repos.Summary.GetSummary(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "kept", summary)
}

func TestSummaryRepository_WatchSummary(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url := "https://example.com/a.htm"

	ch := repos.Summary.WatchSummary(ctx, url)
	select {
	case got := <-ch:
		assert.Empty(t, got)
	case <-time.After(time.Second):
		t.Fatal("no initial emission")
	}

	// summary of a different article doesn't wake this watcher
	require.NoError(t, repos.Summary.SaveSummary(ctx, "https://example.com/other.htm", "other"))
	require.NoError(t, repos.Summary.SaveSummary(ctx, url, "S"))
	select {
	case got := <-ch:
		assert.Equal(t, "S", got)
	case <-time.After(time.Second):
		t.Fatal("no emission after save")
	}

	// same value again is not re-emitted
	require.NoError(t, repos.Summary.SaveSummary(ctx, url, "S"))
	select {
	case got := <-ch:
		t.Fatalf("unexpected emission %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}
