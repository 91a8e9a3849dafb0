package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsread/pkg/content"
	"github.com/umputun/newsread/pkg/domain"
	"github.com/umputun/newsread/pkg/remote/mocks"
)

func TestDirect_FetchArticles(t *testing.T) {
	feeds := &mocks.FeedParserMock{
		ParseFunc: func(ctx context.Context, url string) ([]domain.Article, error) {
			if url == "https://dantri.com.vn/rss/the-thao.rss" {
				return []domain.Article{{Title: "goal", URL: "https://dantri.com.vn/goal.htm"}}, nil
			}
			return nil, errors.New("feed not found")
		},
	}
	d := NewDirect("https://dantri.com.vn/rss/{category}.rss", feeds, nil, nil)

	articles, err := d.FetchArticles(context.Background(), domain.CategorySports)
	require.NoError(t, err)
	assert.Equal(t, []domain.Article{{Title: "goal", URL: "https://dantri.com.vn/goal.htm"}}, articles)

	_, err = d.FetchArticles(context.Background(), domain.CategoryLaw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed not found")
	assert.Len(t, feeds.ParseCalls(), 2)
}

func TestDirect_FetchSummary(t *testing.T) {
	article := domain.Article{Title: "A", URL: "https://dantri.com.vn/a.htm"}

	t.Run("success", func(t *testing.T) {
		extractor := &mocks.ExtractorMock{
			ExtractFunc: func(ctx context.Context, url string) (string, error) { return "full text", nil },
		}
		summarizer := &mocks.SummarizerMock{
			SummarizeFunc: func(ctx context.Context, title, content string) (string, error) {
				return " short ", nil
			},
		}
		d := NewDirect("", nil, extractor, summarizer)

		summary, err := d.FetchSummary(context.Background(), article)
		require.NoError(t, err)
		assert.Equal(t, "short", summary)
		require.Len(t, summarizer.SummarizeCalls(), 1)
		assert.Equal(t, "A", summarizer.SummarizeCalls()[0].Title)
		assert.Equal(t, "full text", summarizer.SummarizeCalls()[0].Content)
		assert.Equal(t, article.URL, extractor.ExtractCalls()[0].Url)
	})

	t.Run("extract failure", func(t *testing.T) {
		extractor := &mocks.ExtractorMock{
			ExtractFunc: func(ctx context.Context, url string) (string, error) { return "", errors.New("timeout") },
		}
		summarizer := &mocks.SummarizerMock{}
		_, err := NewDirect("", nil, extractor, summarizer).FetchSummary(context.Background(), article)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
		assert.Empty(t, summarizer.SummarizeCalls())
	})

	t.Run("empty summary", func(t *testing.T) {
		extractor := &mocks.ExtractorMock{
			ExtractFunc: func(ctx context.Context, url string) (string, error) { return "text", nil },
		}
		summarizer := &mocks.SummarizerMock{
			SummarizeFunc: func(ctx context.Context, title, content string) (string, error) { return "", nil },
		}
		_, err := NewDirect("", nil, extractor, summarizer).FetchSummary(context.Background(), article)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to summarize")
	})
}

func TestDirect_FetchSummaryExtractsPage(t *testing.T) {
	const body = "Ngân hàng Nhà nước vừa công bố điều chỉnh lãi suất điều hành, có hiệu lực từ đầu tháng tới."
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>Lãi suất</title></head><body><article><p>` + body + `</p></article></body></html>`))
	}))
	defer ts.Close()
	article := domain.Article{Title: "Lãi suất điều hành giảm", URL: ts.URL + "/kinh-doanh/lai-suat.htm"}
	runes := utf8.RuneCountInString(body)
	require.Greater(t, len(body), runes+20, "multi-byte text")

	t.Run("extracted text goes to the summarizer", func(t *testing.T) {
		summarizer := &mocks.SummarizerMock{
			SummarizeFunc: func(ctx context.Context, title, text string) (string, error) { return "Lãi suất giảm.", nil },
		}
		d := NewDirect("", nil, content.NewHTTPExtractor(time.Second, "test", runes), summarizer)

		summary, err := d.FetchSummary(context.Background(), article)
		require.NoError(t, err)
		assert.Equal(t, "Lãi suất giảm.", summary)
		require.Len(t, summarizer.SummarizeCalls(), 1)
		assert.Equal(t, article.Title, summarizer.SummarizeCalls()[0].Title)
		assert.Contains(t, summarizer.SummarizeCalls()[0].Content, "lãi suất điều hành")
	})

	t.Run("page shorter than the minimum in characters", func(t *testing.T) {
		// byte length passes the threshold, character count doesn't
		summarizer := &mocks.SummarizerMock{}
		d := NewDirect("", nil, content.NewHTTPExtractor(time.Second, "test", runes+20), summarizer)

		_, err := d.FetchSummary(context.Background(), article)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "article content not found")
		assert.Empty(t, summarizer.SummarizeCalls())
	})
}
