package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/umputun/newsread/pkg/domain"
)

//go:generate moq -out mocks/feed_parser.go -pkg mocks -skip-ensure -fmt goimports . FeedParser
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer

// FeedParser reads a feed into articles
type FeedParser interface {
	Parse(ctx context.Context, url string) ([]domain.Article, error)
}

// Extractor pulls readable text out of an article page
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Summarizer turns article text into a short summary
type Summarizer interface {
	Summarize(ctx context.Context, title, content string) (string, error)
}

// Direct reads listings from the site's RSS feeds and summarizes articles with an LLM,
// doing locally what the scraper endpoint does
type Direct struct {
	feedTemplate string
	feeds        FeedParser
	extractor    Extractor
	summarizer   Summarizer
}

// NewDirect makes a direct source. feedTemplate has a {category} placeholder for the category param.
func NewDirect(feedTemplate string, feeds FeedParser, extractor Extractor, summarizer Summarizer) *Direct {
	return &Direct{feedTemplate: feedTemplate, feeds: feeds, extractor: extractor, summarizer: summarizer}
}

// FetchArticles returns the category feed items
func (d *Direct) FetchArticles(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
	feedURL := strings.ReplaceAll(d.feedTemplate, "{category}", cat.Param())
	articles, err := d.feeds.Parse(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch articles for %s: %w", cat, err)
	}
	return articles, nil
}

// FetchSummary extracts the article text and summarizes it
func (d *Direct) FetchSummary(ctx context.Context, article domain.Article) (string, error) {
	text, err := d.extractor.Extract(ctx, article.URL)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", article.URL, err)
	}
	summary, err := d.summarizer.Summarize(ctx, article.Title, text)
	if err != nil {
		return "", fmt.Errorf("summarize %s: %w", article.URL, err)
	}
	if summary = strings.TrimSpace(summary); summary == "" {
		return "", fmt.Errorf("unable to summarize news content of %s", article.URL)
	}
	return summary, nil
}
