// Package feed reads category listings from the site's RSS feeds
package feed

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/newsread/pkg/domain"
	"github.com/umputun/newsread/pkg/web"
)

// Parser fetches RSS/Atom feeds and converts their items to articles
type Parser struct {
	client    *http.Client
	userAgent string
	strict    *bluemonday.Policy
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		strict:    bluemonday.StrictPolicy(),
	}
}

// Parse fetches a feed and returns its items as articles, in feed order.
// Items without a link or title are skipped.
func (p *Parser) Parse(ctx context.Context, url string) ([]domain.Article, error) {
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	result := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		article := domain.Article{
			Title:     p.plainText(item.Title),
			URL:       strings.TrimSpace(item.Link),
			Summary:   p.plainText(item.Description),
			Thumbnail: thumbnail(item),
		}
		if article.URL == "" || article.Title == "" {
			continue
		}
		result = append(result, article)
	}

	return result, nil
}

// plainText strips markup and html entities
func (p *Parser) plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(p.strict.Sanitize(s)))
}

// thumbnail picks the item image, an image enclosure or the first img in the description
func thumbnail(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	if !strings.Contains(item.Description, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(item.Description))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return strings.TrimSpace(src)
}

// fetch retrieves content from a URL
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := web.NewRequest(ctx, web.Feed, url, p.userAgent)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
