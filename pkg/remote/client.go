// Package remote fetches article listings and summaries from the network
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newsread/pkg/config"
	"github.com/umputun/newsread/pkg/domain"
)

const (
	actionGetArticles = "get-articles"
	actionSummarize   = "summarize-article-content"
)

// Client talks to the scraper endpoint which does the site scraping and summarization
type Client struct {
	endpoint  string
	siteURL   string
	userAgent string
	client    *http.Client
	strict    *bluemonday.Policy
}

// articlesResponse is the scraper answer for a category listing
type articlesResponse struct {
	Count    int `json:"count"`
	Articles []struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		Summary   string `json:"summary"`
		Thumbnail string `json:"thumbnail"`
	} `json:"articles"`
}

// summaryResponse is the scraper answer for a summarization request
type summaryResponse struct {
	Summary string `json:"summary"`
}

// NewClient makes a scraper client
func NewClient(cfg config.RemoteConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:  cfg.Endpoint,
		siteURL:   strings.TrimSuffix(cfg.SiteURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
		strict:    bluemonday.StrictPolicy(),
	}
}

// FetchArticles returns the current listing of a category. Entries without url or title are dropped.
func (c *Client) FetchArticles(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
	pageURL := fmt.Sprintf("%s/%s.htm", c.siteURL, cat.Param())

	var resp articlesResponse
	if err := c.get(ctx, pageURL, actionGetArticles, &resp); err != nil {
		return nil, fmt.Errorf("fetch articles for %s: %w", cat, err)
	}

	articles := make([]domain.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		article := domain.Article{
			Title:     c.plainText(a.Title),
			URL:       strings.TrimSpace(a.URL),
			Summary:   c.plainText(a.Summary),
			Thumbnail: strings.TrimSpace(a.Thumbnail),
		}
		if article.URL == "" || article.Title == "" {
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// FetchSummary asks the scraper to summarize the article content
func (c *Client) FetchSummary(ctx context.Context, article domain.Article) (string, error) {
	var resp summaryResponse
	if err := c.get(ctx, article.URL, actionSummarize, &resp); err != nil {
		return "", fmt.Errorf("fetch summary for %s: %w", article.URL, err)
	}
	summary := c.plainText(resp.Summary)
	if summary == "" {
		return "", fmt.Errorf("unable to summarize news content of %s", article.URL)
	}
	return summary, nil
}

// get calls the endpoint with the target url and action and decodes the json answer into res
func (c *Client) get(ctx context.Context, target, action string, res any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", target)
	q.Set("action", action)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// plainText strips markup and html entities
func (c *Client) plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.strict.Sanitize(s)))
}
