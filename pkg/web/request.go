// Package web builds outgoing requests for news pages, feeds and media files.
// Several Vietnamese news sites answer bare client requests with 403 or a captcha page,
// so requests carry the headers a reader's browser would send.
package web

import (
	"context"
	"fmt"
	"net/http"
)

// Kind of the requested resource, selects the Accept header
type Kind int

// resource kinds
const (
	Page Kind = iota
	Feed
	Media
)

var accept = map[Kind]string{
	Page:  "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	Feed:  "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5",
	Media: "video/*,audio/*,image/*,*/*;q=0.8",
}

// AcceptLanguage prefers Vietnamese, the language of the sources
const AcceptLanguage = "vi-VN,vi;q=0.9,en-US;q=0.8,en;q=0.7"

// NewRequest makes a GET request for url with browser-like headers.
// Empty userAgent keeps the default one of the http client.
// Accept-Encoding is left to the transport, so compressed bodies are decoded transparently.
func NewRequest(ctx context.Context, kind Kind, url, userAgent string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	a, ok := accept[kind]
	if !ok {
		a = "*/*"
	}
	req.Header.Set("Accept", a)
	req.Header.Set("Accept-Language", AcceptLanguage)
	req.Header.Set("Cache-Control", "no-cache")

	if kind == Page {
		// navigation hints, checked by some bot filters in front of article pages
		req.Header.Set("Upgrade-Insecure-Requests", "1")
		req.Header.Set("Sec-Fetch-Dest", "document")
		req.Header.Set("Sec-Fetch-Mode", "navigate")
		req.Header.Set("Sec-Fetch-Site", "none")
	}
	return req, nil
}
