package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/umputun/newsread/pkg/web"
)

// MediaScanner finds media files embedded into article pages
type MediaScanner struct {
	client    *http.Client
	userAgent string
}

// NewMediaScanner makes a scanner with the given request timeout
func NewMediaScanner(timeout time.Duration, userAgent string) *MediaScanner {
	return &MediaScanner{client: &http.Client{Timeout: timeout}, userAgent: userAgent}
}

// Scan loads the page and returns absolute urls of its video, audio and image files
func (m *MediaScanner) Scan(ctx context.Context, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	req, err := web.NewRequest(ctx, web.Page, pageURL, m.userAgent)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, pageURL)
	}

	return DetectMedia(resp.Body, base)
}

// DetectMedia tokenizes html and collects media urls from video, audio, source and img tags,
// including lazy-loaded data-src attributes. Results are absolute, unique and in page order.
func DetectMedia(r io.Reader, base *url.URL) ([]string, error) {
	var res []string
	seen := map[string]bool{}
	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || strings.HasPrefix(ref, "data:") {
			return
		}
		u, err := url.Parse(ref)
		if err != nil {
			return
		}
		if base != nil {
			u = base.ResolveReference(u)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return
		}
		if s := u.String(); !seen[s] {
			seen[s] = true
			res = append(res, s)
		}
	}

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return res, nil
			}
			return res, fmt.Errorf("parse html: %w", z.Err())
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Video, atom.Audio, atom.Source, atom.Img:
			default:
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == "src" || a.Key == "data-src" {
					add(a.Val)
				}
			}
		}
	}
}
