// Package download saves media files referenced by articles to the local disk
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsread/pkg/config"
	"github.com/umputun/newsread/pkg/web"
)

// Downloader fetches queued media urls with a bounded pool of workers
type Downloader struct {
	dir       string
	workers   int
	userAgent string
	client    *http.Client
	queue     chan string
}

// statusError is returned for non-2xx responses
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.code)
}

// New makes a downloader saving files into cfg.Dir
func New(cfg config.DownloadConfig, userAgent string) *Downloader {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 2
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Downloader{
		dir:       cfg.Dir,
		workers:   workers,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		queue:     make(chan string, queueSize),
	}
}

// Enqueue schedules a download without waiting for it. Returns false if the queue is full
// and the url was dropped.
func (d *Downloader) Enqueue(mediaURL string) bool {
	select {
	case d.queue <- mediaURL:
		lgr.Printf("[DEBUG] queued download %s", mediaURL)
		return true
	default:
		lgr.Printf("[WARN] download queue is full, dropped %s", mediaURL)
		return false
	}
}

// Run processes the queue until ctx is done, then waits for in-flight downloads to stop
func (d *Downloader) Run(ctx context.Context) error {
	g := new(errgroup.Group)
	g.SetLimit(d.workers)

	for {
		select {
		case <-ctx.Done():
			_ = g.Wait()
			return ctx.Err()
		case mediaURL := <-d.queue:
			g.Go(func() error {
				path, err := d.Download(ctx, mediaURL)
				if err != nil {
					lgr.Printf("[WARN] download %s failed: %v", mediaURL, err)
					return nil // one failed file doesn't stop the others
				}
				lgr.Printf("[INFO] downloaded %s to %s", mediaURL, path)
				return nil
			})
		}
	}
}

// Download saves mediaURL into the download dir under the last segment of the url path and
// returns the file path. Transport errors and 5xx responses are retried.
func (d *Downloader) Download(ctx context.Context, mediaURL string) (string, error) {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported url %q", mediaURL)
	}
	if err := os.MkdirAll(d.dir, 0o750); err != nil {
		return "", fmt.Errorf("make download dir: %w", err)
	}
	dest := filepath.Join(d.dir, fileName(u))

	var permanent error
	retrier := repeater.NewBackoff(3, 200*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err = retrier.Do(ctx, func() error {
		err := d.fetch(ctx, u.String(), dest)
		var se *statusError
		if errors.As(err, &se) && se.code < 500 {
			permanent = err
			return nil
		}
		return err
	})
	if permanent != nil {
		return "", fmt.Errorf("download %s: %w", mediaURL, permanent)
	}
	if err != nil {
		return "", fmt.Errorf("download %s: %w", mediaURL, err)
	}
	return dest, nil
}

// fetch writes the response body to a temp file next to dest and renames it on success,
// so a partial file never appears under the final name
func (d *Downloader) fetch(ctx context.Context, mediaURL, dest string) error {
	req, err := web.NewRequest(ctx, web.Media, mediaURL, d.userAgent)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("rename to %s: %w", dest, err)
	}
	return nil
}

// fileName is the last path segment of u, or "download" if the path has none
func fileName(u *url.URL) string {
	name := path.Base(u.Path)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "download"
	}
	return name
}
