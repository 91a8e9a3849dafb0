// Package syncer keeps the local article cache in sync with the remote source.
//
// Readers always get data from the local store. A category is fetched from the remote source
// while somebody observes it, once per process run, and only when the network is up.
// Summaries are read locally and requested from the remote source on demand.
package syncer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/newsread/pkg/domain"
)

//go:generate moq -out mocks/local_store.go -pkg mocks -skip-ensure -fmt goimports . LocalStore
//go:generate moq -out mocks/remote_source.go -pkg mocks -skip-ensure -fmt goimports . RemoteSource
//go:generate moq -out mocks/downloader.go -pkg mocks -skip-ensure -fmt goimports . Downloader

const defaultGracePeriod = 5 * time.Second

// LocalStore is the persisted cache of articles and summaries
type LocalStore interface {
	WatchArticles(ctx context.Context, cat domain.Category) <-chan []domain.Article
	ReplaceArticles(ctx context.Context, cat domain.Category, articles []domain.Article) error
	WatchSummary(ctx context.Context, url string) <-chan string
	SaveSummary(ctx context.Context, url, summary string) error
}

// RemoteSource provides fresh listings and summaries, no caching
type RemoteSource interface {
	FetchArticles(ctx context.Context, cat domain.Category) ([]domain.Article, error)
	FetchSummary(ctx context.Context, article domain.Article) (string, error)
}

// Connectivity reports network availability. Watch sends the current value first.
type Connectivity interface {
	Online() bool
	Watch(ctx context.Context) <-chan bool
}

// Downloader accepts media urls for background download
type Downloader interface {
	Enqueue(url string) bool
}

// Params defines coordinator dependencies and settings
type Params struct {
	Store        LocalStore
	Remote       RemoteSource
	Connectivity Connectivity
	Downloader   Downloader    // optional
	GracePeriod  time.Duration // how long a category stays active after its last observer left, 5s by default
}

// Coordinator merges the local cache with connectivity into per-category snapshots
// and decides when categories are fetched from the remote source
type Coordinator struct {
	store      LocalStore
	remote     RemoteSource
	conn       Connectivity
	downloader Downloader
	grace      time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	feeds  map[domain.Category]*categoryFeed
	closed bool

	synced    *syncedSet
	summaries singleflight.Group
}

// New makes a coordinator. Background work lives until Close.
func New(p Params) *Coordinator {
	grace := p.GracePeriod
	if grace == 0 {
		grace = defaultGracePeriod
	}
	if grace < 0 {
		grace = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		store:      p.Store,
		remote:     p.Remote,
		conn:       p.Connectivity,
		downloader: p.Downloader,
		grace:      grace,
		ctx:        ctx,
		cancel:     cancel,
		feeds:      make(map[domain.Category]*categoryFeed),
		synced:     newSyncedSet(),
	}
}

// Close stops all category feeds and sync tasks and closes observer channels.
// Cached data is kept.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
}

// ObserveCategory subscribes to a category. The channel gets a snapshot after the first local read
// and then on every change, a slow reader sees only the latest one. Subscribing starts a sync of the
// category unless one is already running or the category was synced before. The channel is closed
// when ctx is done or the coordinator is closed.
func (c *Coordinator) ObserveCategory(ctx context.Context, cat domain.Category) <-chan domain.Snapshot {
	sub := &subscriber{ch: make(chan domain.Snapshot, 1)}
	if !cat.Valid() {
		lgr.Printf("[WARN] observe of unknown %s", cat)
		close(sub.ch)
		return sub.ch
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(sub.ch)
		return sub.ch
	}
	feed, ok := c.feeds[cat]
	if !ok {
		feed = newCategoryFeed(c, cat)
		c.feeds[cat] = feed
		c.wg.Add(1)
		go feed.run()
	}
	feed.refs++ // counted under the lock, so the feed can't tear down before the subscription arrives
	c.mu.Unlock()

	select {
	case feed.subscribe <- sub:
	case <-feed.done:
		close(sub.ch)
		return sub.ch
	}

	go func() {
		select {
		case <-ctx.Done():
		case <-feed.done:
			return
		}
		c.mu.Lock()
		feed.refs--
		c.mu.Unlock()
		select {
		case feed.unsubscribe <- sub:
		case <-feed.done:
		}
	}()

	return sub.ch
}

// Refresh forgets that the category was synced and, if it is observed, fetches it again
func (c *Coordinator) Refresh(cat domain.Category) {
	c.synced.remove(cat)
	c.mu.Lock()
	feed := c.feeds[cat]
	c.mu.Unlock()
	if feed == nil {
		lgr.Printf("[DEBUG] refresh of %s, not observed", cat)
		return
	}
	select {
	case feed.refresh <- struct{}{}:
	default: // refresh already pending
	}
}

// Synced reports whether the category was fetched successfully during this run
func (c *Coordinator) Synced(cat domain.Category) bool {
	return c.synced.has(cat)
}

// Online returns the current connectivity
func (c *Coordinator) Online() bool {
	return c.conn.Online()
}

// Active returns observed categories, including those within the grace period
func (c *Coordinator) Active() []domain.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]domain.Category, 0, len(c.feeds))
	for _, cat := range domain.Categories() {
		if _, ok := c.feeds[cat]; ok {
			res = append(res, cat)
		}
	}
	return res
}

// WatchSummary streams the stored summary of the article, empty string while there is none
func (c *Coordinator) WatchSummary(ctx context.Context, article domain.Article) <-chan string {
	return c.store.WatchSummary(ctx, article.URL)
}

// Summarize requests a summary from the remote source and stores it.
// Concurrent calls for the same url share one remote request.
func (c *Coordinator) Summarize(ctx context.Context, article domain.Article) error {
	if article.URL == "" {
		return fmt.Errorf("unable to summarize news content, article has no url")
	}
	_, err, shared := c.summaries.Do(article.URL, func() (any, error) {
		summary, err := c.remote.FetchSummary(ctx, article)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", article.URL, err)
		}
		if strings.TrimSpace(summary) == "" {
			return nil, fmt.Errorf("unable to summarize news content of %s", article.URL)
		}
		if err := c.store.SaveSummary(ctx, article.URL, summary); err != nil {
			return nil, fmt.Errorf("save summary of %s: %w", article.URL, err)
		}
		lgr.Printf("[INFO] summarized %s", article.URL)
		return summary, nil
	})
	if shared {
		lgr.Printf("[DEBUG] summary request for %s shared with a concurrent call", article.URL)
	}
	return err
}

// DownloadMedia hands the url to the downloader, returns false if it was not accepted
func (c *Coordinator) DownloadMedia(url string) bool {
	if c.downloader == nil {
		lgr.Printf("[WARN] no downloader, %s ignored", url)
		return false
	}
	return c.downloader.Enqueue(url)
}

// syncCategory waits for the network, fetches the category and replaces its cached rows.
// A category synced before is skipped. Failures leave the cache untouched and the category unsynced.
func (c *Coordinator) syncCategory(ctx context.Context, cat domain.Category) error {
	if err := c.waitOnline(ctx); err != nil {
		return err
	}
	if c.synced.has(cat) {
		lgr.Printf("[DEBUG] %s already synced, skip", cat)
		return nil
	}

	articles, err := c.remote.FetchArticles(ctx, cat)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", cat, err)
	}
	if ctx.Err() != nil {
		return ctx.Err() // cancelled while fetching, discard the result
	}

	if err := c.store.ReplaceArticles(ctx, cat, articles); err != nil {
		return fmt.Errorf("store %s: %w", cat, err)
	}
	c.synced.add(cat)
	lgr.Printf("[INFO] synced %s, %d articles", cat, len(articles))
	return nil
}

// waitOnline blocks until connectivity is up or ctx is done
func (c *Coordinator) waitOnline(ctx context.Context) error {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	updates := c.conn.Watch(wctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case online, ok := <-updates:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("connectivity watch closed")
			}
			if online {
				return nil
			}
		}
	}
}

// syncedSet is the set of categories fetched successfully during this run
type syncedSet struct {
	mu   sync.Mutex
	cats map[domain.Category]struct{}
}

func newSyncedSet() *syncedSet {
	return &syncedSet{cats: make(map[domain.Category]struct{})}
}

func (s *syncedSet) has(cat domain.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cats[cat]
	return ok
}

func (s *syncedSet) add(cat domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cats[cat] = struct{}{}
}

func (s *syncedSet) remove(cat domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cats, cat)
}
