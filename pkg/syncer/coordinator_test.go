package syncer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsread/pkg/domain"
	"github.com/umputun/newsread/pkg/network"
	"github.com/umputun/newsread/pkg/repository"
	"github.com/umputun/newsread/pkg/service"
	"github.com/umputun/newsread/pkg/syncer/mocks"
)

var techArticles = []domain.Article{{Title: "A", URL: "u1", Thumbnail: "t1"}}

func newTestStore(t *testing.T) *service.Store {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return service.NewStore(repos)
}

func newTestCoordinator(t *testing.T, store LocalStore, remote RemoteSource, conn Connectivity) *Coordinator {
	t.Helper()
	c := New(Params{Store: store, Remote: remote, Connectivity: conn, GracePeriod: 50 * time.Millisecond})
	t.Cleanup(c.Close)
	return c
}

func staticRemote(articles []domain.Article) *mocks.RemoteSourceMock {
	return &mocks.RemoteSourceMock{
		FetchArticlesFunc: func(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
			return articles, nil
		},
		FetchSummaryFunc: func(ctx context.Context, article domain.Article) (string, error) {
			return "summary of " + article.URL, nil
		},
	}
}

// next returns the next snapshot or fails after a timeout
func next(t *testing.T, ch <-chan domain.Snapshot) domain.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "channel closed")
		return snap
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no snapshot")
	}
	return domain.Snapshot{}
}

// waitSnapshot reads snapshots until one matches
func waitSnapshot(t *testing.T, ch <-chan domain.Snapshot, match func(domain.Snapshot) bool) domain.Snapshot {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case snap, ok := <-ch:
			require.True(t, ok, "channel closed")
			if match(snap) {
				return snap
			}
		case <-deadline:
			require.FailNow(t, "no matching snapshot")
			return domain.Snapshot{}
		}
	}
}

func hasArticles(snap domain.Snapshot) bool { return len(snap.Articles) > 0 }

func assertClosed(t *testing.T, ch <-chan domain.Snapshot) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			require.FailNow(t, "channel not closed")
		}
	}
}

func TestCoordinator_EmptyCacheLoadsThenShowsFetched(t *testing.T) {
	release := make(chan struct{})
	remote := staticRemote(nil)
	remote.FetchArticlesFunc = func(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
		assert.Equal(t, domain.CategoryTechnology, cat)
		<-release
		return techArticles, nil
	}
	c := newTestCoordinator(t, newTestStore(t), remote, network.NewState(true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := c.ObserveCategory(ctx, domain.CategoryTechnology)

	first := next(t, ch)
	assert.Empty(t, first.Articles)
	assert.True(t, first.Loading)
	assert.True(t, first.Online)
	assert.Equal(t, domain.CategoryTechnology, first.Category)

	close(release)
	snap := waitSnapshot(t, ch, hasArticles)
	assert.Equal(t, techArticles, snap.Articles)
	assert.False(t, snap.Loading)
	assert.True(t, c.Synced(domain.CategoryTechnology))
}

func TestCoordinator_SyncsOncePerRun(t *testing.T) {
	remote := staticRemote(techArticles)
	c := newTestCoordinator(t, newTestStore(t), remote, network.NewState(true))

	ctx1, cancel1 := context.WithCancel(context.Background())
	waitSnapshot(t, c.ObserveCategory(ctx1, domain.CategoryTechnology), hasArticles)
	cancel1()

	// second subscription, after teardown, reads the cache and doesn't fetch again
	require.Eventually(t, func() bool { return len(c.Active()) == 0 }, 2*time.Second, 10*time.Millisecond)
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	snap := next(t, c.ObserveCategory(ctx2, domain.CategoryTechnology))
	assert.Equal(t, techArticles, snap.Articles)
	assert.False(t, snap.Loading)

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, remote.FetchArticlesCalls(), 1)
}

func TestCoordinator_ConcurrentSubscribersShareSync(t *testing.T) {
	var fetches atomic.Int32
	release := make(chan struct{})
	remote := staticRemote(nil)
	remote.FetchArticlesFunc = func(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
		fetches.Add(1)
		<-release
		return techArticles, nil
	}
	c := newTestCoordinator(t, newTestStore(t), remote, network.NewState(true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	chans := make([]<-chan domain.Snapshot, 5)
	for i := range chans {
		chans[i] = c.ObserveCategory(ctx, domain.CategoryTechnology)
	}
	close(release)

	for _, ch := range chans {
		snap := waitSnapshot(t, ch, hasArticles)
		assert.Equal(t, techArticles, snap.Articles)
	}
	assert.Equal(t, int32(1), fetches.Load())
	assert.Equal(t, []domain.Category{domain.CategoryTechnology}, c.Active())
}

func TestCoordinator_WaitsForConnectivity(t *testing.T) {
	remote := staticRemote(techArticles)
	conn := network.NewState(false)
	c := newTestCoordinator(t, newTestStore(t), remote, conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := c.ObserveCategory(ctx, domain.CategoryTechnology)

	first := next(t, ch)
	assert.False(t, first.Online)
	assert.True(t, first.Loading)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, remote.FetchArticlesCalls(), "no fetch while offline")

	conn.Set(true)
	snap := waitSnapshot(t, ch, hasArticles)
	assert.True(t, snap.Online)
	assert.Equal(t, techArticles, snap.Articles)

	// connectivity changes are emitted with the cached data
	conn.Set(false)
	snap = next(t, ch)
	assert.False(t, snap.Online)
	assert.Equal(t, techArticles, snap.Articles)
	assert.Len(t, remote.FetchArticlesCalls(), 1)
}

func TestCoordinator_FetchFailure(t *testing.T) {
	store := newTestStore(t)
	cached := []domain.Article{{Title: "old", URL: "old-url"}}
	require.NoError(t, store.ReplaceArticles(context.Background(), domain.CategoryTechnology, cached))

	var fail atomic.Bool
	fail.Store(true)
	remote := staticRemote(nil)
	remote.FetchArticlesFunc = func(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
		if fail.Load() {
			return nil, errors.New("connection refused")
		}
		return techArticles, nil
	}
	c := newTestCoordinator(t, store, remote, network.NewState(true))

	ctx1, cancel1 := context.WithCancel(context.Background())
	ch := c.ObserveCategory(ctx1, domain.CategoryTechnology)
	snap := next(t, ch)
	assert.Equal(t, cached, snap.Articles, "cache served while fetching")
	require.Eventually(t, func() bool { return len(remote.FetchArticlesCalls()) == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.False(t, c.Synced(domain.CategoryTechnology))
	cancel1()
	assertClosed(t, ch)

	// rows are untouched after the failure
	require.Eventually(t, func() bool { return len(c.Active()) == 0 }, 2*time.Second, 10*time.Millisecond)
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	fail.Store(false)
	ch = c.ObserveCategory(ctx2, domain.CategoryTechnology)
	assert.Equal(t, cached, next(t, ch).Articles)

	// next subscription retries
	snap = waitSnapshot(t, ch, func(s domain.Snapshot) bool { return len(s.Articles) > 0 && s.Articles[0].URL == "u1" })
	assert.Equal(t, techArticles, snap.Articles)
	assert.True(t, c.Synced(domain.CategoryTechnology))
	assert.Len(t, remote.FetchArticlesCalls(), 2)
}

func TestCoordinator_FailedInitialSyncStopsLoading(t *testing.T) {
	remote := staticRemote(nil)
	remote.FetchArticlesFunc = func(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
		return nil, errors.New("timeout")
	}
	c := newTestCoordinator(t, newTestStore(t), remote, network.NewState(true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := c.ObserveCategory(ctx, domain.CategoryWorld)
	snap := waitSnapshot(t, ch, func(s domain.Snapshot) bool { return !s.Loading })
	assert.Empty(t, snap.Articles)
	assert.False(t, c.Synced(domain.CategoryWorld))
}

func TestCoordinator_StoreFailure(t *testing.T) {
	real := newTestStore(t)
	store := &mocks.LocalStoreMock{
		WatchArticlesFunc: real.WatchArticles,
		ReplaceArticlesFunc: func(ctx context.Context, cat domain.Category, articles []domain.Article) error {
			return errors.New("disk full")
		},
	}
	remote := staticRemote(techArticles)
	c := newTestCoordinator(t, store, remote, network.NewState(true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := c.ObserveCategory(ctx, domain.CategoryTechnology)
	snap := waitSnapshot(t, ch, func(s domain.Snapshot) bool { return !s.Loading })
	assert.Empty(t, snap.Articles)
	assert.Len(t, store.ReplaceArticlesCalls(), 1)
	assert.False(t, c.Synced(domain.CategoryTechnology))
}

func TestCoordinator_TeardownCancelsSync(t *testing.T) {
	started := make(chan struct{})
	var cancelled atomic.Bool
	remote := staticRemote(nil)
	remote.FetchArticlesFunc = func(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return techArticles, nil // late result must be discarded
	}
	store := newTestStore(t)
	c := newTestCoordinator(t, store, remote, network.NewState(true))

	ctx, cancel := context.WithCancel(context.Background())
	ch := c.ObserveCategory(ctx, domain.CategoryTechnology)
	next(t, ch)
	<-started
	cancel()
	assertClosed(t, ch)

	require.Eventually(t, cancelled.Load, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return len(c.Active()) == 0 }, 2*time.Second, 10*time.Millisecond)

	articles, err := store.GetArticles(context.Background(), domain.CategoryTechnology)
	require.NoError(t, err)
	assert.Empty(t, articles, "cancelled result not written")
	assert.False(t, c.Synced(domain.CategoryTechnology))
}

func TestCoordinator_ResubscribeWithinGracePeriod(t *testing.T) {
	var fetchCtx atomic.Pointer[context.Context]
	release := make(chan struct{})
	remote := staticRemote(nil)
	remote.FetchArticlesFunc = func(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
		fetchCtx.Store(&ctx)
		select {
		case <-release:
			return techArticles, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c := New(Params{Store: newTestStore(t), Remote: remote, Connectivity: network.NewState(true), GracePeriod: time.Second})
	defer c.Close()

	ctx1, cancel1 := context.WithCancel(context.Background())
	next(t, c.ObserveCategory(ctx1, domain.CategoryTechnology))
	require.Eventually(t, func() bool { return fetchCtx.Load() != nil }, time.Second, 10*time.Millisecond)
	cancel1()
	time.Sleep(100 * time.Millisecond) // well within grace

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	ch := c.ObserveCategory(ctx2, domain.CategoryTechnology)
	assert.True(t, next(t, ch).Loading, "replayed snapshot")

	// the running sync survived the gap
	assert.NoError(t, (*fetchCtx.Load()).Err())
	close(release)
	waitSnapshot(t, ch, hasArticles)
	assert.Len(t, remote.FetchArticlesCalls(), 1)
}

func TestCoordinator_Refresh(t *testing.T) {
	var n atomic.Int32
	remote := staticRemote(nil)
	remote.FetchArticlesFunc = func(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
		if n.Add(1) == 1 {
			return techArticles, nil
		}
		return []domain.Article{{Title: "B", URL: "u2"}}, nil
	}
	c := newTestCoordinator(t, newTestStore(t), remote, network.NewState(true))

	// refresh of an unobserved category only resets its synced state
	c.Refresh(domain.CategoryScience)
	assert.Empty(t, remote.FetchArticlesCalls())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := c.ObserveCategory(ctx, domain.CategoryTechnology)
	waitSnapshot(t, ch, hasArticles)
	require.Eventually(t, func() bool { return c.Synced(domain.CategoryTechnology) }, time.Second, 10*time.Millisecond)

	c.Refresh(domain.CategoryTechnology)
	snap := waitSnapshot(t, ch, func(s domain.Snapshot) bool { return len(s.Articles) == 1 && s.Articles[0].URL == "u2" })
	assert.False(t, snap.Loading)
	assert.Equal(t, int32(2), n.Load())
}

func TestCoordinator_RefreshDuringRunningSync(t *testing.T) {
	var n atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	remote := staticRemote(nil)
	remote.FetchArticlesFunc = func(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
		if n.Add(1) == 1 {
			close(started)
			<-release
			return techArticles, nil
		}
		return []domain.Article{{Title: "B", URL: "u2"}}, nil
	}
	c := newTestCoordinator(t, newTestStore(t), remote, network.NewState(true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := c.ObserveCategory(ctx, domain.CategoryTechnology)
	next(t, ch)
	<-started

	// refresh lands while the first fetch is still in flight
	c.Refresh(domain.CategoryTechnology)
	time.Sleep(20 * time.Millisecond)
	close(release)

	snap := waitSnapshot(t, ch, func(s domain.Snapshot) bool { return len(s.Articles) == 1 && s.Articles[0].URL == "u2" })
	assert.False(t, snap.Loading)
	require.Eventually(t, func() bool { return c.Synced(domain.CategoryTechnology) }, time.Second, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, remote.FetchArticlesCalls(), 2, "one fetch per run plus one per refresh")
}

func TestCoordinator_OfflineServesCachedRows(t *testing.T) {
	store := newTestStore(t)
	cached := []domain.Article{
		{Title: "Derby tonight", URL: "s1", Thumbnail: "st1"},
		{Title: "Cup final", URL: "s2", Thumbnail: "st2"},
	}
	require.NoError(t, store.ReplaceArticles(context.Background(), domain.CategorySports, cached))

	remote := staticRemote(techArticles)
	c := newTestCoordinator(t, store, remote, network.NewState(false))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := c.ObserveCategory(ctx, domain.CategorySports)

	snap := next(t, ch)
	assert.Equal(t, domain.CategorySports, snap.Category)
	assert.Equal(t, cached, snap.Articles)
	assert.False(t, snap.Loading, "cached rows are shown right away")
	assert.False(t, snap.Online)

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, remote.FetchArticlesCalls(), "no fetch while offline")
	assert.False(t, c.Synced(domain.CategorySports))
}

func TestCoordinator_SnapshotsNotShared(t *testing.T) {
	c := newTestCoordinator(t, newTestStore(t), staticRemote(techArticles), network.NewState(true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch1 := c.ObserveCategory(ctx, domain.CategoryTechnology)
	ch2 := c.ObserveCategory(ctx, domain.CategoryTechnology)

	snap1 := waitSnapshot(t, ch1, hasArticles)
	snap1.Articles[0].Title = "changed by the first observer"

	snap2 := waitSnapshot(t, ch2, hasArticles)
	assert.Equal(t, "A", snap2.Articles[0].Title)

	// late observers get the replayed snapshot untouched as well
	ch3 := c.ObserveCategory(ctx, domain.CategoryTechnology)
	assert.Equal(t, techArticles, next(t, ch3).Articles)
}

func TestCoordinator_DedupsSnapshots(t *testing.T) {
	remote := staticRemote(techArticles)
	conn := network.NewState(true)
	c := newTestCoordinator(t, newTestStore(t), remote, conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := c.ObserveCategory(ctx, domain.CategoryTechnology)
	waitSnapshot(t, ch, hasArticles)

	// same connectivity again is not a change
	conn.Set(true)
	select {
	case snap := <-ch:
		t.Fatalf("unexpected snapshot %+v", snap)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCoordinator_Close(t *testing.T) {
	c := New(Params{Store: newTestStore(t), Remote: staticRemote(techArticles), Connectivity: network.NewState(true)})

	ch1 := c.ObserveCategory(context.Background(), domain.CategoryTechnology)
	ch2 := c.ObserveCategory(context.Background(), domain.CategoryWorld)
	next(t, ch1)
	next(t, ch2)

	c.Close()
	assertClosed(t, ch1)
	assertClosed(t, ch2)
	assert.Empty(t, c.Active())

	// observing a closed coordinator gives a closed channel
	assertClosed(t, c.ObserveCategory(context.Background(), domain.CategoryTechnology))
}

func TestCoordinator_UnknownCategory(t *testing.T) {
	c := newTestCoordinator(t, newTestStore(t), staticRemote(nil), network.NewState(true))
	assertClosed(t, c.ObserveCategory(context.Background(), domain.Category(42)))
	assert.Empty(t, c.Active())
}

func TestCoordinator_Summary(t *testing.T) {
	article := domain.Article{Title: "A", URL: "u1"}

	t.Run("absent then persisted", func(t *testing.T) {
		remote := staticRemote(nil)
		remote.FetchSummaryFunc = func(ctx context.Context, a domain.Article) (string, error) { return "S", nil }
		c := newTestCoordinator(t, newTestStore(t), remote, network.NewState(true))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		summaries := c.WatchSummary(ctx, article)
		assert.Empty(t, <-summaries)

		require.NoError(t, c.Summarize(ctx, article))
		select {
		case s := <-summaries:
			assert.Equal(t, "S", s)
		case <-time.After(time.Second):
			t.Fatal("no summary emitted")
		}

		// a second successful summarize keeps the same value, nothing new is emitted
		require.NoError(t, c.Summarize(ctx, article))
		select {
		case s := <-summaries:
			t.Fatalf("unexpected emission %q", s)
		case <-time.After(100 * time.Millisecond):
		}
		assert.Len(t, remote.FetchSummaryCalls(), 2)
	})

	t.Run("remote failure propagates", func(t *testing.T) {
		remote := staticRemote(nil)
		remote.FetchSummaryFunc = func(ctx context.Context, a domain.Article) (string, error) {
			return "", errors.New("timeout")
		}
		store := newTestStore(t)
		c := newTestCoordinator(t, store, remote, network.NewState(true))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		summaries := c.WatchSummary(ctx, article)
		assert.Empty(t, <-summaries)

		err := c.Summarize(ctx, article)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")

		select {
		case s := <-summaries:
			t.Fatalf("unexpected emission %q", s)
		case <-time.After(100 * time.Millisecond):
		}
		summary, err := store.GetSummary(ctx, article.URL)
		require.NoError(t, err)
		assert.Empty(t, summary)
	})

	t.Run("empty remote summary is an error", func(t *testing.T) {
		remote := staticRemote(nil)
		remote.FetchSummaryFunc = func(ctx context.Context, a domain.Article) (string, error) { return " ", nil }
		c := newTestCoordinator(t, newTestStore(t), remote, network.NewState(true))
		err := c.Summarize(context.Background(), article)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to summarize")
	})

	t.Run("no url", func(t *testing.T) {
		remote := staticRemote(nil)
		c := newTestCoordinator(t, newTestStore(t), remote, network.NewState(true))
		require.Error(t, c.Summarize(context.Background(), domain.Article{Title: "x"}))
		assert.Empty(t, remote.FetchSummaryCalls())
	})

	t.Run("works offline for cached summaries", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.SaveSummary(context.Background(), article.URL, "cached"))
		c := newTestCoordinator(t, store, staticRemote(nil), network.NewState(false))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		assert.Equal(t, "cached", <-c.WatchSummary(ctx, article))
	})
}

func TestCoordinator_SummarizeCoalescesConcurrentCalls(t *testing.T) {
	release := make(chan struct{})
	remote := staticRemote(nil)
	remote.FetchSummaryFunc = func(ctx context.Context, a domain.Article) (string, error) {
		<-release
		return "S", nil
	}
	c := newTestCoordinator(t, newTestStore(t), remote, network.NewState(true))
	article := domain.Article{Title: "A", URL: "u1"}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Summarize(context.Background(), article))
		}()
	}
	require.Eventually(t, func() bool { return len(remote.FetchSummaryCalls()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond) // let the other calls join
	close(release)
	wg.Wait()
	assert.Len(t, remote.FetchSummaryCalls(), 1)
}

func TestCoordinator_DownloadMedia(t *testing.T) {
	downloader := &mocks.DownloaderMock{EnqueueFunc: func(url string) bool { return true }}
	c := New(Params{Store: newTestStore(t), Remote: staticRemote(nil), Connectivity: network.NewState(true), Downloader: downloader})
	defer c.Close()

	assert.True(t, c.DownloadMedia("https://cdn.example.com/clip.mp4"))
	require.Len(t, downloader.EnqueueCalls(), 1)
	assert.Equal(t, "https://cdn.example.com/clip.mp4", downloader.EnqueueCalls()[0].Url)

	noDownloader := newTestCoordinator(t, newTestStore(t), staticRemote(nil), network.NewState(true))
	assert.False(t, noDownloader.DownloadMedia("https://cdn.example.com/clip.mp4"))
}

func TestSyncedSet(t *testing.T) {
	s := newSyncedSet()
	assert.False(t, s.has(domain.CategoryLaw))
	s.add(domain.CategoryLaw)
	s.add(domain.CategoryLaw)
	assert.True(t, s.has(domain.CategoryLaw))
	assert.False(t, s.has(domain.CategoryTravel))
	s.remove(domain.CategoryLaw)
	assert.False(t, s.has(domain.CategoryLaw))
}
