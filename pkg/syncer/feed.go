package syncer

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsread/pkg/domain"
)

// subscriber is one observer of a category. Only the feed goroutine sends to and closes ch.
type subscriber struct {
	ch chan domain.Snapshot
}

// send replaces an unread snapshot with the new one
func (s *subscriber) send(snap domain.Snapshot) {
	snap.Articles = slices.Clone(snap.Articles) // each subscriber owns its copy
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- snap:
	default:
	}
}

// categoryFeed is the state of one observed category, owned by the run goroutine.
// refs is guarded by the coordinator mutex, everything else is touched by run only.
type categoryFeed struct {
	c    *Coordinator
	cat  domain.Category
	refs int

	ctx    context.Context // cancelled on teardown, parent of watches and sync tasks
	cancel context.CancelFunc

	subscribe   chan *subscriber
	unsubscribe chan *subscriber
	refresh     chan struct{}
	done        chan struct{}

	subs       map[*subscriber]struct{}
	articles   []domain.Article
	haveLocal  bool // first local read arrived
	online     bool
	attempted  bool // a sync attempt finished in this feed
	last       domain.Snapshot
	haveLast   bool
	syncCancel context.CancelFunc
	syncDone   chan error // nil while no sync task runs
	resync     bool       // refresh arrived while a task was running
	grace      *time.Timer
}

func newCategoryFeed(c *Coordinator, cat domain.Category) *categoryFeed {
	ctx, cancel := context.WithCancel(c.ctx)
	return &categoryFeed{
		c:           c,
		cat:         cat,
		ctx:         ctx,
		cancel:      cancel,
		subscribe:   make(chan *subscriber),
		unsubscribe: make(chan *subscriber),
		refresh:     make(chan struct{}, 1),
		done:        make(chan struct{}),
		subs:        make(map[*subscriber]struct{}),
	}
}

// run processes feed events until the grace period after the last observer expires
// or the coordinator closes
func (f *categoryFeed) run() {
	defer f.c.wg.Done()
	defer f.teardown()

	lgr.Printf("[DEBUG] %s feed started", f.cat)
	articlesCh := f.c.store.WatchArticles(f.ctx, f.cat)
	onlineCh := f.c.conn.Watch(f.ctx)
	f.online = f.c.conn.Online()

	for {
		var graceC <-chan time.Time
		if f.grace != nil {
			graceC = f.grace.C
		}

		select {
		case <-f.ctx.Done():
			f.detach()
			return

		case sub := <-f.subscribe:
			f.stopGrace()
			f.subs[sub] = struct{}{}
			if f.haveLast {
				sub.send(f.last) // replay for late observers
			}
			f.startSync()

		case sub := <-f.unsubscribe:
			if _, ok := f.subs[sub]; ok {
				delete(f.subs, sub)
				close(sub.ch)
			}
			if len(f.subs) == 0 {
				f.startGrace()
			}

		case articles, ok := <-articlesCh:
			if !ok {
				articlesCh = nil
				continue
			}
			if articles == nil {
				articles = []domain.Article{}
			}
			f.articles, f.haveLocal = articles, true
			f.emit()

		case online, ok := <-onlineCh:
			if !ok {
				onlineCh = nil
				continue
			}
			f.online = online
			f.emit()

		case err := <-f.syncDone:
			f.syncCancel()
			f.syncCancel, f.syncDone = nil, nil
			f.attempted = true
			if err != nil && !errors.Is(err, context.Canceled) {
				lgr.Printf("[WARN] sync of %s failed: %v", f.cat, err)
			}
			f.emit()
			if f.resync {
				// the finished task may have marked the category synced after the refresh cleared it
				f.resync = false
				f.c.synced.remove(f.cat)
				f.startSync()
			}

		case <-f.refresh:
			if f.syncDone != nil {
				f.resync = true
				continue
			}
			f.startSync()

		case <-graceC:
			f.grace = nil
			if f.detachIfUnused() {
				lgr.Printf("[DEBUG] %s feed stopped, no observers", f.cat)
				return
			}
		}
	}
}

// emit sends a snapshot to all subscribers if it differs from the last one.
// Nothing is sent before the local store answered.
func (f *categoryFeed) emit() {
	if !f.haveLocal {
		return
	}
	snap := domain.Snapshot{
		Category: f.cat,
		Articles: f.articles,
		Online:   f.online,
		Loading:  len(f.articles) == 0 && !f.attempted && !f.c.synced.has(f.cat),
	}
	if f.haveLast && snap.Equal(f.last) {
		return
	}
	f.last, f.haveLast = snap, true
	for sub := range f.subs {
		sub.send(snap)
	}
}

// startSync runs a sync task unless one is running already
func (f *categoryFeed) startSync() {
	if f.syncDone != nil {
		return
	}
	ctx, cancel := context.WithCancel(f.ctx)
	done := make(chan error, 1)
	f.syncCancel, f.syncDone = cancel, done

	f.c.wg.Add(1)
	go func() {
		defer f.c.wg.Done()
		done <- f.c.syncCategory(ctx, f.cat)
	}()
}

func (f *categoryFeed) startGrace() {
	f.stopGrace()
	f.grace = time.NewTimer(f.c.grace)
}

func (f *categoryFeed) stopGrace() {
	if f.grace != nil {
		f.grace.Stop()
		f.grace = nil
	}
}

// detachIfUnused removes the feed from the coordinator if nobody subscribed meanwhile
func (f *categoryFeed) detachIfUnused() bool {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	if f.refs > 0 {
		return false
	}
	if f.c.feeds[f.cat] == f {
		delete(f.c.feeds, f.cat)
	}
	return true
}

// detach removes the feed from the coordinator unconditionally
func (f *categoryFeed) detach() {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	if f.c.feeds[f.cat] == f {
		delete(f.c.feeds, f.cat)
	}
}

// teardown cancels the sync task and watches and closes subscriber channels. Cached rows stay.
func (f *categoryFeed) teardown() {
	f.stopGrace()
	f.cancel()
	close(f.done)
	for sub := range f.subs {
		close(sub.ch)
	}
	f.subs = nil
}
