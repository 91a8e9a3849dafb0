package repository

import (
	"context"
	"sync"

	"github.com/go-pkgz/lgr"
)

const topicArticles = "articles"

func topicSummary(url string) string { return "summary:" + url }

// notifier signals watchers that a table they read from was written.
// Signals are conflated, a slow watcher sees one pending signal no matter how many writes happened.
type notifier struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[chan struct{}]struct{})}
}

func (n *notifier) subscribe(topic string) (signal <-chan struct{}, cancel func()) {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	if n.subs[topic] == nil {
		n.subs[topic] = make(map[chan struct{}]struct{})
	}
	n.subs[topic][ch] = struct{}{}
	n.mu.Unlock()

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[topic], ch)
		if len(n.subs[topic]) == 0 {
			delete(n.subs, topic)
		}
	}
}

func (n *notifier) publish(topic string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[topic] {
		select {
		case ch <- struct{}{}:
		default: // signal already pending
		}
	}
}

// watchQuery runs query once right away and again after every signal on topic,
// emitting only results that differ from the previously emitted one.
// The output channel holds the latest value only and is closed when ctx is done.
func watchQuery[T any](ctx context.Context, n *notifier, topic string,
	query func(context.Context) (T, error), equal func(a, b T) bool) <-chan T {
	out := make(chan T, 1)
	// subscribe before the first read so a write between the read and the wait is not missed
	signal, unsubscribe := n.subscribe(topic)

	go func() {
		defer close(out)
		defer unsubscribe()

		var last T
		emitted := false
		for {
			v, err := query(ctx)
			switch {
			case err != nil:
				if ctx.Err() == nil {
					lgr.Printf("[WARN] watch %s: %v", topic, err)
				}
			case !emitted || !equal(last, v):
				select {
				case <-out: // drop the stale value nobody consumed yet
				default:
				}
				out <- v
				last, emitted = v, true
			}

			select {
			case <-ctx.Done():
				return
			case <-signal:
			}
		}
	}()

	return out
}
