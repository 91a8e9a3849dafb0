// Package network tracks whether the host can reach the network
package network

import (
	"context"
	"sync"
)

// State holds the current connectivity flag and fans out its changes to watchers
type State struct {
	mu     sync.Mutex
	online bool
	subs   map[chan bool]struct{}
}

// NewState makes a state with the initial value
func NewState(online bool) *State {
	return &State{online: online, subs: make(map[chan bool]struct{})}
}

// Online returns the current connectivity
func (s *State) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// Set updates connectivity, returns true if the value changed
func (s *State) Set(online bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.online == online {
		return false
	}
	s.online = online
	for ch := range s.subs {
		select {
		case <-ch: // replace a value the watcher hasn't read yet
		default:
		}
		select {
		case ch <- online:
		default:
		}
	}
	return true
}

// Watch emits the current value right away and then every change.
// A slow reader gets the latest value only. The channel is closed when ctx is done.
func (s *State) Watch(ctx context.Context) <-chan bool {
	ch := make(chan bool, 1)
	s.mu.Lock()
	ch <- s.online
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}
