package notifications

import (
	"context"
	"sync"
)

// Subscription receives the toasts of one session.
type Subscription struct {
	sessionID string
	ch        chan Toast
	done      chan struct{}
	closed    bool
	feed      *Feed
	mu        sync.RWMutex
}

// C returns the channel toasts are delivered on.
// The channel is closed when the subscription ends.
func (s *Subscription) C() <-chan Toast {
	return s.ch
}

// SessionID returns the session the subscription listens to.
func (s *Subscription) SessionID() string {
	return s.sessionID
}

// Close ends the subscription. It is idempotent.
func (s *Subscription) Close() error {
	if s.feed != nil {
		s.feed.unsubscribe(s)
		return nil
	}
	s.shutdown()
	return nil
}

func (s *Subscription) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
		close(s.done)
	}
}

// send delivers t without blocking. It returns false when the subscriber is
// closed or its buffer is full.
func (s *Subscription) send(t Toast) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- t:
		return true
	default:
		return false
	}
}

// Feed is an in-process Toaster that fans toasts out to the subscribers of
// the toast's session, typically open SSE streams.
// Slow subscribers are dropped rather than blocking the sender.
type Feed struct {
	sessions   map[string]map[*Subscription]struct{}
	bufferSize int
	closed     bool
	mu         sync.RWMutex
	cleanupWg  sync.WaitGroup
}

// NewFeed creates a feed whose subscribers buffer up to bufferSize toasts.
// A minimum buffer of 1 is enforced.
func NewFeed(bufferSize int) *Feed {
	return &Feed{
		sessions:   make(map[string]map[*Subscription]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

// Subscribe starts receiving toasts for sessionID. The subscription ends when
// ctx is cancelled, when Close is called on it, when the session is
// forgotten, or when the feed closes. Subscribing to a closed feed returns an
// already closed subscription.
func (f *Feed) Subscribe(ctx context.Context, sessionID string) *Subscription {
	sub := &Subscription{
		sessionID: sessionID,
		ch:        make(chan Toast, f.bufferSize),
		done:      make(chan struct{}),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		sub.shutdown()
		return sub
	}

	sub.feed = f
	subs, ok := f.sessions[sessionID]
	if !ok {
		subs = make(map[*Subscription]struct{})
		f.sessions[sessionID] = subs
	}
	subs[sub] = struct{}{}

	if ctx.Done() != nil {
		f.cleanupWg.Add(1)
		go func() {
			defer f.cleanupWg.Done()
			select {
			case <-ctx.Done():
				f.unsubscribe(sub)
			case <-sub.done:
			}
		}()
	}

	return sub
}

// Toast delivers t to every subscriber of t.SessionID.
// Having no subscribers is not an error: the member simply is not watching.
func (f *Feed) Toast(_ context.Context, t Toast) error {
	f.mu.RLock()
	if f.closed {
		f.mu.RUnlock()
		return ErrFeedClosed
	}

	var dropped []*Subscription
	for sub := range f.sessions[t.SessionID] {
		if !sub.send(t) {
			dropped = append(dropped, sub)
		}
	}
	f.mu.RUnlock()

	for _, sub := range dropped {
		f.unsubscribe(sub)
	}

	return nil
}

// Subscribers returns the number of live subscriptions for sessionID.
func (f *Feed) Subscribers(sessionID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.sessions[sessionID])
}

// Forget closes every subscription of sessionID.
func (f *Feed) Forget(sessionID string) {
	f.mu.Lock()
	subs := f.sessions[sessionID]
	delete(f.sessions, sessionID)
	f.mu.Unlock()

	for sub := range subs {
		sub.shutdown()
	}
}

// Close shuts the feed down and closes all subscriptions. It is idempotent.
func (f *Feed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true

	for _, subs := range f.sessions {
		for sub := range subs {
			sub.shutdown()
		}
	}
	clear(f.sessions)
	f.mu.Unlock()

	f.cleanupWg.Wait()
	return nil
}

func (f *Feed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	if subs, ok := f.sessions[sub.sessionID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(f.sessions, sub.sessionID)
		}
	}
	f.mu.Unlock()

	sub.shutdown()
}
