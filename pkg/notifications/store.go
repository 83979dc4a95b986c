package notifications

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

// Store holds the notifications of a single session, newest first.
// All methods are safe for concurrent use.
type Store struct {
	sessionID string
	items     []Notification
	toaster   Toaster
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	mu        sync.RWMutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithToaster sets the backend that presents a toast for every added notification.
func WithToaster(t Toaster) StoreOption {
	return func(s *Store) {
		if t != nil {
			s.toaster = t
		}
	}
}

// WithStoreLogger sets the logger for the Store.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for notification timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the notification id generator.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStore creates an empty store owned by the given session.
func NewStore(sessionID string, opts ...StoreOption) *Store {
	s := &Store{
		sessionID: sessionID,
		toaster:   NoOpToaster{},
		logger:    slog.Default(),
		now:       time.Now,
		newID:     NewID,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SessionID returns the id of the session owning the store.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Add records a new unread notification at the head of the collection and
// raises a toast for it. It never fails: a toast that cannot be delivered is
// logged and the notification is kept.
func (s *Store) Add(ctx context.Context, in Input) Notification {
	s.mu.Lock()
	n := Notification{
		ID:        s.uniqueID(),
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		Link:      in.Link,
		Timestamp: s.now(),
		Read:      false,
	}
	s.items = slices.Insert(s.items, 0, n)
	s.mu.Unlock()

	notificationsAdded.WithLabelValues(string(n.Type)).Inc()

	if err := s.toaster.Toast(ctx, ToastFor(s.sessionID, n)); err != nil {
		toastsFailed.Inc()
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to show toast, notification was stored",
			logger.SessionID(s.sessionID),
			logger.NotificationID(n.ID),
			logger.Error(err),
		)
	}

	return n
}

// maxIDAttempts bounds how often a custom generator may collide before
// uniqueID switches to NewID.
const maxIDAttempts = 8

// uniqueID draws ids until one is free in the current collection.
// Callers must hold the write lock.
func (s *Store) uniqueID() string {
	gen := s.newID
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			gen = NewID
		}
		id := gen()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(n Notification) bool { return n.ID == id })
}

// MarkAsRead marks the notification with the given id as read.
// Unknown ids are ignored.
func (s *Store) MarkAsRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.items[i].Read = true
	}
}

// MarkAllAsRead marks every notification as read.
func (s *Store) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		s.items[i].Read = true
	}
}

// Delete removes the notification with the given id.
// Unknown ids are ignored and leave the collection untouched.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
}

// Clear removes all notifications.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
}

// Notifications returns a copy of the collection, newest first.
func (s *Store) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the notification with the given id.
func (s *Store) Get(id string) (Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return Notification{}, false
}

// Len returns the number of notifications in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// UnreadCount returns the number of unread notifications.
// The value is computed on every call.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}
