package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

const (
	reasonClosed  = "closed"
	reasonIdle    = "idle"
	reasonEvicted = "evicted"
)

// DefaultMaxSessions caps the number of stores a Registry keeps open.
const DefaultMaxSessions = 10000

type registryEntry struct {
	store    *Store
	lastSeen time.Time
}

// Registry owns the notification stores of all live sessions.
// A store is created when its session is first opened and discarded when the
// session closes, goes idle, or is evicted to respect the session cap.
type Registry struct {
	entries     map[string]*registryEntry
	toaster     Toaster
	storeOpts   []StoreOption
	maxSessions int
	onClose     []func(sessionID string)
	alive       []func(sessionID string) bool
	now         func() time.Time
	logger      *slog.Logger
	mu          sync.Mutex
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMaxSessions limits how many stores are kept. When the limit is reached
// the least recently seen session is evicted. Default is DefaultMaxSessions.
func WithMaxSessions(limit int) RegistryOption {
	return func(r *Registry) {
		if limit > 0 {
			r.maxSessions = limit
		}
	}
}

// WithOnClose registers a callback invoked after a session store is discarded.
func WithOnClose(fn func(sessionID string)) RegistryOption {
	return func(r *Registry) {
		if fn != nil {
			r.onClose = append(r.onClose, fn)
		}
	}
}

// WithKeepAlive registers a check consulted by Sweep. Sessions it reports as
// alive, such as those holding an open toast stream, count as active.
func WithKeepAlive(fn func(sessionID string) bool) RegistryOption {
	return func(r *Registry) {
		if fn != nil {
			r.alive = append(r.alive, fn)
		}
	}
}

// WithStoreOptions sets options applied to every store the registry creates.
func WithStoreOptions(opts ...StoreOption) RegistryOption {
	return func(r *Registry) {
		r.storeOpts = append(r.storeOpts, opts...)
	}
}

// WithRegistryClock overrides the time source used to track session activity.
func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRegistryLogger sets the logger for the Registry and the stores it creates.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates a registry whose stores raise toasts through toaster.
// A nil toaster disables toasts.
func NewRegistry(toaster Toaster, opts ...RegistryOption) *Registry {
	if toaster == nil {
		toaster = NoOpToaster{}
	}

	r := &Registry{
		entries:     make(map[string]*registryEntry),
		toaster:     toaster,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Open returns the store of the given session, creating it on first use.
// Every call counts as session activity.
func (r *Registry) Open(sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	r.mu.Lock()
	now := r.now()
	if e, ok := r.entries[sessionID]; ok {
		e.lastSeen = now
		r.mu.Unlock()
		return e.store, nil
	}

	var evicted []string
	for len(r.entries) >= r.maxSessions {
		id := r.oldest()
		r.remove(id)
		evicted = append(evicted, id)
	}

	opts := make([]StoreOption, 0, len(r.storeOpts)+2)
	opts = append(opts, WithToaster(r.toaster), WithStoreLogger(r.logger))
	opts = append(opts, r.storeOpts...)

	store := NewStore(sessionID, opts...)
	r.entries[sessionID] = &registryEntry{store: store, lastSeen: now}
	activeSessions.Inc()
	r.mu.Unlock()

	for _, id := range evicted {
		r.closed(id, reasonEvicted)
	}

	return store, nil
}

// Lookup returns the store of an open session without creating one.
func (r *Registry) Lookup(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.store, true
}

// Close discards the store of the given session.
// It reports whether the session was open.
func (r *Registry) Close(sessionID string) bool {
	r.mu.Lock()
	_, ok := r.entries[sessionID]
	if ok {
		r.remove(sessionID)
	}
	r.mu.Unlock()

	if ok {
		r.closed(sessionID, reasonClosed)
	}
	return ok
}

// Sweep discards sessions that have not been seen for longer than idle and
// returns how many were removed. Sessions reported alive by a keep-alive
// check are marked as seen instead.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	now := r.now()
	cutoff := now.Add(-idle)
	var stale []string
	for id, e := range r.entries {
		if !e.lastSeen.Before(cutoff) {
			continue
		}
		if r.isAlive(id) {
			e.lastSeen = now
			continue
		}
		stale = append(stale, id)
	}
	for _, id := range stale {
		r.remove(id)
	}
	r.mu.Unlock()

	for _, id := range stale {
		r.closed(id, reasonIdle)
	}

	if len(stale) > 0 {
		r.logger.LogAttrs(context.Background(), slog.LevelDebug, "Swept idle notification sessions",
			logger.Component("notifications"),
			slog.Int("count", len(stale)),
		)
	}

	return len(stale)
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

func (r *Registry) isAlive(sessionID string) bool {
	for _, fn := range r.alive {
		if fn(sessionID) {
			return true
		}
	}
	return false
}

// oldest returns the least recently seen session. Callers must hold the lock.
func (r *Registry) oldest() string {
	var (
		oldestID   string
		oldestSeen time.Time
	)
	for id, e := range r.entries {
		if oldestID == "" || e.lastSeen.Before(oldestSeen) {
			oldestID, oldestSeen = id, e.lastSeen
		}
	}
	return oldestID
}

// remove drops an entry. Callers must hold the lock.
func (r *Registry) remove(sessionID string) {
	delete(r.entries, sessionID)
	activeSessions.Dec()
}

// closed runs close callbacks outside the lock.
func (r *Registry) closed(sessionID, reason string) {
	sessionsClosed.WithLabelValues(reason).Inc()
	for _, fn := range r.onClose {
		fn(sessionID)
	}
}
