package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

const (
	DefaultCookieName = "lodge_session"
	DefaultHeaderName = "X-Session-ID"
)

// Manager issues and reads anonymous browser session ids. Ids are UUIDs; any
// other value presented by a client is replaced with a fresh one.
type Manager struct {
	transport Transport
	ttl       time.Duration
	newID     func() string
	onEnd     []func(ctx context.Context, id string)
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

func WithTransport(t Transport) Option {
	return func(m *Manager) { m.transport = t }
}

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithIDGenerator replaces uuid.NewString, mostly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// WithOnEnd registers a callback run by End, e.g. discarding the session's
// notification store.
func WithOnEnd(fn func(ctx context.Context, id string)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.onEnd = append(m.onEnd, fn)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func New(opts ...Option) *Manager {
	m := &Manager{
		ttl:    24 * time.Hour,
		newID:  uuid.NewString,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.transport == nil {
		m.transport = NewCompositeTransport(
			NewHeaderTransport(DefaultHeaderName),
			NewCookieTransport(DefaultCookieName),
		)
	}
	return m
}

// Get returns the session id carried by r.
func (m *Manager) Get(r *http.Request) (string, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return "", err
	}
	if _, err := uuid.Parse(token); err != nil {
		return "", errors.Join(ErrInvalidSession, err)
	}
	return token, nil
}

// Ensure returns the request's session id, issuing and sending a new one
// when it is missing or malformed.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, err := m.Get(r); err == nil {
		return id, nil
	} else if errors.Is(err, ErrInvalidSession) {
		m.logger.LogAttrs(r.Context(), slog.LevelDebug, "Replacing malformed session id",
			logger.Component("session"),
		)
	}

	id := m.newID()
	if err := m.transport.SetToken(w, id, m.ttl); err != nil {
		return "", err
	}
	return id, nil
}

// End runs the OnEnd callbacks for the request's session and clears the
// token from the response. A request without a session is not an error.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) error {
	id, err := m.Get(r)
	if err == nil {
		for _, fn := range m.onEnd {
			fn(r.Context(), id)
		}
		m.logger.LogAttrs(r.Context(), slog.LevelInfo, "Session ended",
			logger.Component("session"),
			logger.SessionID(id),
		)
	}
	return m.transport.ClearToken(w)
}
