package notifications

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

// Toast is the transient alert raised when a notification is added.
type Toast struct {
	SessionID      string    `json:"session_id"`
	NotificationID string    `json:"notification_id"`
	Type           Type      `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Link           string    `json:"link,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToastFor builds the toast announcing n in the given session.
func ToastFor(sessionID string, n Notification) Toast {
	return Toast{
		SessionID:      sessionID,
		NotificationID: n.ID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		Link:           n.Link,
		CreatedAt:      n.Timestamp,
	}
}

// Toaster presents toasts to the member.
// The implementation is picked once at startup from configuration.
type Toaster interface {
	Toast(ctx context.Context, t Toast) error
}

// ToasterFunc adapts a plain function to the Toaster interface.
type ToasterFunc func(ctx context.Context, t Toast) error

// Toast calls f(ctx, t).
func (f ToasterFunc) Toast(ctx context.Context, t Toast) error {
	return f(ctx, t)
}

// NoOpToaster drops every toast.
// Used when no toast backend is configured and in tests.
type NoOpToaster struct{}

// Toast does nothing and returns nil.
func (NoOpToaster) Toast(context.Context, Toast) error {
	return nil
}

// MultiToaster combines several toast backends.
type MultiToaster struct {
	toasters []Toaster
	logger   *slog.Logger
}

// MultiToasterOption configures a MultiToaster.
type MultiToasterOption func(*MultiToaster)

// WithMultiToasterLogger sets the logger for the MultiToaster.
func WithMultiToasterLogger(l *slog.Logger) MultiToasterOption {
	return func(m *MultiToaster) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMultiToaster creates a toaster that forwards to every non-nil toaster.
func NewMultiToaster(toasters []Toaster, opts ...MultiToasterOption) *MultiToaster {
	m := &MultiToaster{
		toasters: make([]Toaster, 0, len(toasters)),
		logger:   slog.Default(),
	}
	for _, t := range toasters {
		if t != nil {
			m.toasters = append(m.toasters, t)
		}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Toast forwards t to all backends. A failing backend is logged and skipped.
func (m *MultiToaster) Toast(ctx context.Context, t Toast) error {
	for i, toaster := range m.toasters {
		if err := toaster.Toast(ctx, t); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "Failed to deliver toast",
				logger.SessionID(t.SessionID),
				logger.NotificationID(t.NotificationID),
				slog.Int("toaster_index", i),
				logger.Error(err),
			)
		}
	}
	return nil
}
