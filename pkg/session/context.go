package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

type sessionContextKey struct{}

// WithID stores the session id in ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, id)
}

// IDFromContext returns the session id set by the middleware.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionContextKey{}).(string)
	return id, ok && id != ""
}

// MustIDFromContext panics when the middleware did not run.
func MustIDFromContext(ctx context.Context) string {
	id, ok := IDFromContext(ctx)
	if !ok {
		panic("session: id not found in context")
	}
	return id
}

// LoggerExtractor adds session_id to every record logged with a request
// context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := IDFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.SessionID(id), true
	}
}
