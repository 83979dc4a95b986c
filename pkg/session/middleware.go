package session

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

// Middleware makes sure every request has a session id in its context,
// issuing one when the browser has none yet.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.Ensure(w, r)
		if err != nil {
			m.logger.LogAttrs(r.Context(), slog.LevelError, "Failed to issue session",
				logger.Component("session"),
				logger.Error(err),
			)
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}
