package session

import (
	"net/http"
	"time"
)

// Transport carries the session id between the browser and the server.
type Transport interface {
	// GetToken returns ErrSessionNotFound when the request carries no id.
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	ClearToken(w http.ResponseWriter) error
}
