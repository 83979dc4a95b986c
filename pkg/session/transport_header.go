package session

import (
	"net/http"
	"strings"
	"time"
)

// HeaderTransport reads the session id from a request header and echoes it
// in the response so that script clients can pick it up.
type HeaderTransport struct {
	headerName string
}

func NewHeaderTransport(headerName string) *HeaderTransport {
	return &HeaderTransport{headerName: headerName}
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := strings.TrimSpace(r.Header.Get(t.headerName))
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, _ time.Duration) error {
	w.Header().Set(t.headerName, token)
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.headerName)
	return nil
}
