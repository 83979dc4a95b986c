package session

import (
	"errors"
	"net/http"
	"time"
)

// CompositeTransport reads from the first transport that has a token and
// writes through all of them.
type CompositeTransport struct {
	transports []Transport
}

func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (t *CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, transport := range t.transports {
		token, err := transport.GetToken(r)
		if err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrSessionNotFound
}

func (t *CompositeTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	var errs []error
	for _, transport := range t.transports {
		if err := transport.SetToken(w, token, ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *CompositeTransport) ClearToken(w http.ResponseWriter) error {
	var errs []error
	for _, transport := range t.transports {
		if err := transport.ClearToken(w); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
