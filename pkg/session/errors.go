package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session.not_found")
	ErrInvalidSession  = errors.New("session.invalid")
	ErrNoTransport     = errors.New("session.no_transport")
)
