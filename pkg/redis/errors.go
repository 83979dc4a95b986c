package redis

import "errors"

var (
	ErrEmptyConnectionURL   = errors.New("redis: connection URL is not set")
	ErrInvalidConnectionURL = errors.New("redis: cannot parse connection URL")
	ErrNotReady             = errors.New("redis: server not reachable after retries")
	ErrHealthcheckFailed    = errors.New("redis: ping failed")
)
