package rate

import "errors"

var (
	// ErrRateLimited is returned when a subject reserves again inside its minimum interval.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable wraps backend failures so callers can fail issuance explicitly.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
