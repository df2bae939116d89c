package revocation

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when the backing store cannot be reached.
// Callers must treat it as a fail-closed condition: reject the request,
// never assume the token is live.
var ErrUnavailable = errors.New("revocation store unavailable")

// Store is the revocation blacklist contract shared by all backends.
//
// Revoke is idempotent: revoking an already-revoked id is a no-op success.
// IsRevoked is safe to call concurrently with Revoke from many requests.
type Store interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Close() error
}
