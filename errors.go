package authgate

import "errors"

var (
	// ErrUnauthenticated is an exported constant or variable used by the authentication gate.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials is an exported constant or variable used by the authentication gate.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenInvalid is an exported constant or variable used by the authentication gate.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is an exported constant or variable used by the authentication gate.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked is an exported constant or variable used by the authentication gate.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrForbidden is an exported constant or variable used by the authentication gate.
	ErrForbidden = errors.New("insufficient role")
	// ErrIssuanceRateLimited is an exported constant or variable used by the authentication gate.
	ErrIssuanceRateLimited = errors.New("token issuance rate limited")
	// ErrIssuanceFailed is an exported constant or variable used by the authentication gate.
	ErrIssuanceFailed = errors.New("token issuance failed")
	// ErrBadRequest is an exported constant or variable used by the authentication gate.
	ErrBadRequest = errors.New("malformed logout request")
	// ErrRevocationUnavailable is an exported constant or variable used by the authentication gate.
	ErrRevocationUnavailable = errors.New("revocation backend unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the authentication gate.
	ErrEngineNotReady = errors.New("engine not initialized")
)
