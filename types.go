package authgate

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/bobby-ops/authgate/internal/audit"
)

// Principal is the authenticated identity derived from a validated token or a
// successful login. It is immutable once constructed and owned per-request.
type Principal struct {
	Subject  string
	Username string
	Roles    []string
	IssuedAt time.Time
}

// HasRole reports whether the principal holds the named role. Comparison is
// exact-match on role names; there is no implicit hierarchy.
func (p Principal) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the principal's role set intersects the given
// required role set.
func (p Principal) HasAnyRole(required []string) bool {
	for _, r := range required {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

// RejectReason defines a public type used by authgate APIs.
//
// RejectReason values are stable strings suitable for user-visible error
// bodies; they never carry internal details.
type RejectReason string

const (
	// ReasonUnauthenticated is an exported constant or variable used by the authentication gate.
	ReasonUnauthenticated RejectReason = "unauthenticated"
	// ReasonInvalidToken is an exported constant or variable used by the authentication gate.
	ReasonInvalidToken RejectReason = "invalid_token"
	// ReasonTokenExpired is an exported constant or variable used by the authentication gate.
	ReasonTokenExpired RejectReason = "token_expired"
	// ReasonTokenRevoked is an exported constant or variable used by the authentication gate.
	ReasonTokenRevoked RejectReason = "token_revoked"
	// ReasonForbidden is an exported constant or variable used by the authentication gate.
	ReasonForbidden RejectReason = "forbidden"
	// ReasonUnavailable is an exported constant or variable used by the authentication gate.
	ReasonUnavailable RejectReason = "authentication_unavailable"
)

// AuthOutcome is the tagged per-request authentication result: either
// Authenticated carrying a [Principal], or Rejected carrying a stable reason.
// It is produced by [Engine.Authenticate] and consumed by the middleware
// response dispatcher.
type AuthOutcome struct {
	Principal *Principal
	Reason    RejectReason
}

// Authenticated reports whether the outcome carries a principal.
func (o AuthOutcome) Authenticated() bool {
	return o.Principal != nil
}

// Accepted constructs an Authenticated outcome for p.
func Accepted(p Principal) AuthOutcome {
	return AuthOutcome{Principal: &p}
}

// Rejected constructs a Rejected outcome with the given reason.
func Rejected(reason RejectReason) AuthOutcome {
	return AuthOutcome{Reason: reason}
}

// IssuanceStatus defines a public type used by authgate APIs.
type IssuanceStatus uint8

const (
	// Issued is an exported constant or variable used by the authentication gate.
	Issued IssuanceStatus = iota
	// IssuanceRateLimited is an exported constant or variable used by the authentication gate.
	IssuanceRateLimited
	// IssuanceFailed is an exported constant or variable used by the authentication gate.
	IssuanceFailed
)

// IssuanceResult is the tagged outcome of [Engine.Issue]: Issued with a token
// and expiry, RateLimited when the per-subject minimum interval is violated,
// or Failed when encoding or the limiter backend broke. Failed issuance is
// never retried automatically; re-login is the client's responsibility.
type IssuanceResult struct {
	Status    IssuanceStatus
	Token     string
	ExpiresAt time.Time
	Err       error
}

// LoginResult is returned by [Engine.Login]. Token and ExpiresAt mirror the
// issued credential; Username echoes the authenticated account for the
// response body contract.
type LoginResult struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

// UserAccount is the minimal account view returned by [CredentialChecker].
// Subject must be unique per user; Roles is the account's role-name set.
type UserAccount struct {
	Subject  string
	Username string
	Roles    []string
}

// CredentialChecker is the interface callers must implement to verify login
// credentials against their user store. Password hashing and user persistence
// are external collaborators; the engine only consumes the verified account.
type CredentialChecker interface {
	CheckCredentials(ctx context.Context, username, password string) (UserAccount, error)
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
