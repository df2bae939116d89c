package authgate

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	internalaudit "github.com/bobby-ops/authgate/internal/audit"
	"github.com/bobby-ops/authgate/internal/rate"
	"github.com/bobby-ops/authgate/jwt"
	"github.com/bobby-ops/authgate/revocation"
	"github.com/google/uuid"
)

// Engine is the authentication core. It owns the token codec, the revocation
// blacklist, the issuance throttle, and the route table, and exposes the
// operations the request pipeline and the login/logout endpoints consume.
//
// Engine instances are intended to be configured during initialization through [Builder.Build] and then treated as immutable; all methods are safe for concurrent use.
type Engine struct {
	config      Config
	codec       *jwt.Codec
	revocations revocation.Store
	limiter     rate.Limiter
	routes      *RouteTable
	credentials CredentialChecker
	audit       *internalaudit.Dispatcher
	metrics     *Metrics
	closed      atomic.Bool
}

// HeaderName returns the configured credential header name.
func (e *Engine) HeaderName() string {
	return e.config.JWT.HeaderName
}

// TokenTTL returns the fixed issuance-to-expiry duration.
func (e *Engine) TokenTTL() time.Duration {
	return e.config.JWT.TokenTTL
}

// Routes returns the compiled route table used for public-route bypass and
// role requirements.
func (e *Engine) Routes() *RouteTable {
	return e.routes
}

// Metrics returns the engine's counter registry. Never nil, but disabled when
// [MetricsConfig] says so.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// MetricsSnapshot copies the current counter and histogram state for the
// export packages.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// AuditDropped returns the number of audit events dropped under backpressure.
func (e *Engine) AuditDropped() uint64 {
	return e.audit.Dropped()
}

/*
====================================
ISSUANCE
====================================
*/

// Login verifies credentials through the configured [CredentialChecker] and,
// on success, issues a fresh token for the account.
//
// Login may return [ErrInvalidCredentials], [ErrIssuanceRateLimited], or
// [ErrIssuanceFailed]; issuance is synchronous and never retried here —
// a failed login is retried by the client via re-login.
func (e *Engine) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if e == nil || e.credentials == nil {
		return nil, ErrEngineNotReady
	}

	account, err := e.credentials.CheckCredentials(ctx, username, password)
	if err != nil {
		e.metrics.Inc(MetricLoginFailure)
		e.emitAudit(ctx, internalaudit.EventLoginFailure, false, "", "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"identifier": username}
		})
		return nil, ErrInvalidCredentials
	}

	result := e.Issue(ctx, account)
	switch result.Status {
	case IssuanceRateLimited:
		return nil, ErrIssuanceRateLimited
	case IssuanceFailed:
		return nil, ErrIssuanceFailed
	}

	e.metrics.Inc(MetricLoginSuccess)
	e.emitAudit(ctx, internalaudit.EventLoginSuccess, true, account.Subject, "", nil, func() map[string]string {
		return map[string]string{"identifier": account.Username}
	})

	return &LoginResult{
		Username:  account.Username,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}, nil
}

// Issue builds a signed token for an already-authenticated account. It
// enforces the per-subject issuance interval, stamps issued-at = now and
// expires-at = now + TokenTTL, and generates a fresh unique token id.
func (e *Engine) Issue(ctx context.Context, account UserAccount) IssuanceResult {
	if e.limiter != nil {
		if err := e.limiter.Reserve(ctx, account.Subject); err != nil {
			if errors.Is(err, rate.ErrRateLimited) {
				e.metrics.Inc(MetricIssuanceRateLimited)
				e.emitAudit(ctx, internalaudit.EventIssuanceLimited, false, account.Subject, "", ErrIssuanceRateLimited, nil)
				return IssuanceResult{Status: IssuanceRateLimited, Err: ErrIssuanceRateLimited}
			}
			// Limiter backend down: fail issuance rather than skip the limit.
			log.Print("authgate: issuance limiter unavailable")
			e.metrics.Inc(MetricIssuanceFailed)
			e.emitAudit(ctx, internalaudit.EventIssuanceFailed, false, account.Subject, "", err, nil)
			return IssuanceResult{Status: IssuanceFailed, Err: err}
		}
	}

	now := time.Now()
	expiresAt := now.Add(e.config.JWT.TokenTTL)
	tokenID := uuid.NewString()

	token, err := e.codec.Encode(account.Subject, account.Username, account.Roles, tokenID, now, expiresAt)
	if err != nil {
		log.Print("authgate: token encoding failed")
		e.metrics.Inc(MetricIssuanceFailed)
		e.emitAudit(ctx, internalaudit.EventIssuanceFailed, false, account.Subject, tokenID, err, nil)
		return IssuanceResult{Status: IssuanceFailed, Err: err}
	}

	e.metrics.Inc(MetricIssuance)
	return IssuanceResult{Status: Issued, Token: token, ExpiresAt: expiresAt}
}

/*
====================================
AUTHENTICATION
====================================
*/

// Authenticate runs the per-request pipeline for a raw credential value:
// decode, revocation check, principal reconstruction. It never writes to the
// revocation store and never returns an error — every failure becomes a
// Rejected outcome with a stable reason.
func (e *Engine) Authenticate(ctx context.Context, rawToken string) AuthOutcome {
	start := time.Now()
	defer func() {
		e.metrics.Observe(MetricAuthenticateLatency, time.Since(start))
	}()

	if rawToken == "" {
		e.metrics.Inc(MetricTokenRejected)
		return Rejected(ReasonUnauthenticated)
	}

	claims, err := e.codec.Decode(rawToken)
	if err != nil {
		reason := ReasonInvalidToken
		if errors.Is(err, jwt.ErrExpired) {
			reason = ReasonTokenExpired
			e.metrics.Inc(MetricTokenExpired)
		}
		e.metrics.Inc(MetricTokenRejected)
		e.emitAudit(ctx, internalaudit.EventTokenRejected, false, "", "", err, nil)
		return Rejected(reason)
	}

	revoked, err := e.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Fail closed: a blacklist we cannot read is a rejection, not a pass.
		log.Print("authgate: revocation check failed")
		e.metrics.Inc(MetricRevocationUnavailable)
		e.metrics.Inc(MetricTokenRejected)
		e.emitAudit(ctx, internalaudit.EventRevocationFailed, false, claims.Subject, claims.ID, err, nil)
		return Rejected(ReasonUnavailable)
	}
	if revoked {
		e.metrics.Inc(MetricTokenRevokedHit)
		e.metrics.Inc(MetricTokenRejected)
		e.emitAudit(ctx, internalaudit.EventTokenRevokedHit, false, claims.Subject, claims.ID, ErrTokenRevoked, nil)
		return Rejected(ReasonTokenRevoked)
	}

	e.metrics.Inc(MetricTokenAccepted)
	return Accepted(Principal{
		Subject:  claims.Subject,
		Username: claims.Username,
		Roles:    append([]string(nil), claims.Roles...),
		IssuedAt: claims.IssuedAt.Time,
	})
}

// Authorize applies the role-based access decision: the principal's role set
// must intersect requiredRoles. Exact-match names, no hierarchy.
func (e *Engine) Authorize(p Principal, requiredRoles []string) bool {
	return p.HasAnyRole(requiredRoles)
}

// AuthorizePath applies the route table's decision for the path, including
// the public-route bypass and the default role fallback.
func (e *Engine) AuthorizePath(p Principal, path string) bool {
	return e.routes.Authorize(p, path)
}

/*
====================================
LOGOUT
====================================
*/

// Logout revokes the token so it is rejected for the rest of its lifetime.
// The decode is lenient about expiry: a token already past expires-at is
// invalid on its own and is treated as a successful no-op. A missing or
// unparseable token returns [ErrBadRequest], distinct from authentication
// rejection.
func (e *Engine) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return ErrBadRequest
	}

	claims, err := e.codec.DecodeAllowExpired(rawToken)
	if err != nil {
		e.metrics.Inc(MetricLogoutRejected)
		e.emitAudit(ctx, internalaudit.EventLogoutRejected, false, "", "", ErrBadRequest, nil)
		return ErrBadRequest
	}

	expiresAt := claims.ExpiresAt.Time
	if !expiresAt.After(time.Now()) {
		e.metrics.Inc(MetricLogout)
		e.emitAudit(ctx, internalaudit.EventLogout, true, claims.Subject, claims.ID, nil, func() map[string]string {
			return map[string]string{"note": "already_expired"}
		})
		return nil
	}

	if err := e.revocations.Revoke(ctx, claims.ID, expiresAt); err != nil {
		e.metrics.Inc(MetricLogoutRejected)
		e.emitAudit(ctx, internalaudit.EventLogoutRejected, false, claims.Subject, claims.ID, err, nil)
		return ErrRevocationUnavailable
	}

	e.metrics.Inc(MetricLogout)
	e.emitAudit(ctx, internalaudit.EventLogout, true, claims.Subject, claims.ID, nil, nil)
	return nil
}

/*
====================================
LIFECYCLE
====================================
*/

// Close stops the revocation sweeper and the audit dispatcher. The engine
// must not be used after Close.
func (e *Engine) Close() error {
	if e == nil || !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := e.revocations.Close()
	e.audit.Close()
	return err
}

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	subject string,
	tokenID string,
	cause error,
	metadata func() map[string]string,
) {
	if e.audit == nil {
		return
	}

	event := internalaudit.Event{
		Timestamp: time.Now(),
		EventType: eventType,
		Subject:   subject,
		TokenID:   tokenID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	e.audit.Emit(ctx, event)
}
