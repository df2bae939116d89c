package internaldefs

import (
	authgate "github.com/bobby-ops/authgate"
)

// CounterDef binds a [authgate.MetricID] to its exported name and help text.
type CounterDef struct {
	ID   authgate.MetricID
	Name string
	Help string
}

// HistogramDef binds a histogram-bearing [authgate.MetricID] to its exported
// name and help text.
type HistogramDef struct {
	ID   authgate.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication gate.
var CounterDefs = []CounterDef{
	{ID: authgate.MetricLoginSuccess, Name: "authgate_login_success_total", Help: "Successful login attempts."},
	{ID: authgate.MetricLoginFailure, Name: "authgate_login_failure_total", Help: "Failed login attempts."},
	{ID: authgate.MetricIssuance, Name: "authgate_issuance_total", Help: "Issued tokens."},
	{ID: authgate.MetricIssuanceRateLimited, Name: "authgate_issuance_rate_limited_total", Help: "Issuance attempts denied by the per-subject interval."},
	{ID: authgate.MetricIssuanceFailed, Name: "authgate_issuance_failed_total", Help: "Issuance attempts that failed to produce a token."},
	{ID: authgate.MetricTokenAccepted, Name: "authgate_token_accepted_total", Help: "Requests authenticated with a valid token."},
	{ID: authgate.MetricTokenRejected, Name: "authgate_token_rejected_total", Help: "Requests rejected by the authentication gate."},
	{ID: authgate.MetricTokenExpired, Name: "authgate_token_expired_total", Help: "Requests rejected with an expired token."},
	{ID: authgate.MetricTokenRevokedHit, Name: "authgate_token_revoked_total", Help: "Requests presenting a revoked token."},
	{ID: authgate.MetricRevocationUnavailable, Name: "authgate_revocation_unavailable_total", Help: "Revocation checks that failed closed on a backend error."},
	{ID: authgate.MetricLogout, Name: "authgate_logout_total", Help: "Successful logout operations."},
	{ID: authgate.MetricLogoutRejected, Name: "authgate_logout_rejected_total", Help: "Rejected logout operations."},
}

// HistogramDefs is an exported constant or variable used by the authentication gate.
var HistogramDefs = []HistogramDef{
	{ID: authgate.MetricAuthenticateLatency, Name: "authgate_authenticate_latency_seconds", Help: "Authenticate latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication gate.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication gate.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
