// Package authgate provides the stateless JWT authentication core of an HTTP
// service: signed-token issuance on login, per-request validation, role-based
// access decisions, and immediate revocation (logout) without server-side
// sessions.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Engine], [Builder], [Config],
// and value types ([Principal], [AuthOutcome], [IssuanceResult]). Internal
// coordination — issuance throttling, audit dispatch — lives under internal/
// and is never exported. Token encoding lives in the jwt subpackage and the
// revocation blacklist in the revocation subpackage; both are consumed through
// the Engine.
//
// # What this package must NOT do
//
//   - Persist users or hash passwords; credential verification is delegated
//     to the caller-supplied [CredentialChecker].
//   - Route HTTP requests or render transport-level responses; the middleware
//     subpackage adapts Engine outcomes to net/http.
//   - Mutate the signing key after [Builder.Build].
//
// # Performance contract
//
// Authenticate is the hot path. It performs one token decode plus at most one
// revocation-store round-trip and must not write to any shared state.
package authgate
