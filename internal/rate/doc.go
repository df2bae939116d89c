// Package rate provides the per-subject issuance throttle used by the engine
// to blunt token-flooding abuse.
//
// # Window semantics
//
// One reservation per subject per minimum interval. The check and the update
// are a single atomic step on both backends (Redis SET NX PX, or a map write
// under one mutex hold), so concurrent logins for the same subject cannot
// race past the limit. Redis key prefix: ais:.
//
// # What this package must NOT do
//
//   - Implement login or credential policy (that lives in the Engine).
//   - Be imported outside the authgate module.
package rate
