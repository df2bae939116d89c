// Package middleware adapts the authgate Engine to net/http as an explicit
// ordered pipeline of named stages.
//
// # Stages
//
//   - [RequestLog] — first; records method, path, client IP, status, and
//     duration for every request, authenticated or not.
//   - [Authenticate] — extracts the bearer credential, calls
//     Engine.Authenticate, and attaches the principal to the request
//     context. Public routes bypass this stage entirely.
//   - [RequireRoles] — after authentication; applies the route table's
//     role-based access decision.
//
// [Chain] composes stages in declaration order: the first stage is the
// outermost wrapper, so its pre-condition holds for everything after it.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls and renders
// tagged outcomes as JSON envelopes. It does NOT implement authentication
// logic itself — all decisions are delegated to the Engine.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Write to the revocation store (reads happen inside Engine.Authenticate).
//   - Leak internal error details into response bodies.
package middleware
