// Package revocation tracks invalidated token identifiers until their natural
// expiry, giving stateless tokens session-like logout semantics.
//
// # Backends
//
//   - [MemoryStore] — mutex-guarded map with a background sweeper; suitable
//     for single-instance deployments.
//   - [RedisStore] — shared blacklist keyed per token id with Redis-native
//     TTL eviction; suitable for multi-instance deployments.
//
// Both backends guarantee read-after-write visibility: a revocation is seen
// by every subsequent IsRevoked call once Revoke returns. Eviction only ever
// removes entries at or after their recorded expiry, so a live token can
// never be un-revoked early.
//
// # What this package must NOT do
//
//   - Decide whether a request is rejected (the Engine does, fail-closed on
//     backend errors).
//   - Parse or validate tokens.
package revocation
