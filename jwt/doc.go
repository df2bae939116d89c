// Package jwt encodes and decodes the signed access tokens using configured
// signing keys and strict validation semantics suitable for low-latency
// authentication paths. The codec is pure: decoding is a function of the
// token, the key, and the clock, with no I/O and no shared mutable state.
package jwt
