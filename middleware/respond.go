package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	authgate "github.com/bobby-ops/authgate"
)

// Result is the JSON response envelope: an HTTP-status-like code, a stable
// message, and optional extra fields. Failure bodies never carry internal
// details.
type Result struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Success constructs a 200 envelope.
func Success(message string) Result {
	return Result{Code: http.StatusOK, Message: message}
}

// Failure constructs an error envelope with the given code.
func Failure(code int, message string) Result {
	return Result{Code: code, Message: message}
}

// With adds a data field and returns the envelope for chaining.
func (r Result) With(key string, value any) Result {
	if r.Data == nil {
		r.Data = make(map[string]any)
	}
	r.Data[key] = value
	return r
}

// WriteJSON renders the envelope with its code as the HTTP status.
func WriteJSON(w http.ResponseWriter, result Result) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(result.Code)
	_ = json.NewEncoder(w).Encode(result)
}

// WriteReject renders a rejection reason as a structured error body.
func WriteReject(w http.ResponseWriter, reason authgate.RejectReason) {
	WriteJSON(w, Failure(statusForReason(reason), string(reason)))
}

func statusForReason(reason authgate.RejectReason) int {
	switch reason {
	case authgate.ReasonForbidden:
		return http.StatusForbidden
	case authgate.ReasonUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnauthorized
	}
}

// statusForError maps engine errors from login/logout to envelope codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, authgate.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, authgate.ErrIssuanceRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, authgate.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, authgate.ErrRevocationUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
