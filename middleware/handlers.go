package middleware

import (
	"net/http"

	authgate "github.com/bobby-ops/authgate"
)

// LoginHandler verifies form credentials (username, password) and issues a
// token. On success the token also travels in the configured credential
// header as "Bearer <token>", and the body carries {username, token, expire}.
func LoginHandler(engine *authgate.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			WriteJSON(w, Failure(http.StatusBadRequest, "malformed request"))
			return
		}

		ctx := authgate.WithClientIP(r.Context(), clientIP(r))
		result, err := engine.Login(ctx, r.FormValue("username"), r.FormValue("password"))
		if err != nil {
			WriteJSON(w, Failure(statusForError(err), err.Error()))
			return
		}

		w.Header().Set(engine.HeaderName(), "Bearer "+result.Token)
		WriteJSON(w, Success("login successful").
			With("username", result.Username).
			With("token", result.Token).
			With("expire", result.ExpiresAt))
	}
}

// LogoutHandler revokes the bearer token carried in the credential header.
// A missing or unparseable token is a client error, distinct from an
// authentication rejection.
func LogoutHandler(engine *authgate.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := bearerToken(r.Header.Get(engine.HeaderName()))

		ctx := authgate.WithClientIP(r.Context(), clientIP(r))
		if err := engine.Logout(ctx, token); err != nil {
			WriteJSON(w, Failure(statusForError(err), err.Error()))
			return
		}

		WriteJSON(w, Success("logout successful"))
	}
}
