package middleware

import (
	"context"
	"net/http"
	"strings"

	authgate "github.com/bobby-ops/authgate"
)

type principalContextKey struct{}

// PrincipalFromContext returns the authenticated principal attached by the
// [Authenticate] stage. Handlers behind a public route may see no principal.
func PrincipalFromContext(ctx context.Context) (authgate.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(authgate.Principal)
	return p, ok
}

// Authenticate returns the pipeline stage that gates every non-public route.
//
// Pre-condition: none (safe as the first auth-relevant stage).
// Post-condition: on the wrapped handler's entry, either the route is public,
// or a validated, non-revoked principal is in the request context. Every
// other request has been rejected with a structured body.
func Authenticate(engine *authgate.Engine) Stage {
	return Stage{
		Name: "authenticate",
		Wrap: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if engine == nil {
					WriteReject(w, authgate.ReasonUnavailable)
					return
				}

				if engine.Routes().IsPublic(r.URL.Path) {
					next.ServeHTTP(w, r)
					return
				}

				token, ok := bearerToken(r.Header.Get(engine.HeaderName()))
				if !ok {
					WriteReject(w, authgate.ReasonUnauthenticated)
					return
				}

				ctx := authgate.WithClientIP(r.Context(), clientIP(r))
				outcome := engine.Authenticate(ctx, token)
				if !outcome.Authenticated() {
					WriteReject(w, outcome.Reason)
					return
				}

				ctx = context.WithValue(ctx, principalContextKey{}, *outcome.Principal)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		},
	}
}

// RequireRoles returns the pipeline stage applying the role-based access
// decision.
//
// Pre-condition: [Authenticate] has run (a principal is in context for every
// non-public route).
// Post-condition: the wrapped handler only sees requests whose principal
// intersects the route's required role set, or public routes.
func RequireRoles(engine *authgate.Engine) Stage {
	return Stage{
		Name: "require-roles",
		Wrap: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if engine.Routes().IsPublic(r.URL.Path) {
					next.ServeHTTP(w, r)
					return
				}

				principal, ok := PrincipalFromContext(r.Context())
				if !ok {
					WriteReject(w, authgate.ReasonUnauthenticated)
					return
				}

				if !engine.AuthorizePath(principal, r.URL.Path) {
					WriteReject(w, authgate.ReasonForbidden)
					return
				}

				next.ServeHTTP(w, r)
			})
		},
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

func clientIP(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}
