package middleware

import (
	"log"
	"net/http"

	authgate "github.com/bobby-ops/authgate"
)

// Stage is one named step of the request pipeline. Wrap receives the next
// handler and returns the stage's handler; Name identifies the stage in
// pipeline descriptions and tests.
type Stage struct {
	Name string
	Wrap func(http.Handler) http.Handler
}

// Chain composes stages in declaration order: the first stage becomes the
// outermost wrapper. Chain(a, b)(h) serves a → b → h.
func Chain(stages ...Stage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		handler := next
		for i := len(stages) - 1; i >= 0; i-- {
			handler = stages[i].Wrap(handler)
		}
		return handler
	}
}

// DefaultPipeline returns the standard stage order for protected routes:
// request logging, then authentication, then the role check. Callers needing
// a different order or extra stages compose [Chain] themselves.
func DefaultPipeline(engine *authgate.Engine, logger *log.Logger) []Stage {
	return []Stage{
		RequestLog(logger),
		Authenticate(engine),
		RequireRoles(engine),
	}
}

// Protect wraps a handler with the default pipeline.
func Protect(engine *authgate.Engine, logger *log.Logger, next http.Handler) http.Handler {
	return Chain(DefaultPipeline(engine, logger)...)(next)
}
