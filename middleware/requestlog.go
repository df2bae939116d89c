package middleware

import (
	"log"
	"net/http"
	"time"
)

// statusRecorder captures the status code written by downstream stages.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLog returns the pipeline stage that records request metadata. It is
// ordered before [Authenticate] so rejected requests are logged too.
//
// Pre-condition: none (first stage).
// Post-condition: one log line per request with method, path, client IP,
// response status, and duration.
func RequestLog(logger *log.Logger) Stage {
	if logger == nil {
		logger = log.Default()
	}
	return Stage{
		Name: "request-log",
		Wrap: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

				next.ServeHTTP(recorder, r)

				logger.Printf("%s %s %s %d %s",
					r.Method, r.URL.Path, clientIP(r), recorder.status, time.Since(start))
			})
		},
	}
}
