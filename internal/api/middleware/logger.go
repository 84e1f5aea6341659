package middleware

import (
	"net/http"
	"time"

	"github.com/modlog/modlog/pkg/logger"
)

// RequestLogger logs HTTP requests through the application logger.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap the response writer to capture the status code.
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			if wrapped.statusCode >= http.StatusInternalServerError {
				log.Errorf("%s %s -> %d (%s)", r.Method, r.URL.Path, wrapped.statusCode, duration)
				return
			}
			log.Debugf("%s %s -> %d (%s)", r.Method, r.URL.Path, wrapped.statusCode, duration)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
