// Package middleware provides HTTP middleware for the vehicle manager.
package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/garagesvc/vehicle-manager/pkg/logger"
)

// RequestIDHeader carries the correlation id on requests and responses.
const RequestIDHeader = "X-Request-ID"

// Tracing wraps every request in an observability scope. On entry it takes
// the correlation id from the request header or generates one, stores it on
// the context and echoes it on the response. On exit it writes exactly one
// completion record with method, path, status and duration. The completion
// record is deferred so it fires on every path, panics included; a panic is
// turned into a 500 after being logged.
func Tracing(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = logger.NewRequestID()
			}

			ctx := logger.WithRequestID(r.Context(), requestID)
			r = r.WithContext(ctx)
			w.Header().Set(RequestIDHeader, requestID)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			defer func() {
				if rec := recover(); rec != nil {
					log.WithContext(ctx).
						WithField("panic", rec).
						WithField("path", r.URL.Path).
						Error("handler panicked")
					if !rw.written {
						rw.Header().Set("Content-Type", "application/json")
						rw.WriteHeader(http.StatusInternalServerError)
						_, _ = rw.Write([]byte(`{"error":"internal server error"}` + "\n"))
					} else {
						rw.statusCode = http.StatusInternalServerError
					}
				}
				log.LogRequest(ctx, r.Method, r.URL.Path, rw.statusCode, time.Since(start))
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}
