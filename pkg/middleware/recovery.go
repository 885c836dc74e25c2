package middleware

import (
	"net/http"
	"runtime/debug"

	"paradisian/pkg/logger"
)

// Recovery keeps a panicking page handler from taking the process down or
// leaving the user a blank screen.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered",
						"request_id", RequestID(r.Context()),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte("<p>Something went wrong. Please try again.</p>"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
