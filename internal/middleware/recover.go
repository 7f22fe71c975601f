package middleware

import (
	"net/http"
	"runtime/debug"
)

// Recover turns a handler panic into a 500 response instead of
// tearing down the connection.
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				m.log.WithRequestID(GetRequestID(r.Context())).Error().
					Interface("error", err).
					Str("stack", string(debug.Stack())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":{"code":"internal_error","message":"An unexpected error occurred"}}`))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
