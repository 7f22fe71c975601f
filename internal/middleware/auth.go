package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shamanic-technologies/email-sending-service/internal/auth"
)

// Auth creates an authentication middleware that validates service tokens
// and records the calling app ID in the request context.
func (m *Middleware) Auth(tokenSvc *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					tokenString = parts[1]
				}
			}

			if tokenString == "" {
				http.Error(w, `{"error":{"code":"unauthorized","message":"Authentication required"}}`, http.StatusUnauthorized)
				return
			}

			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				m.log.Debug().Err(err).Msg("token validation failed")
				http.Error(w, `{"error":{"code":"token_invalid","message":"The service token is invalid or expired"}}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AppIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
