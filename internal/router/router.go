package router

import (
	"net/http"

	"github.com/shamanic-technologies/email-sending-service/internal/auth"
	"github.com/shamanic-technologies/email-sending-service/internal/handler"
	"github.com/shamanic-technologies/email-sending-service/internal/logger"
	"github.com/shamanic-technologies/email-sending-service/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, log *logger.Logger, tokenSvc *auth.TokenService) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints (no auth required)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	// API v1 routes
	mux.HandleFunc("GET /api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Email Gateway API v1","version":"0.1.0"}`))
	})

	authMw := mw.Auth(tokenSvc)

	// Send is rate limited per calling app; reads are not
	sendRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  mw.SendLimit(),
		Window: mw.SendWindow(),
		KeyFn:  middleware.AppKey,
	})

	mux.Handle("POST /api/v1/emails/send", authMw(sendRateLimit(http.HandlerFunc(h.Send))))
	mux.Handle("POST /api/v1/emails/stats", authMw(http.HandlerFunc(h.Stats)))
	mux.Handle("POST /api/v1/emails/status", authMw(http.HandlerFunc(h.Status)))

	// Wrap with global middleware: recover -> request ID -> logging
	var root http.Handler = mux
	root = mw.Logger(root)
	root = mw.RequestID(root)
	root = mw.Recover(root)

	return root
}
