package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shamanic-technologies/email-sending-service/internal/auth"
	"github.com/shamanic-technologies/email-sending-service/internal/config"
	"github.com/shamanic-technologies/email-sending-service/internal/handler"
	"github.com/shamanic-technologies/email-sending-service/internal/logger"
	"github.com/shamanic-technologies/email-sending-service/internal/middleware"
)

func newTestRouter(t *testing.T) (http.Handler, *auth.TokenService) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.Secret = "test-secret"
	cfg.RateLimit.Enabled = false
	log := logger.New("error", "json")

	tokenSvc, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	h := handler.New(nil, log, cfg, nil, nil, nil)
	mw := middleware.New(nil, log, cfg)
	return New(h, mw, log, tokenSvc), tokenSvc
}

func TestAPIRoutesRequireAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/v1/emails/send", "/api/v1/emails/stats", "/api/v1/emails/status"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without token: status = %d, want 401", path, rec.Code)
		}
	}
}

func TestInvalidTokenRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/emails/stats", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestValidTokenPassesAuth(t *testing.T) {
	r, tokenSvc := newTestRouter(t)

	token, err := tokenSvc.GenerateToken("crm", time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// An empty body fails validation inside the handler, which proves the
	// request made it past the auth middleware
	req := httptest.NewRequest(http.MethodPost, "/api/v1/emails/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code == http.StatusUnauthorized {
		t.Fatalf("valid token rejected")
	}
}
