package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shamanic-technologies/email-sending-service/internal/config"
	"github.com/shamanic-technologies/email-sending-service/internal/idempotency"
	"github.com/shamanic-technologies/email-sending-service/internal/logger"
	"github.com/shamanic-technologies/email-sending-service/internal/model"
	"github.com/shamanic-technologies/email-sending-service/internal/provider"
	"github.com/shamanic-technologies/email-sending-service/internal/service"
	"github.com/shamanic-technologies/email-sending-service/internal/signature"
)

// Stub providers for exercising the handlers end to end

type stubTransactional struct {
	sendErr error
}

func (s *stubTransactional) Send(context.Context, provider.TransactionalSend) (*provider.TransactionalSendResponse, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &provider.TransactionalSendResponse{MessageID: "pm_1"}, nil
}

func (s *stubTransactional) Stats(context.Context, provider.StatsQuery) (model.RawStats, error) {
	return model.RawStats{}, nil
}

func (s *stubTransactional) GroupedStats(context.Context, provider.StatsQuery) ([]model.RawStatsGroup, error) {
	return nil, nil
}

func (s *stubTransactional) Status(context.Context, provider.StatusQuery) (map[string]model.ProviderStatus, error) {
	return map[string]model.ProviderStatus{}, nil
}

type stubBroadcast struct{}

func (s *stubBroadcast) Send(context.Context, provider.BroadcastSend) (*provider.BroadcastSendResponse, error) {
	return &provider.BroadcastSendResponse{CampaignID: "camp_1", LeadID: "lead_1", Added: 1}, nil
}

func (s *stubBroadcast) Stats(context.Context, provider.StatsQuery) (model.RawStats, error) {
	return model.RawStats{}, nil
}

func (s *stubBroadcast) GroupedStats(context.Context, provider.StatsQuery) ([]model.RawStatsGroup, error) {
	return nil, nil
}

func (s *stubBroadcast) Status(context.Context, provider.StatusQuery) (map[string]model.ProviderStatus, error) {
	return map[string]model.ProviderStatus{}, nil
}

type stubBrands struct{}

func (s *stubBrands) Get(context.Context, string) (*provider.Brand, error) {
	return &provider.Brand{URL: "https://brand.example.com"}, nil
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.Signature.HouseApp = "house"
	cfg.Signature.FromAddress = "no-reply@example.com"
	log := logger.New("error", "json")

	tp := &stubTransactional{}
	bp := &stubBroadcast{}
	cache := idempotency.New()
	composer := signature.Composer{HouseApp: "house"}

	sendSvc := service.NewSendService(tp, bp, &stubBrands{}, cache, composer, cfg, log)
	statsSvc := service.NewStatsService(tp, bp, log)
	statusSvc := service.NewStatusService(tp, bp, log)

	return New(nil, log, cfg, sendSvc, statsSvc, statusSvc)
}

func postJSON(t *testing.T, handlerFn http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlerFn(rec, req)
	return rec
}

func TestSendValidation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"bad channel", `{"channel":"carrier-pigeon","to":"user@x.com"}`},
		{"missing recipient", `{"channel":"transactional","transactional":{"subject":"s","textBody":"b"}}`},
		{"invalid email", `{"channel":"transactional","to":"not-an-email","transactional":{"subject":"s","textBody":"b"}}`},
		{"missing payload", `{"channel":"transactional","to":"user@x.com"}`},
		{"missing subject", `{"channel":"transactional","to":"user@x.com","transactional":{"textBody":"b"}}`},
		{"missing body", `{"channel":"transactional","to":"user@x.com","transactional":{"subject":"s"}}`},
		{"empty sequence", `{"channel":"broadcast","to":"user@x.com","broadcast":{"subject":"s","steps":[]}}`},
		{"non-contiguous ordinals", `{"channel":"broadcast","to":"user@x.com","broadcast":{"subject":"s","steps":[{"step":2,"textBody":"b","delayDays":0}]}}`},
		{"negative delay", `{"channel":"broadcast","to":"user@x.com","broadcast":{"subject":"s","steps":[{"step":1,"textBody":"b","delayDays":-1}]}}`},
		{"wrong variant", `{"channel":"broadcast","to":"user@x.com","transactional":{"subject":"s","textBody":"b"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Send, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSendTransactionalEndToEnd(t *testing.T) {
	h := newTestHandler(t)

	body := `{"channel":"transactional","to":"user@x.com","transactional":{"subject":"Hi","htmlBody":"<p>Hi</p>"}}`
	rec := postJSON(t, h.Send, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var result model.SendResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !result.Success || result.Provider != model.ChannelTransactional || result.MessageID != "pm_1" {
		t.Errorf("result = %+v", result)
	}
}

func TestStatsValidation(t *testing.T) {
	h := newTestHandler(t)

	if rec := postJSON(t, h.Stats, `{"channel":"fax"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad channel: status = %d, want 400", rec.Code)
	}
	if rec := postJSON(t, h.Stats, `{"groupBy":"color"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad groupBy: status = %d, want 400", rec.Code)
	}
	if rec := postJSON(t, h.Stats, `{}`); rec.Code != http.StatusOK {
		t.Errorf("empty stats request: status = %d, want 200", rec.Code)
	}
}

func TestStatusValidation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing campaign", `{"items":[{"email":"a@x.com"}]}`, http.StatusBadRequest},
		{"empty items", `{"campaignId":"camp_1","items":[]}`, http.StatusBadRequest},
		{"item without email", `{"campaignId":"camp_1","items":[{"leadId":"l1"}]}`, http.StatusBadRequest},
		{"valid", `{"campaignId":"camp_1","items":[{"email":"a@x.com"}]}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Status, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d, body: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
