package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shamanic-technologies/email-sending-service/internal/config"
	"github.com/shamanic-technologies/email-sending-service/internal/idempotency"
	"github.com/shamanic-technologies/email-sending-service/internal/logger"
	"github.com/shamanic-technologies/email-sending-service/internal/model"
	"github.com/shamanic-technologies/email-sending-service/internal/provider"
	"github.com/shamanic-technologies/email-sending-service/internal/signature"
)

// UpstreamErrorMessage marks a provider transport failure in a send result
const UpstreamErrorMessage = "Upstream service error"

// SendService orchestrates a send: idempotency lookup, best-effort brand
// lookup, footer composition, provider dispatch, and response shaping.
type SendService struct {
	transactional provider.Transactional
	broadcast     provider.Broadcast
	brands        provider.BrandDirectory
	cache         *idempotency.Cache
	composer      signature.Composer
	cfg           *config.Config
	log           *logger.Logger
}

// NewSendService creates a new SendService
func NewSendService(
	transactional provider.Transactional,
	broadcast provider.Broadcast,
	brands provider.BrandDirectory,
	cache *idempotency.Cache,
	composer signature.Composer,
	cfg *config.Config,
	log *logger.Logger,
) *SendService {
	return &SendService{
		transactional: transactional,
		broadcast:     broadcast,
		brands:        brands,
		cache:         cache,
		composer:      composer,
		cfg:           cfg,
		log:           log.WithComponent("send"),
	}
}

// Send dispatches one logical send attempt and returns the HTTP status and
// uniform result. Terminal outcomes (success, provider-confirmed duplicate
// rejection) are cached under the idempotency key; transport failures are
// not, so a retry under the same key re-dispatches.
func (s *SendService) Send(ctx context.Context, req model.SendRequest) (int, model.SendResult) {
	if req.IdempotencyKey != "" {
		if entry, ok := s.cache.Lookup(req.IdempotencyKey); ok {
			result := entry.Result
			result.Deduplicated = true
			s.log.Info().
				Str("idempotency_key", req.IdempotencyKey).
				Str("to", req.To).
				Msg("send deduplicated from cache")
			return entry.Status, result
		}
	}

	var (
		status int
		result model.SendResult
	)
	switch req.Channel {
	case model.ChannelTransactional:
		status, result = s.sendTransactional(ctx, req)
	case model.ChannelBroadcast:
		status, result = s.sendBroadcast(ctx, req)
	default:
		// Callers validate the channel at the boundary; this is a guard
		// against programming errors, not user input.
		return http.StatusBadRequest, model.SendResult{
			Success: false,
			Error:   fmt.Sprintf("unsupported channel %q", req.Channel),
		}
	}

	// Only real provider decisions are cache-worthy. Upstream transport
	// failures must stay retryable under the same key.
	if req.IdempotencyKey != "" && status != http.StatusBadGateway {
		s.cache.Store(req.IdempotencyKey, status, result)
	}

	return status, result
}

func (s *SendService) sendTransactional(ctx context.Context, req model.SendRequest) (int, model.SendResult) {
	brandURL := s.lookupBrandURL(ctx, req.BrandID)

	msg := req.Transactional
	from := msg.From
	if from == "" {
		from = s.cfg.Signature.FromAddress
		if s.cfg.Signature.FromName != "" {
			from = fmt.Sprintf("%s <%s>", s.cfg.Signature.FromName, s.cfg.Signature.FromAddress)
		}
	}

	htmlBody := s.composer.AppendFooter(msg.HTMLBody, model.ChannelTransactional, req.AppID, brandURL)

	start := time.Now()
	resp, err := s.transactional.Send(ctx, provider.TransactionalSend{
		From:           from,
		To:             req.To,
		Subject:        msg.Subject,
		HTMLBody:       htmlBody,
		TextBody:       msg.TextBody,
		MessageStream:  msg.MessageStream,
		Metadata:       sendMetadata(req),
		OrganizationID: req.OrganizationID,
		BrandID:        req.BrandID,
		CampaignID:     req.CampaignID,
		RunID:          req.RunID,
		WorkflowID:     req.WorkflowID,
		LeadID:         req.LeadID,
	})
	s.log.ProviderCall("transactional", "send", time.Since(start), err)
	if err != nil {
		return http.StatusBadGateway, model.SendResult{
			Success:  false,
			Provider: model.ChannelTransactional,
			Error:    UpstreamErrorMessage,
		}
	}

	s.log.Info().
		Str("to", req.To).
		Str("message_id", resp.MessageID).
		Msg("transactional message sent")
	return http.StatusOK, model.SendResult{
		Success:   true,
		Provider:  model.ChannelTransactional,
		MessageID: resp.MessageID,
	}
}

func (s *SendService) sendBroadcast(ctx context.Context, req model.SendRequest) (int, model.SendResult) {
	seq := req.Broadcast

	// The broadcast provider manages its own per-account signature, so the
	// step bodies are forwarded unmodified.
	start := time.Now()
	resp, err := s.broadcast.Send(ctx, provider.BroadcastSend{
		To:             req.To,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Company:        req.Company,
		Subject:        seq.Subject,
		Steps:          seq.Steps,
		OrganizationID: req.OrganizationID,
		BrandID:        req.BrandID,
		CampaignID:     req.CampaignID,
		RunID:          req.RunID,
		WorkflowID:     req.WorkflowID,
		LeadID:         req.LeadID,
	})
	s.log.ProviderCall("broadcast", "send", time.Since(start), err)
	if err != nil {
		return http.StatusBadGateway, model.SendResult{
			Success:  false,
			Provider: model.ChannelBroadcast,
			Error:    UpstreamErrorMessage,
		}
	}

	// Added == 0 is a successful provider response signalling a duplicate
	// recipient. It is a terminal, cache-worthy outcome.
	if resp.Added == 0 {
		s.log.Info().
			Str("to", req.To).
			Str("campaign_id", resp.CampaignID).
			Msg("broadcast recipient not added (duplicate)")
		return http.StatusConflict, model.SendResult{
			Success:    false,
			Provider:   model.ChannelBroadcast,
			CampaignID: resp.CampaignID,
			Error:      "recipient not added to campaign",
		}
	}

	s.log.Info().
		Str("to", req.To).
		Str("campaign_id", resp.CampaignID).
		Str("lead_id", resp.LeadID).
		Msg("broadcast sequence enrolled")
	return http.StatusOK, model.SendResult{
		Success:    true,
		Provider:   model.ChannelBroadcast,
		MessageID:  resp.LeadID,
		CampaignID: resp.CampaignID,
	}
}

// lookupBrandURL resolves the brand URL for footer composition. Lookup
// failure is non-fatal: the composer falls back to its placeholder token.
func (s *SendService) lookupBrandURL(ctx context.Context, brandID string) string {
	if brandID == "" {
		return ""
	}
	brand, err := s.brands.Get(ctx, brandID)
	if err != nil {
		s.log.Warn().Err(err).Str("brand_id", brandID).Msg("brand lookup failed, using placeholder")
		return ""
	}
	return brand.URL
}

func sendMetadata(req model.SendRequest) map[string]string {
	if req.AppID == "" {
		return nil
	}
	return map[string]string{"app_id": req.AppID}
}
