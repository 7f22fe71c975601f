package service

import (
	"context"
	"errors"

	"github.com/shamanic-technologies/email-sending-service/internal/logger"
	"github.com/shamanic-technologies/email-sending-service/internal/model"
	"github.com/shamanic-technologies/email-sending-service/internal/provider"
)

// ErrBothProvidersFailed is returned when neither provider could answer a
// status query. A single-provider failure is tolerated and merged around.
var ErrBothProvidersFailed = errors.New("both upstream services failed")

// StatusService reconciles per-recipient delivery state from both providers
type StatusService struct {
	transactional provider.Transactional
	broadcast     provider.Broadcast
	log           *logger.Logger
}

// NewStatusService creates a new StatusService
func NewStatusService(transactional provider.Transactional, broadcast provider.Broadcast, log *logger.Logger) *StatusService {
	return &StatusService{
		transactional: transactional,
		broadcast:     broadcast,
		log:           log.WithComponent("status"),
	}
}

// Merge queries both providers for the campaign-scoped and global status of
// every item and emits one merged record per input item, preserving input
// order. A provider sub-object is present only when that provider returned
// a match for the item's email.
func (s *StatusService) Merge(ctx context.Context, campaignID string, items []model.StatusItem) ([]model.RecipientStatus, error) {
	emails := make([]string, 0, len(items))
	for _, item := range items {
		emails = append(emails, item.Email)
	}
	q := provider.StatusQuery{CampaignID: campaignID, Emails: emails}

	rt, rb := gather2(
		func() (map[string]model.ProviderStatus, error) { return s.transactional.Status(ctx, q) },
		func() (map[string]model.ProviderStatus, error) { return s.broadcast.Status(ctx, q) },
	)

	if rt.err != nil && rb.err != nil {
		s.log.Error().
			AnErr("transactional", rt.err).
			AnErr("broadcast", rb.err).
			Str("campaign_id", campaignID).
			Msg("status query failed on both providers")
		return nil, ErrBothProvidersFailed
	}
	if rt.err != nil {
		s.log.Warn().Err(rt.err).Str("campaign_id", campaignID).Msg("transactional status unavailable, merging broadcast only")
	}
	if rb.err != nil {
		s.log.Warn().Err(rb.err).Str("campaign_id", campaignID).Msg("broadcast status unavailable, merging transactional only")
	}

	results := make([]model.RecipientStatus, 0, len(items))
	for _, item := range items {
		rec := model.RecipientStatus{LeadID: item.LeadID, Email: item.Email}
		if status, ok := rt.value[item.Email]; ok {
			rec.Transactional = &status
		}
		if status, ok := rb.value[item.Email]; ok {
			rec.Broadcast = &status
		}
		results = append(results, rec)
	}

	return results, nil
}
