// Package provider holds the typed clients for the upstream delivery
// services: the transactional provider, the broadcast provider, and the
// brand directory. Services depend on the interfaces here so tests can
// substitute fakes.
package provider

import (
	"context"

	"github.com/shamanic-technologies/email-sending-service/internal/model"
)

// StatsQuery narrows a provider stats request
type StatsQuery struct {
	Filter  model.StatsFilter    `json:"filter"`
	GroupBy model.GroupDimension `json:"groupBy,omitempty"`
}

// StatusQuery requests per-recipient status within a campaign
type StatusQuery struct {
	CampaignID string   `json:"campaignId"`
	Emails     []string `json:"emails"`
}

// TransactionalSend is the outgoing request to the transactional provider
type TransactionalSend struct {
	From          string            `json:"from"`
	To            string            `json:"to"`
	Subject       string            `json:"subject"`
	HTMLBody      string            `json:"htmlBody,omitempty"`
	TextBody      string            `json:"textBody,omitempty"`
	ReplyTo       string            `json:"replyTo,omitempty"`
	MessageStream string            `json:"messageStream,omitempty"`
	Tag           string            `json:"tag,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`

	OrganizationID string `json:"organizationId,omitempty"`
	BrandID        string `json:"brandId,omitempty"`
	CampaignID     string `json:"campaignId,omitempty"`
	RunID          string `json:"runId,omitempty"`
	WorkflowID     string `json:"workflowId,omitempty"`
	LeadID         string `json:"leadId,omitempty"`
}

// TransactionalSendResponse is the transactional provider's send outcome
type TransactionalSendResponse struct {
	MessageID string `json:"messageId"`
}

// BroadcastSend is the outgoing request to the broadcast provider
type BroadcastSend struct {
	To        string               `json:"to"`
	FirstName string               `json:"firstName,omitempty"`
	LastName  string               `json:"lastName,omitempty"`
	Company   string               `json:"company,omitempty"`
	Subject   string               `json:"subject"`
	Steps     []model.SequenceStep `json:"steps"`
	Variables map[string]string    `json:"variables,omitempty"`

	OrganizationID string `json:"organizationId,omitempty"`
	BrandID        string `json:"brandId,omitempty"`
	CampaignID     string `json:"campaignId,omitempty"`
	RunID          string `json:"runId,omitempty"`
	WorkflowID     string `json:"workflowId,omitempty"`
	LeadID         string `json:"leadId,omitempty"`
}

// BroadcastSendResponse is the broadcast provider's send outcome. Added is
// the number of recipients actually added to the campaign: 0 means the
// provider rejected the recipient as a duplicate, which is a business
// outcome and not a transport failure.
type BroadcastSendResponse struct {
	CampaignID string `json:"campaign_id"`
	LeadID     string `json:"lead_id,omitempty"`
	Added      int    `json:"added"`
}

// Brand is a brand directory record
type Brand struct {
	URL    string `json:"brand_url,omitempty"`
	Name   string `json:"name,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// Transactional is the contract with the transactional delivery provider
type Transactional interface {
	Send(ctx context.Context, req TransactionalSend) (*TransactionalSendResponse, error)
	Stats(ctx context.Context, q StatsQuery) (model.RawStats, error)
	GroupedStats(ctx context.Context, q StatsQuery) ([]model.RawStatsGroup, error)
	Status(ctx context.Context, q StatusQuery) (map[string]model.ProviderStatus, error)
}

// Broadcast is the contract with the broadcast/sequence provider
type Broadcast interface {
	Send(ctx context.Context, req BroadcastSend) (*BroadcastSendResponse, error)
	Stats(ctx context.Context, q StatsQuery) (model.RawStats, error)
	GroupedStats(ctx context.Context, q StatsQuery) ([]model.RawStatsGroup, error)
	Status(ctx context.Context, q StatusQuery) (map[string]model.ProviderStatus, error)
}

// BrandDirectory is the contract with the brand lookup service. Failures
// are non-fatal to callers.
type BrandDirectory interface {
	Get(ctx context.Context, brandID string) (*Brand, error)
}
