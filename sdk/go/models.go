package emailgateway

import "time"

// SendRequest mirrors the gateway's send request shape. Exactly one of
// Transactional or Broadcast is populated, discriminated by Channel.
type SendRequest struct {
	Channel string `json:"channel"`

	OrganizationID string `json:"organizationId,omitempty"`
	BrandID        string `json:"brandId,omitempty"`
	CampaignID     string `json:"campaignId,omitempty"`
	RunID          string `json:"runId,omitempty"`
	WorkflowID     string `json:"workflowId,omitempty"`
	LeadID         string `json:"leadId,omitempty"`

	To        string `json:"to"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Company   string `json:"company,omitempty"`

	IdempotencyKey string `json:"idempotencyKey,omitempty"`

	Transactional *TransactionalMessage `json:"transactional,omitempty"`
	Broadcast     *BroadcastSequence    `json:"broadcast,omitempty"`
}

// TransactionalMessage is the transactional variant of a send request
type TransactionalMessage struct {
	Subject       string `json:"subject"`
	HTMLBody      string `json:"htmlBody,omitempty"`
	TextBody      string `json:"textBody,omitempty"`
	From          string `json:"from,omitempty"`
	MessageStream string `json:"messageStream,omitempty"`
}

// BroadcastSequence is the broadcast variant of a send request
type BroadcastSequence struct {
	Subject string         `json:"subject"`
	Steps   []SequenceStep `json:"steps"`
}

// SequenceStep is a single step of a broadcast sequence
type SequenceStep struct {
	Step      int    `json:"step"`
	HTMLBody  string `json:"htmlBody,omitempty"`
	TextBody  string `json:"textBody,omitempty"`
	DelayDays int    `json:"delayDays"`
}

// SendResult is the uniform send outcome
type SendResult struct {
	Success      bool   `json:"success"`
	Provider     string `json:"provider"`
	MessageID    string `json:"messageId,omitempty"`
	CampaignID   string `json:"campaignId,omitempty"`
	Error        string `json:"error,omitempty"`
	Deduplicated bool   `json:"deduplicated,omitempty"`
}

// StatsFilter narrows a stats query
type StatsFilter struct {
	OrganizationID string `json:"organizationId,omitempty"`
	BrandID        string `json:"brandId,omitempty"`
	CampaignID     string `json:"campaignId,omitempty"`
	WorkflowID     string `json:"workflowId,omitempty"`
	Email          string `json:"email,omitempty"`
}

// StatsRequest selects which providers to query and how to aggregate
type StatsRequest struct {
	Channel string      `json:"channel,omitempty"`
	Filter  StatsFilter `json:"filter"`
	GroupBy string      `json:"groupBy,omitempty"`
}

// NormalizedStats is the canonical, fully-populated stats shape
type NormalizedStats struct {
	Sent      int `json:"sent"`
	Delivered int `json:"delivered"`
	Opened    int `json:"opened"`
	Clicked   int `json:"clicked"`
	Replied   int `json:"replied"`
	Bounced   int `json:"bounced"`

	Recipients int `json:"recipients"`

	WillingToMeet int `json:"willingToMeet"`
	NotInterested int `json:"notInterested"`
	OutOfOffice   int `json:"outOfOffice"`
	AutoReply     int `json:"autoReply"`
}

// ChannelStats is one channel's slot in a flat aggregate response
type ChannelStats struct {
	Stats *NormalizedStats `json:"stats,omitempty"`
	Error string           `json:"error,omitempty"`
}

// AggregateStats is the flat stats response
type AggregateStats struct {
	Transactional *ChannelStats `json:"transactional,omitempty"`
	Broadcast     *ChannelStats `json:"broadcast,omitempty"`
}

// StatsGroup is one merged bucket keyed by the grouping dimension value
type StatsGroup struct {
	Key           string           `json:"key"`
	Transactional *NormalizedStats `json:"transactional,omitempty"`
	Broadcast     *NormalizedStats `json:"broadcast,omitempty"`
}

// GroupedStats is the grouped stats response
type GroupedStats struct {
	Groups []StatsGroup `json:"groups"`
}

// StatusItem identifies one recipient in a status query
type StatusItem struct {
	LeadID string `json:"leadId,omitempty"`
	Email  string `json:"email"`
}

// StatusRequest asks for merged per-recipient status within a campaign
type StatusRequest struct {
	CampaignID string       `json:"campaignId"`
	Items      []StatusItem `json:"items"`
}

// LeadState is delivery/engagement state at the lead level
type LeadState struct {
	Contacted       bool       `json:"contacted"`
	Delivered       bool       `json:"delivered"`
	Replied         bool       `json:"replied"`
	LastDeliveredAt *time.Time `json:"lastDeliveredAt,omitempty"`
}

// EmailState is delivery/engagement state at the email-address level
type EmailState struct {
	Contacted       bool       `json:"contacted"`
	Delivered       bool       `json:"delivered"`
	Bounced         bool       `json:"bounced"`
	Unsubscribed    bool       `json:"unsubscribed"`
	LastDeliveredAt *time.Time `json:"lastDeliveredAt,omitempty"`
}

// StatusScope is one view boundary, campaign-scoped or global
type StatusScope struct {
	Lead  LeadState  `json:"lead"`
	Email EmailState `json:"email"`
}

// ProviderStatus is one provider's status for one recipient
type ProviderStatus struct {
	Campaign StatusScope `json:"campaign"`
	Global   StatusScope `json:"global"`
}

// RecipientStatus is the merged per-recipient record
type RecipientStatus struct {
	LeadID        string          `json:"leadId,omitempty"`
	Email         string          `json:"email"`
	Transactional *ProviderStatus `json:"transactional,omitempty"`
	Broadcast     *ProviderStatus `json:"broadcast,omitempty"`
}

// StatusResponse carries the merged per-recipient records
type StatusResponse struct {
	Results []RecipientStatus `json:"results"`
}
