package model

// Channel identifies which delivery path a send request targets
type Channel string

const (
	// ChannelTransactional is a single immediate message through the
	// transactional provider
	ChannelTransactional Channel = "transactional"
	// ChannelBroadcast is a multi-step sequence through the broadcast provider
	ChannelBroadcast Channel = "broadcast"
)

// Valid reports whether the channel is one of the supported values
func (c Channel) Valid() bool {
	return c == ChannelTransactional || c == ChannelBroadcast
}

// SendRequest is the normalized send request accepted by the gateway.
// Exactly one of Transactional or Broadcast is populated, discriminated
// by Channel.
type SendRequest struct {
	Channel Channel `json:"channel"`

	// Caller identity, taken from the authenticated token when present
	AppID string `json:"appId,omitempty"`

	// Optional correlation identifiers, forwarded to providers
	OrganizationID string `json:"organizationId,omitempty"`
	BrandID        string `json:"brandId,omitempty"`
	CampaignID     string `json:"campaignId,omitempty"`
	RunID          string `json:"runId,omitempty"`
	WorkflowID     string `json:"workflowId,omitempty"`
	LeadID         string `json:"leadId,omitempty"`

	// Recipient
	To        string `json:"to"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Company   string `json:"company,omitempty"`

	// IdempotencyKey deduplicates repeated send attempts when set
	IdempotencyKey string `json:"idempotencyKey,omitempty"`

	Transactional *TransactionalMessage `json:"transactional,omitempty"`
	Broadcast     *BroadcastSequence    `json:"broadcast,omitempty"`
}

// TransactionalMessage is the transactional variant of a send request
type TransactionalMessage struct {
	Subject  string `json:"subject"`
	HTMLBody string `json:"htmlBody,omitempty"`
	TextBody string `json:"textBody,omitempty"`
	// From overrides the gateway's default sender when set
	From string `json:"from,omitempty"`
	// MessageStream is an optional provider-specific stream hint
	MessageStream string `json:"messageStream,omitempty"`
}

// BroadcastSequence is the broadcast variant of a send request
type BroadcastSequence struct {
	Subject string         `json:"subject"`
	Steps   []SequenceStep `json:"steps"`
}

// SequenceStep is a single step of a broadcast sequence. Step ordinals are
// 1-based and contiguous; DelayDays is counted from the previous step and
// is conventionally 0 for step 1.
type SequenceStep struct {
	Step      int    `json:"step"`
	HTMLBody  string `json:"htmlBody,omitempty"`
	TextBody  string `json:"textBody,omitempty"`
	DelayDays int    `json:"delayDays"`
}

// SendResult is the uniform outcome of a send, regardless of provider
type SendResult struct {
	Success    bool    `json:"success"`
	Provider   Channel `json:"provider"`
	MessageID  string  `json:"messageId,omitempty"`
	CampaignID string  `json:"campaignId,omitempty"`
	Error      string  `json:"error,omitempty"`
	// Deduplicated is set only when the result was served from the
	// idempotency cache
	Deduplicated bool `json:"deduplicated,omitempty"`
}
