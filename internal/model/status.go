package model

import "time"

// StatusItem identifies one recipient in a status query
type StatusItem struct {
	LeadID string `json:"leadId,omitempty"`
	Email  string `json:"email"`
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

// StatusScope is one view boundary: lead and email state within a single
// scope (the requested campaign, or global across campaigns)
type StatusScope struct {
	Lead  LeadState  `json:"lead"`
	Email EmailState `json:"email"`
}

// ProviderStatus is one provider's status for one recipient, reported once
// scoped to the requested campaign and once aggregated globally
type ProviderStatus struct {
	Campaign StatusScope `json:"campaign"`
	Global   StatusScope `json:"global"`
}

// RecipientStatus is the merged per-recipient record. A provider sub-object
// is present only if that provider returned a match for the email.
type RecipientStatus struct {
	LeadID        string          `json:"leadId,omitempty"`
	Email         string          `json:"email"`
	Transactional *ProviderStatus `json:"transactional,omitempty"`
	Broadcast     *ProviderStatus `json:"broadcast,omitempty"`
}
