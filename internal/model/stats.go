package model

// GroupDimension is the dimension grouped stats are keyed by
type GroupDimension string

const (
	GroupByBrand    GroupDimension = "brand"
	GroupByCampaign GroupDimension = "campaign"
	GroupByWorkflow GroupDimension = "workflow"
	GroupByEmail    GroupDimension = "email"
)

// Valid reports whether the dimension is one of the supported values
func (d GroupDimension) Valid() bool {
	switch d {
	case GroupByBrand, GroupByCampaign, GroupByWorkflow, GroupByEmail:
		return true
	}
	return false
}

// StatsFilter narrows a stats query. All fields are optional.
type StatsFilter struct {
	OrganizationID string `json:"organizationId,omitempty"`
	BrandID        string `json:"brandId,omitempty"`
	CampaignID     string `json:"campaignId,omitempty"`
	WorkflowID     string `json:"workflowId,omitempty"`
	Email          string `json:"email,omitempty"`
}

// RawStats is the sparse per-provider counter payload. Providers differ in
// which fields they report; nil means the provider did not report it.
type RawStats struct {
	Sent      *int `json:"sent,omitempty"`
	Delivered *int `json:"delivered,omitempty"`
	Opened    *int `json:"opened,omitempty"`
	Clicked   *int `json:"clicked,omitempty"`
	Replied   *int `json:"replied,omitempty"`
	Bounced   *int `json:"bounced,omitempty"`

	// Recipients is the explicit recipient count; falls back to Sent when
	// the provider omits it
	Recipients *int `json:"recipients,omitempty"`

	// Reply subtype counters, not uniformly present across providers
	WillingToMeet *int `json:"willing_to_meet,omitempty"`
	NotInterested *int `json:"not_interested,omitempty"`
	OutOfOffice   *int `json:"out_of_office,omitempty"`
	AutoReply     *int `json:"auto_reply,omitempty"`
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

// Normalize maps a sparse raw payload to the canonical shape. Every missing
// counter defaults to 0 and a missing recipient count falls back to the
// sent counter, so the result never has an absent field.
func Normalize(raw RawStats) NormalizedStats {
	n := NormalizedStats{
		Sent:          orZero(raw.Sent),
		Delivered:     orZero(raw.Delivered),
		Opened:        orZero(raw.Opened),
		Clicked:       orZero(raw.Clicked),
		Replied:       orZero(raw.Replied),
		Bounced:       orZero(raw.Bounced),
		WillingToMeet: orZero(raw.WillingToMeet),
		NotInterested: orZero(raw.NotInterested),
		OutOfOffice:   orZero(raw.OutOfOffice),
		AutoReply:     orZero(raw.AutoReply),
	}
	if raw.Recipients != nil {
		n.Recipients = *raw.Recipients
	} else {
		n.Recipients = n.Sent
	}
	return n
}

func orZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// RawStatsGroup is one bucket of a provider's grouped stats response
type RawStatsGroup struct {
	Key   string   `json:"key"`
	Stats RawStats `json:"stats"`
}

// StatsGroup is one merged bucket keyed by the grouping dimension value.
// A side queried but absent from that provider's response stays nil rather
// than zero-filled.
type StatsGroup struct {
	Key           string           `json:"key"`
	Transactional *NormalizedStats `json:"transactional,omitempty"`
	Broadcast     *NormalizedStats `json:"broadcast,omitempty"`
}

// ChannelStats is one channel's slot in a flat aggregate response: either
// normalized stats or an error marker when that provider failed
type ChannelStats struct {
	Stats *NormalizedStats `json:"stats,omitempty"`
	Error string           `json:"error,omitempty"`
}
