package provider

import (
	"context"
	"fmt"

	"github.com/shamanic-technologies/email-sending-service/internal/config"
	"github.com/shamanic-technologies/email-sending-service/internal/model"
)

// BroadcastClient talks to the broadcast/sequence provider
type BroadcastClient struct {
	client
}

// NewBroadcastClient creates a BroadcastClient from config
func NewBroadcastClient(cfg config.ProviderConfig) *BroadcastClient {
	return &BroadcastClient{client: newClient(cfg)}
}

// Send enrolls a recipient into a campaign sequence. The response's Added
// counter is 0 when the provider rejected the recipient as a duplicate.
func (c *BroadcastClient) Send(ctx context.Context, req BroadcastSend) (*BroadcastSendResponse, error) {
	var resp BroadcastSendResponse
	if err := c.post(ctx, "/campaigns/send", req, &resp); err != nil {
		return nil, fmt.Errorf("broadcast send: %w", err)
	}
	return &resp, nil
}

// Stats returns aggregate counters matching the query filter
func (c *BroadcastClient) Stats(ctx context.Context, q StatsQuery) (model.RawStats, error) {
	var resp model.RawStats
	if err := c.post(ctx, "/stats", q, &resp); err != nil {
		return model.RawStats{}, fmt.Errorf("broadcast stats: %w", err)
	}
	return resp, nil
}

// GroupedStats returns counters bucketed by the query's group dimension
func (c *BroadcastClient) GroupedStats(ctx context.Context, q StatsQuery) ([]model.RawStatsGroup, error) {
	var resp groupedStatsResponse
	if err := c.post(ctx, "/stats/grouped", q, &resp); err != nil {
		return nil, fmt.Errorf("broadcast grouped stats: %w", err)
	}
	return resp.Groups, nil
}

// Status returns per-email campaign and global status for the queried
// recipients
func (c *BroadcastClient) Status(ctx context.Context, q StatusQuery) (map[string]model.ProviderStatus, error) {
	var resp statusResponse
	if err := c.post(ctx, "/status", q, &resp); err != nil {
		return nil, fmt.Errorf("broadcast status: %w", err)
	}
	return resp.Results, nil
}
