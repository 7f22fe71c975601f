package provider

import (
	"context"
	"fmt"

	"github.com/shamanic-technologies/email-sending-service/internal/config"
	"github.com/shamanic-technologies/email-sending-service/internal/model"
)

// TransactionalClient talks to the transactional delivery provider
type TransactionalClient struct {
	client
}

// NewTransactionalClient creates a TransactionalClient from config
func NewTransactionalClient(cfg config.ProviderConfig) *TransactionalClient {
	return &TransactionalClient{client: newClient(cfg)}
}

// Send dispatches a single message
func (c *TransactionalClient) Send(ctx context.Context, req TransactionalSend) (*TransactionalSendResponse, error) {
	var resp TransactionalSendResponse
	if err := c.post(ctx, "/email", req, &resp); err != nil {
		return nil, fmt.Errorf("transactional send: %w", err)
	}
	return &resp, nil
}

// Stats returns aggregate counters matching the query filter
func (c *TransactionalClient) Stats(ctx context.Context, q StatsQuery) (model.RawStats, error) {
	var resp model.RawStats
	if err := c.post(ctx, "/stats", q, &resp); err != nil {
		return model.RawStats{}, fmt.Errorf("transactional stats: %w", err)
	}
	return resp, nil
}

type groupedStatsResponse struct {
	Groups []model.RawStatsGroup `json:"groups"`
}

// GroupedStats returns counters bucketed by the query's group dimension
func (c *TransactionalClient) GroupedStats(ctx context.Context, q StatsQuery) ([]model.RawStatsGroup, error) {
	var resp groupedStatsResponse
	if err := c.post(ctx, "/stats/grouped", q, &resp); err != nil {
		return nil, fmt.Errorf("transactional grouped stats: %w", err)
	}
	return resp.Groups, nil
}

type statusResponse struct {
	Results map[string]model.ProviderStatus `json:"results"`
}

// Status returns per-email campaign and global status for the queried
// recipients. Emails the provider has no record of are absent from the map.
func (c *TransactionalClient) Status(ctx context.Context, q StatusQuery) (map[string]model.ProviderStatus, error) {
	var resp statusResponse
	if err := c.post(ctx, "/status", q, &resp); err != nil {
		return nil, fmt.Errorf("transactional status: %w", err)
	}
	return resp.Results, nil
}
