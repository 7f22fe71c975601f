// Package emailgateway is the Go SDK for the email gateway API. It covers
// the send, stats, and status operations and parses the gateway's error
// envelope into typed errors.
package emailgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the configuration for the gateway client.
type Config struct {
	// BaseURL is the root URL of the gateway.
	// Examples: "https://email.example.com" or "https://email.example.com/api/v1"
	// The "/api/v1" suffix is appended automatically if missing.
	BaseURL string

	// Token is the service bearer token presented on every request.
	Token string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with 30s timeout is used.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if !strings.HasSuffix(c.BaseURL, "/api/v1") {
		c.BaseURL = c.BaseURL + "/api/v1"
	}
}

// Client is the email gateway SDK client.
type Client struct {
	cfg Config
}

// NewClient creates a new gateway client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// Send dispatches a send request. A SendResult is returned for both the
// success and the duplicate-rejection (409) outcome; the latter carries
// Success=false and the provider's error text.
func (c *Client) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	body, err := c.post(ctx, "/emails/send", req)
	if err != nil {
		return nil, err
	}

	var result SendResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("emailgateway: failed to parse send result: %w", err)
	}
	return &result, nil
}

// Stats runs a flat aggregate stats query.
func (c *Client) Stats(ctx context.Context, req StatsRequest) (*AggregateStats, error) {
	req.GroupBy = ""
	body, err := c.post(ctx, "/emails/stats", req)
	if err != nil {
		return nil, err
	}

	var stats AggregateStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("emailgateway: failed to parse stats: %w", err)
	}
	return &stats, nil
}

// GroupedStats runs a grouped stats query.
func (c *Client) GroupedStats(ctx context.Context, req StatsRequest) (*GroupedStats, error) {
	if req.GroupBy == "" {
		return nil, fmt.Errorf("emailgateway: groupBy is required for grouped stats")
	}
	body, err := c.post(ctx, "/emails/stats", req)
	if err != nil {
		return nil, err
	}

	var stats GroupedStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("emailgateway: failed to parse grouped stats: %w", err)
	}
	return &stats, nil
}

// Status fetches merged per-recipient status for a campaign.
func (c *Client) Status(ctx context.Context, req StatusRequest) (*StatusResponse, error) {
	body, err := c.post(ctx, "/emails/status", req)
	if err != nil {
		return nil, err
	}

	var resp StatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("emailgateway: failed to parse status response: %w", err)
	}
	return &resp, nil
}

// post sends a JSON request and returns the raw response body. A 409 is
// treated as a readable outcome, not an error; other non-2xx statuses are
// returned as *APIError.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("emailgateway: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("emailgateway: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emailgateway: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("emailgateway: failed to read response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !ok && resp.StatusCode != http.StatusConflict {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	return body, nil
}
