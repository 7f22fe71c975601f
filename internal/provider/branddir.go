package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shamanic-technologies/email-sending-service/internal/config"
)

// BrandDirectoryClient talks to the brand directory lookup service
type BrandDirectoryClient struct {
	client
}

// NewBrandDirectoryClient creates a BrandDirectoryClient from config
func NewBrandDirectoryClient(cfg config.ProviderConfig) *BrandDirectoryClient {
	return &BrandDirectoryClient{client: newClient(cfg)}
}

// Get looks up a brand by ID
func (c *BrandDirectoryClient) Get(ctx context.Context, brandID string) (*Brand, error) {
	var brand Brand
	if err := c.get(ctx, "/brands/"+url.PathEscape(brandID), &brand); err != nil {
		return nil, fmt.Errorf("brand directory get: %w", err)
	}
	return &brand, nil
}
