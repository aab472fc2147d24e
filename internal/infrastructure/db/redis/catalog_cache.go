package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

const (
	catalogKey = "catalog:listing"
	catalogTTL = time.Minute
)

// CatalogCache stores the full sweet listing as a JSON blob under a single
// key. It only serves the unfiltered catalog; search results always hit the
// store.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// GetListing returns the cached listing and whether it was present.
func (c *CatalogCache) GetListing(ctx context.Context) ([]*domain.Sweet, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var sweets []*domain.Sweet
	if err := json.Unmarshal(raw, &sweets); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, nil
	}
	return sweets, true, nil
}

// SetListing stores the listing with the catalog TTL.
func (c *CatalogCache) SetListing(ctx context.Context, sweets []*domain.Sweet) error {
	raw, err := json.Marshal(sweets)
	if err != nil {
		return fmt.Errorf("catalog cache marshal: %w", err)
	}
	return c.client.Set(ctx, catalogKey, raw, catalogTTL).Err()
}

// Invalidate drops the cached listing after any catalog mutation.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
