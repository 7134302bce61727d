package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// AssetCacheTTL is the time-to-live for cached assets.
	AssetCacheTTL = 24 * time.Hour

	assetCacheKeyPrefix = "asset"
)

// CachedAsset is the denormalized asset read model stored in Redis.
// Fields are stored as a Redis hash. Additional fields from other aggregates
// can be added here for read optimization without touching the domain model.
type CachedAsset struct {
	ID          uuid.UUID  `json:"id"`
	OrgID       uuid.UUID  `json:"org_id"`
	Tag         string     `json:"tag"`
	Description string     `json:"description"`
	CategoryID  uuid.UUID  `json:"category_id"`
	SiteID      uuid.UUID  `json:"site_id"`
	LocationID  *uuid.UUID `json:"location_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AssetCache provides structured read/write operations for asset cache entries.
// Keys are scoped by orgID to prevent cross-tenant data leakage.
// Key format: "asset:{orgID}:{assetID}"
type AssetCache struct {
	client *RedisClient
}

// NewAssetCache creates a new AssetCache backed by the given RedisClient.
func NewAssetCache(r *RedisClient) *AssetCache {
	return &AssetCache{client: r}
}

// Get retrieves a cached asset by org + asset ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *AssetCache) Get(ctx context.Context, orgID, assetID uuid.UUID) (*CachedAsset, error) {
	key := c.key(orgID, assetID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	oid, err := uuid.Parse(vals["org_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse org_id: %w", err)
	}
	categoryID, err := uuid.Parse(vals["category_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse category_id: %w", err)
	}
	siteID, err := uuid.Parse(vals["site_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse site_id: %w", err)
	}
	var locationID *uuid.UUID
	if v := vals["location_id"]; v != "" {
		lid, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("cache parse location_id: %w", err)
		}
		locationID = &lid
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedAsset{
		ID:          id,
		OrgID:       oid,
		Tag:         vals["tag"],
		Description: vals["description"],
		CategoryID:  categoryID,
		SiteID:      siteID,
		LocationID:  locationID,
		Status:      vals["status"],
		CreatedAt:   createdAt,
	}, nil
}

// Set writes a cached asset as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *AssetCache) Set(ctx context.Context, a *CachedAsset) error {
	key := c.key(a.OrgID, a.ID)
	pipe := c.client.Client().Pipeline()
	locationID := ""
	if a.LocationID != nil {
		locationID = a.LocationID.String()
	}
	pipe.HSet(ctx, key,
		"id", a.ID.String(),
		"org_id", a.OrgID.String(),
		"tag", a.Tag,
		"description", a.Description,
		"category_id", a.CategoryID.String(),
		"site_id", a.SiteID.String(),
		"location_id", locationID,
		"status", a.Status,
		"created_at", a.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, AssetCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached asset.
func (c *AssetCache) Delete(ctx context.Context, orgID, assetID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(orgID, assetID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "asset:{orgID}:{assetID}"
func (c *AssetCache) key(orgID, assetID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", assetCacheKeyPrefix, orgID, assetID)
}
