package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/trackhq/trackhq/pkg/cache"
	assetdomain "github.com/trackhq/trackhq/services/asset/domain"
	"github.com/trackhq/trackhq/services/asset/domain/models"
	"github.com/trackhq/trackhq/services/asset/domain/repositories"
)

// CreateAssetInput carries the fields for a new asset record.
type CreateAssetInput struct {
	Tag         string
	Description string
	CategoryID  uuid.UUID
	SiteID      uuid.UUID
	LocationID  *uuid.UUID
}

// AssetService orchestrates the asset inventory: creation, retrieval, listing,
// and the scoped queries the audit context consumes. Event publishing is
// handled by the repository layer (outbox pattern). Reads are served from
// Redis cache when available.
type AssetService struct {
	repo  repositories.AssetRepository
	cache *pkgcache.AssetCache
}

// NewAssetService returns an AssetService wired with the given repository and cache.
func NewAssetService(repo repositories.AssetRepository, assetCache *pkgcache.AssetCache) *AssetService {
	return &AssetService{repo: repo, cache: assetCache}
}

// Create validates references and persists an Asset. The repository publishes
// AssetCreatedEvent within the same transaction.
func (s *AssetService) Create(ctx context.Context, orgID uuid.UUID, input CreateAssetInput) (*models.Asset, error) {
	tag, err := models.NewAssetTag(input.Tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", assetdomain.ErrInvalidAssetTag, err)
	}

	ok, err := s.repo.SiteExists(ctx, orgID, input.SiteID)
	if err != nil {
		return nil, fmt.Errorf("check site: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", assetdomain.ErrSiteNotFound, input.SiteID)
	}

	if input.LocationID != nil {
		ok, err := s.repo.LocationInSite(ctx, orgID, input.SiteID, *input.LocationID)
		if err != nil {
			return nil, fmt.Errorf("check location: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", assetdomain.ErrLocationNotFound, *input.LocationID)
		}
	}

	ok, err = s.repo.CategoryExists(ctx, orgID, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", assetdomain.ErrCategoryNotFound, input.CategoryID)
	}

	asset := models.NewAsset(orgID, tag, input.Description, input.CategoryID, input.SiteID, input.LocationID)
	if err := s.repo.Save(ctx, asset); err != nil {
		return nil, fmt.Errorf("save asset: %w", err)
	}
	return asset, nil
}

// GetByID retrieves an Asset using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *AssetService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Asset, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, orgID, id); err == nil {
			return &models.Asset{
				ID:          cached.ID,
				OrgID:       cached.OrgID,
				Tag:         models.AssetTag(cached.Tag),
				Description: cached.Description,
				CategoryID:  cached.CategoryID,
				SiteID:      cached.SiteID,
				LocationID:  cached.LocationID,
				Status:      cached.Status,
				CreatedAt:   cached.CreatedAt,
			}, nil
		} else if !errors.Is(err, redis.Nil) {
			// Cache error — fall through to Postgres.
			_ = err
		}
	}

	asset, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), &pkgcache.CachedAsset{
				ID:          asset.ID,
				OrgID:       asset.OrgID,
				Tag:         asset.Tag.String(),
				Description: asset.Description,
				CategoryID:  asset.CategoryID,
				SiteID:      asset.SiteID,
				LocationID:  asset.LocationID,
				Status:      asset.Status,
				CreatedAt:   asset.CreatedAt,
			})
		}()
	}

	return asset, nil
}

// List returns a paginated slice of asset views for the org plus total count.
func (s *AssetService) List(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]repositories.AssetView, int, error) {
	views, total, err := s.repo.FindByOrg(ctx, orgID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	return views, total, nil
}

// Delete removes an asset by ID scoped to the given org.
// Returns ErrAssetNotFound if no matching asset exists.
func (s *AssetService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, orgID, id); err != nil {
		return fmt.Errorf("get asset: %w", err)
	}
	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), orgID, id)
	}
	return nil
}

// FindByScope returns every asset view matching the site/location/category scope.
func (s *AssetService) FindByScope(ctx context.Context, orgID, siteID uuid.UUID, locationID *uuid.UUID, categoryIDs []uuid.UUID) ([]repositories.AssetView, error) {
	return s.repo.FindByScope(ctx, orgID, siteID, locationID, categoryIDs)
}

// FindByIDs returns the asset views matching ids.
func (s *AssetService) FindByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]repositories.AssetView, error) {
	return s.repo.FindByIDs(ctx, orgID, ids)
}

// SiteExists reports whether the site belongs to the org.
func (s *AssetService) SiteExists(ctx context.Context, orgID, siteID uuid.UUID) (bool, error) {
	return s.repo.SiteExists(ctx, orgID, siteID)
}

// LocationInSite reports whether the location exists and belongs to the site.
func (s *AssetService) LocationInSite(ctx context.Context, orgID, siteID, locationID uuid.UUID) (bool, error) {
	return s.repo.LocationInSite(ctx, orgID, siteID, locationID)
}
