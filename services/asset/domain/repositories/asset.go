package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/trackhq/trackhq/services/asset/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// AssetView is the fully-materialized read model of an asset with its
// reference names joined in. Consumers (listings, the audit context) get
// plain values, not relations to resolve later.
type AssetView struct {
	ID           uuid.UUID
	OrgID        uuid.UUID
	Tag          string
	Description  string
	CategoryName string
	SiteName     string
	LocationName string // empty when the asset has no location
	Status       string
}

// AssetRepository is the persistence interface for the Asset aggregate and
// its site/location/category reference data. The domain layer owns this
// interface; infrastructure implements it.
type AssetRepository interface {
	Save(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Asset, error)

	// FindByOrg retrieves a paginated list of asset views for the given org.
	// Returns the views slice and the total count (ignoring pagination).
	FindByOrg(ctx context.Context, orgID uuid.UUID, opts QueryOpts) ([]AssetView, int, error)

	// FindByScope returns every asset view at the site, optionally narrowed to
	// one location and/or an inclusion set of categories.
	FindByScope(ctx context.Context, orgID, siteID uuid.UUID, locationID *uuid.UUID, categoryIDs []uuid.UUID) ([]AssetView, error)

	// FindByIDs returns the asset views matching ids; missing ids are simply
	// absent from the result.
	FindByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]AssetView, error)

	// Delete removes an asset by ID scoped to the given org.
	Delete(ctx context.Context, orgID, id uuid.UUID) error

	// SiteExists reports whether the site belongs to the org.
	SiteExists(ctx context.Context, orgID, siteID uuid.UUID) (bool, error)

	// LocationInSite reports whether the location exists and belongs to the site.
	LocationInSite(ctx context.Context, orgID, siteID, locationID uuid.UUID) (bool, error)

	// CategoryExists reports whether the category belongs to the org.
	CategoryExists(ctx context.Context, orgID, categoryID uuid.UUID) (bool, error)
}
