package repositories

import (
	"context"

	"github.com/google/uuid"
)

// AssetRecord is the fully-materialized view of an asset as the audit context
// consumes it: descriptive fields only, no relations to resolve later.
// Audits reference assets and never mutate them.
type AssetRecord struct {
	ID           uuid.UUID
	Tag          string
	Description  string
	CategoryName string
	SiteName     string
	LocationName string
	Status       string
}

// AssetDirectory is the audit context's read-only port onto the asset
// inventory. The asset service implements it.
type AssetDirectory interface {
	// FindByScope returns every asset at the site, optionally narrowed to one
	// location and/or an inclusion set of categories.
	FindByScope(ctx context.Context, orgID, siteID uuid.UUID, locationID *uuid.UUID, categoryIDs []uuid.UUID) ([]AssetRecord, error)

	// FindByIDs returns the assets matching ids; missing ids are simply absent
	// from the result.
	FindByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]AssetRecord, error)

	// SiteExists reports whether the site belongs to the org.
	SiteExists(ctx context.Context, orgID, siteID uuid.UUID) (bool, error)

	// LocationInSite reports whether the location exists and belongs to the site.
	LocationInSite(ctx context.Context, orgID, siteID, locationID uuid.UUID) (bool, error)
}
