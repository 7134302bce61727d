package services

import (
	"context"

	"github.com/google/uuid"

	assetsvcs "github.com/trackhq/trackhq/services/asset/application/services"
	assetrepos "github.com/trackhq/trackhq/services/asset/domain/repositories"
	"github.com/trackhq/trackhq/services/audit/domain/repositories"
)

// assetDirectory adapts the asset context's application service to the audit
// context's read-only AssetDirectory port. Contexts stay decoupled: the audit
// domain never imports asset types.
type assetDirectory struct {
	assets *assetsvcs.AssetService
}

// NewAssetDirectory wraps the asset service as an AssetDirectory.
func NewAssetDirectory(assets *assetsvcs.AssetService) repositories.AssetDirectory {
	return &assetDirectory{assets: assets}
}

func (d *assetDirectory) FindByScope(ctx context.Context, orgID, siteID uuid.UUID, locationID *uuid.UUID, categoryIDs []uuid.UUID) ([]repositories.AssetRecord, error) {
	views, err := d.assets.FindByScope(ctx, orgID, siteID, locationID, categoryIDs)
	if err != nil {
		return nil, err
	}
	return toRecords(views), nil
}

func (d *assetDirectory) FindByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]repositories.AssetRecord, error) {
	views, err := d.assets.FindByIDs(ctx, orgID, ids)
	if err != nil {
		return nil, err
	}
	return toRecords(views), nil
}

func (d *assetDirectory) SiteExists(ctx context.Context, orgID, siteID uuid.UUID) (bool, error) {
	return d.assets.SiteExists(ctx, orgID, siteID)
}

func (d *assetDirectory) LocationInSite(ctx context.Context, orgID, siteID, locationID uuid.UUID) (bool, error) {
	return d.assets.LocationInSite(ctx, orgID, siteID, locationID)
}

func toRecords(views []assetrepos.AssetView) []repositories.AssetRecord {
	records := make([]repositories.AssetRecord, len(views))
	for i, v := range views {
		records[i] = repositories.AssetRecord{
			ID:           v.ID,
			Tag:          v.Tag,
			Description:  v.Description,
			CategoryName: v.CategoryName,
			SiteName:     v.SiteName,
			LocationName: v.LocationName,
			Status:       v.Status,
		}
	}
	return records
}
