package models

import (
	"time"

	"github.com/google/uuid"
)

// Asset lifecycle status values. Free-form beyond this set is rejected at the
// request boundary; audits read the value verbatim.
const (
	StatusDeployed    = "deployed"
	StatusInStock     = "in_stock"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

// Asset is the canonical record for one physical or software asset.
// Identity is immutable; descriptive attributes change over the asset's life.
// Audits reference assets and never mutate them.
type Asset struct {
	ID          uuid.UUID
	OrgID       uuid.UUID // tenant scope — always filter by this in queries
	Tag         AssetTag
	Description string
	CategoryID  uuid.UUID
	SiteID      uuid.UUID
	LocationID  *uuid.UUID // nil when not placed at a specific location
	AssignedTo  *string    // free-form assignee; staff directory is external
	Status      string
	CreatedAt   time.Time
}

// NewAsset constructs a valid Asset with generated ID and current timestamp.
func NewAsset(orgID uuid.UUID, tag AssetTag, description string, categoryID, siteID uuid.UUID, locationID *uuid.UUID) *Asset {
	return &Asset{
		ID:          uuid.New(),
		OrgID:       orgID,
		Tag:         tag,
		Description: description,
		CategoryID:  categoryID,
		SiteID:      siteID,
		LocationID:  locationID,
		Status:      StatusInStock,
		CreatedAt:   time.Now().UTC(),
	}
}
