package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/trackhq/trackhq/services/audit/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"audit not found"`
} // @name AuditErrorResponse

// AuditResponse is the wire representation of one audit.
type AuditResponse struct {
	ID          uuid.UUID  `json:"id"           example:"123e4567-e89b-12d3-a456-426614174000"`
	OrgID       uuid.UUID  `json:"org_id"       example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string     `json:"name"         example:"Q4 Count"`
	SiteID      uuid.UUID  `json:"site_id"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	Status      string     `json:"status"       example:"ongoing"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
} // @name AuditResponse

// AuditItemResponse is the wire representation of one checklist item.
type AuditItemResponse struct {
	ID        uuid.UUID  `json:"id"`
	AuditID   uuid.UUID  `json:"audit_id"`
	AssetID   uuid.UUID  `json:"asset_id"`
	Found     bool       `json:"found"`
	Notes     *string    `json:"notes,omitempty"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
} // @name AuditItemResponse

func toAuditResponse(a *models.Audit) AuditResponse {
	return AuditResponse{
		ID:          a.ID,
		OrgID:       a.OrgID,
		Name:        a.Name.String(),
		SiteID:      a.SiteID,
		LocationID:  a.LocationID,
		Status:      a.Status.String(),
		StartedAt:   a.StartedAt,
		CompletedAt: a.CompletedAt,
	}
}

func toItemResponse(i *models.AuditItem) AuditItemResponse {
	return AuditItemResponse{
		ID:        i.ID,
		AuditID:   i.AuditID,
		AssetID:   i.AssetID,
		Found:     i.Found,
		Notes:     i.Notes,
		CheckedAt: i.CheckedAt,
	}
}
