package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/trackhq/trackhq/services/audit/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// ItemCounts holds the per-audit checklist tallies used for summaries.
type ItemCounts struct {
	Total int
	Found int
}

// AuditRepository is the persistence interface for the Audit aggregate.
// The domain layer owns this interface; infrastructure implements it.
type AuditRepository interface {
	// Create persists the audit and all of its items atomically. Nothing is
	// written if any part fails.
	Create(ctx context.Context, audit *models.Audit, items []*models.AuditItem) error

	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Audit, error)

	// FindByOrg retrieves a paginated list of audits for the given org.
	// Returns the audits slice and the total count (ignoring pagination).
	FindByOrg(ctx context.Context, orgID uuid.UUID, opts QueryOpts) ([]*models.Audit, int, error)

	// GetItem retrieves one checklist item, org-scoped through its audit.
	GetItem(ctx context.Context, orgID, itemID uuid.UUID) (*models.AuditItem, error)

	// FindItems returns every checklist item of an audit.
	FindItems(ctx context.Context, orgID, auditID uuid.UUID) ([]*models.AuditItem, error)

	// UpdateItem persists an overwrite of found/notes/checked_at.
	UpdateItem(ctx context.Context, item *models.AuditItem) error

	// CompleteAudit persists a status/completed_at change.
	CompleteAudit(ctx context.Context, audit *models.Audit, counts ItemCounts) error

	// CountItems tallies total and found items for an audit.
	CountItems(ctx context.Context, orgID, auditID uuid.UUID) (ItemCounts, error)
}
