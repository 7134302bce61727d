package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditItem is one checklist line linking an Audit to a single Asset.
// Exactly one item exists per (audit, asset) pair; the set is fixed when the
// audit is started and items are never added afterwards.
type AuditItem struct {
	ID        uuid.UUID
	AuditID   uuid.UUID
	AssetID   uuid.UUID
	Found     bool
	Notes     *string
	CheckedAt *time.Time // nil until the item is first evaluated
}

// NewAuditItem constructs an unchecked item for the given audit/asset pair.
func NewAuditItem(auditID, assetID uuid.UUID) *AuditItem {
	return &AuditItem{
		ID:      uuid.New(),
		AuditID: auditID,
		AssetID: assetID,
	}
}

// Record overwrites the item's found flag and notes and stamps CheckedAt.
// This is a full overwrite, not a merge: a caller omitting found resets it to
// false. Last write wins under concurrent updates.
func (i *AuditItem) Record(found bool, notes *string, now time.Time) {
	i.Found = found
	i.Notes = notes
	t := now.UTC()
	i.CheckedAt = &t
}
