package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit is the aggregate root for one reconciliation exercise: a checklist of
// assets expected at a site (optionally narrowed to one location) that
// operators verify as found or missing.
type Audit struct {
	ID          uuid.UUID
	OrgID       uuid.UUID // tenant scope — always filter by this in queries
	Name        AuditName
	SiteID      uuid.UUID
	LocationID  *uuid.UUID // nil when the audit covers the whole site
	Status      Status
	StartedAt   time.Time
	CompletedAt *time.Time // set on completion; re-completion restamps
}

// NewAudit constructs an Audit for the given scope. itemCount is the size of
// the resolved asset set: a zero-asset scope produces a terminal Draft audit
// so operators are not left with an empty Ongoing checklist.
func NewAudit(orgID uuid.UUID, name AuditName, siteID uuid.UUID, locationID *uuid.UUID, itemCount int) *Audit {
	status := StatusOngoing
	if itemCount == 0 {
		status = StatusDraft
	}
	return &Audit{
		ID:         uuid.New(),
		OrgID:      orgID,
		Name:       name,
		SiteID:     siteID,
		LocationID: locationID,
		Status:     status,
		StartedAt:  time.Now().UTC(),
	}
}

// Complete transitions the audit to Completed and stamps CompletedAt.
// Calling Complete on an already-completed audit restamps CompletedAt; the
// status stays Completed. Returns false when the audit is a Draft, which is
// terminal and never held a checklist.
func (a *Audit) Complete(now time.Time) bool {
	switch {
	case a.Status.CanTransitionTo(StatusCompleted):
		a.Status = StatusCompleted
	case a.Status == StatusCompleted:
		// idempotent in effect: restamp only
	default:
		return false
	}
	t := now.UTC()
	a.CompletedAt = &t
	return true
}
