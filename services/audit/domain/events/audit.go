package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the audit context.
const (
	// TopicAuditStarted is published when a new audit is created with a
	// non-empty checklist (or as a Draft for an empty scope).
	TopicAuditStarted = "audit.started"

	// TopicAuditCompleted is published when an audit transitions to Completed.
	TopicAuditCompleted = "audit.completed"
)

// AuditStartedEvent is published after a new Audit and its checklist are persisted.
type AuditStartedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	AuditID    uuid.UUID `json:"audit_id"`
	OrgID      uuid.UUID `json:"org_id"`
	Name       string    `json:"name"`
	SiteID     uuid.UUID `json:"site_id"`
	Status     string    `json:"status"`
	ItemCount  int       `json:"item_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditCompletedEvent is published after an audit is marked Completed.
// Consumers (the worker) warm the summary read-model cache from it.
type AuditCompletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	AuditID    uuid.UUID `json:"audit_id"`
	OrgID      uuid.UUID `json:"org_id"`
	Total      int       `json:"total"`
	Found      int       `json:"found"`
	Missing    int       `json:"missing"`
	OccurredAt time.Time `json:"occurred_at"`
}
