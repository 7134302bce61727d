package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicAssetCreated is the Watermill topic published when an Asset is created.
const TopicAssetCreated = "asset.created"

// AssetCreatedEvent is published after a new Asset is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicAssetCreated).
type AssetCreatedEvent struct {
	EventID uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version int       `json:"version"`  // Schema version; increment on breaking changes
	AssetID     uuid.UUID  `json:"asset_id"`
	OrgID       uuid.UUID  `json:"org_id"`
	Tag         string     `json:"tag"`
	Description string     `json:"description"`
	CategoryID  uuid.UUID  `json:"category_id"`
	SiteID      uuid.UUID  `json:"site_id"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	Status      string     `json:"status"`
	OccurredAt  time.Time  `json:"occurred_at"`
}
