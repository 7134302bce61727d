// Package services contains stateless domain services for the audit bounded
// context. They operate purely on domain types with zero external dependencies
// beyond stdlib and the domain layer.
package services

import (
	"github.com/google/uuid"

	"github.com/trackhq/trackhq/services/audit/domain/repositories"
)

// MergeScope unions the site/location/category matches with the explicitly
// requested assets, de-duplicated by asset ID. Order is stable: scope matches
// first, then explicit extras in request order. The result is the frozen
// checklist for a new audit — resolution happens once, before any write, so
// later asset edits cannot change it.
func MergeScope(matched, explicit []repositories.AssetRecord) []repositories.AssetRecord {
	seen := make(map[uuid.UUID]struct{}, len(matched)+len(explicit))
	out := make([]repositories.AssetRecord, 0, len(matched)+len(explicit))
	for _, a := range matched {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	for _, a := range explicit {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}

// MissingIDs returns the requested ids that have no matching record, in
// request order. Used to reject audits referencing unknown assets.
func MissingIDs(requested []uuid.UUID, found []repositories.AssetRecord) []uuid.UUID {
	have := make(map[uuid.UUID]struct{}, len(found))
	for _, a := range found {
		have[a.ID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range requested {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
