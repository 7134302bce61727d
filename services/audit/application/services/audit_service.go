package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgcache "github.com/trackhq/trackhq/pkg/cache"
	auditdomain "github.com/trackhq/trackhq/services/audit/domain"
	"github.com/trackhq/trackhq/services/audit/domain/models"
	"github.com/trackhq/trackhq/services/audit/domain/repositories"
	domainsvcs "github.com/trackhq/trackhq/services/audit/domain/services"
)

// StartAuditInput is the scope of a new audit: every asset at the site —
// optionally narrowed to one location and/or a set of categories — unioned
// with any explicitly listed assets.
type StartAuditInput struct {
	Name        string
	SiteID      uuid.UUID
	LocationID  *uuid.UUID
	CategoryIDs []uuid.UUID
	AssetIDs    []uuid.UUID
}

// UpdateItemInput carries the overwrite payload for one checklist item.
// Found is a plain bool: a caller omitting it in the request submits false,
// which resets any prior true value. That overwrite-not-merge behavior is
// intentional and relied on by callers.
type UpdateItemInput struct {
	Found bool
	Notes *string
}

// VarianceRow is one report line: an expected asset with its audit outcome.
type VarianceRow struct {
	AssetID      uuid.UUID `json:"asset_id"`
	Tag          string    `json:"tag"`
	Description  string    `json:"description"`
	CategoryName string    `json:"category"`
	SiteName     string    `json:"site"`
	LocationName string    `json:"location"`
	Notes        *string   `json:"notes"`
}

// VarianceReport is the found/missing breakdown of one audit. Extras is
// always empty: there is no mechanism to record an asset discovered during a
// scan that was not on the original checklist.
type VarianceReport struct {
	Summary domainsvcs.Summary `json:"summary"`
	Found   []VarianceRow      `json:"found"`
	Missing []VarianceRow      `json:"missing"`
	Extras  []VarianceRow      `json:"extras"`
}

// AuditService orchestrates the audit lifecycle: start, per-item updates,
// completion, and reporting. Event publishing is handled by the repository
// layer (outbox pattern); summaries of completed audits are served from Redis
// when available.
type AuditService struct {
	repo   repositories.AuditRepository
	assets repositories.AssetDirectory
	cache  *pkgcache.AuditSummaryCache
	now    func() time.Time
}

// NewAuditService returns an AuditService wired with the given repository,
// asset directory, and summary cache.
func NewAuditService(repo repositories.AuditRepository, assets repositories.AssetDirectory, summaryCache *pkgcache.AuditSummaryCache) *AuditService {
	return &AuditService{repo: repo, assets: assets, cache: summaryCache, now: time.Now}
}

// Start validates the scope, resolves and freezes the matching asset set, and
// persists the audit with one checklist item per asset in a single
// transaction. An empty resolved scope produces a terminal Draft audit with no
// checklist instead of an empty Ongoing one.
func (s *AuditService) Start(ctx context.Context, orgID uuid.UUID, input StartAuditInput) (*models.Audit, error) {
	name, err := models.NewAuditName(input.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", auditdomain.ErrInvalidAuditName, err)
	}

	ok, err := s.assets.SiteExists(ctx, orgID, input.SiteID)
	if err != nil {
		return nil, fmt.Errorf("check site: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", auditdomain.ErrUnknownSite, input.SiteID)
	}

	if input.LocationID != nil {
		ok, err := s.assets.LocationInSite(ctx, orgID, input.SiteID, *input.LocationID)
		if err != nil {
			return nil, fmt.Errorf("check location: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", auditdomain.ErrLocationNotInSite, *input.LocationID)
		}
	}

	// Scope is resolved and frozen here, before any write: concurrent asset
	// edits after this point cannot change the checklist.
	matched, err := s.assets.FindByScope(ctx, orgID, input.SiteID, input.LocationID, input.CategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve scope: %w", err)
	}

	var explicit []repositories.AssetRecord
	if len(input.AssetIDs) > 0 {
		explicit, err = s.assets.FindByIDs(ctx, orgID, input.AssetIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve explicit assets: %w", err)
		}
		if unknown := domainsvcs.MissingIDs(input.AssetIDs, explicit); len(unknown) > 0 {
			return nil, fmt.Errorf("%w: %s", auditdomain.ErrUnknownAsset, unknown[0])
		}
	}

	resolved := domainsvcs.MergeScope(matched, explicit)

	audit := models.NewAudit(orgID, name, input.SiteID, input.LocationID, len(resolved))
	items := make([]*models.AuditItem, len(resolved))
	for i, asset := range resolved {
		items[i] = models.NewAuditItem(audit.ID, asset.ID)
	}

	if err := s.repo.Create(ctx, audit, items); err != nil {
		return nil, fmt.Errorf("create audit: %w", err)
	}
	return audit, nil
}

// UpdateItem overwrites the item's found flag and notes and stamps checked_at.
// Last write wins; there is no version check. The summary cache entry for the
// item's audit is invalidated since the tally may have changed.
func (s *AuditService) UpdateItem(ctx context.Context, orgID, itemID uuid.UUID, input UpdateItemInput) (*models.AuditItem, error) {
	item, err := s.repo.GetItem(ctx, orgID, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	item.Record(input.Found, input.Notes, s.now())

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, orgID, item.AuditID)
	}
	return item, nil
}

// Complete transitions an Ongoing audit to Completed and stamps completed_at.
// No "all items checked" precondition exists: unresolved items simply count as
// missing. Re-completing restamps completed_at. Draft audits are terminal and
// return ErrAuditNotStarted.
func (s *AuditService) Complete(ctx context.Context, orgID, auditID uuid.UUID) (*models.Audit, error) {
	audit, err := s.repo.GetByID(ctx, orgID, auditID)
	if err != nil {
		return nil, fmt.Errorf("get audit: %w", err)
	}

	if !audit.Complete(s.now()) {
		return nil, fmt.Errorf("%w: %s", auditdomain.ErrAuditNotStarted, auditID)
	}

	counts, err := s.repo.CountItems(ctx, orgID, auditID)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	if err := s.repo.CompleteAudit(ctx, audit, counts); err != nil {
		return nil, fmt.Errorf("complete audit: %w", err)
	}

	if s.cache != nil {
		summary := domainsvcs.SummaryFromCounts(counts.Total, counts.Found)
		_ = s.cache.Set(ctx, &pkgcache.CachedSummary{
			AuditID: audit.ID,
			OrgID:   orgID,
			Total:   summary.Total,
			Found:   summary.Found,
			Missing: summary.Missing,
		})
	}
	return audit, nil
}

// GetByID retrieves one audit.
func (s *AuditService) GetByID(ctx context.Context, orgID, auditID uuid.UUID) (*models.Audit, error) {
	audit, err := s.repo.GetByID(ctx, orgID, auditID)
	if err != nil {
		return nil, fmt.Errorf("get audit: %w", err)
	}
	return audit, nil
}

// List returns a paginated slice of audits for the org plus total count.
func (s *AuditService) List(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Audit, int, error) {
	audits, total, err := s.repo.FindByOrg(ctx, orgID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list audits: %w", err)
	}
	return audits, total, nil
}

// Items returns the full checklist of an audit.
func (s *AuditService) Items(ctx context.Context, orgID, auditID uuid.UUID) ([]*models.AuditItem, error) {
	if _, err := s.repo.GetByID(ctx, orgID, auditID); err != nil {
		return nil, fmt.Errorf("get audit: %w", err)
	}
	items, err := s.repo.FindItems(ctx, orgID, auditID)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	return items, nil
}

// Summarise returns the found/missing tally for an audit, served from the
// Redis read model when a cache entry exists.
func (s *AuditService) Summarise(ctx context.Context, orgID, auditID uuid.UUID) (domainsvcs.Summary, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, orgID, auditID); err == nil {
			return domainsvcs.Summary{Total: cached.Total, Found: cached.Found, Missing: cached.Missing}, nil
		}
		// Any cache error counts as a miss; Postgres is authoritative.
	}

	if _, err := s.repo.GetByID(ctx, orgID, auditID); err != nil {
		return domainsvcs.Summary{}, fmt.Errorf("get audit: %w", err)
	}
	counts, err := s.repo.CountItems(ctx, orgID, auditID)
	if err != nil {
		return domainsvcs.Summary{}, fmt.Errorf("count items: %w", err)
	}
	return domainsvcs.SummaryFromCounts(counts.Total, counts.Found), nil
}

// Variance produces the found/missing breakdown enriched with asset
// descriptive fields. Extras is always an empty slice: out-of-scope assets
// cannot be attached to a checklist after creation.
func (s *AuditService) Variance(ctx context.Context, orgID, auditID uuid.UUID) (*VarianceReport, error) {
	if _, err := s.repo.GetByID(ctx, orgID, auditID); err != nil {
		return nil, fmt.Errorf("get audit: %w", err)
	}

	items, err := s.repo.FindItems(ctx, orgID, auditID)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}

	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.AssetID
	}
	assets, err := s.assets.FindByIDs(ctx, orgID, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve assets: %w", err)
	}
	byID := make(map[uuid.UUID]repositories.AssetRecord, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}

	report := &VarianceReport{
		Summary: domainsvcs.Summarise(items),
		Found:   []VarianceRow{},
		Missing: []VarianceRow{},
		Extras:  []VarianceRow{},
	}
	for _, it := range items {
		row := VarianceRow{AssetID: it.AssetID, Notes: it.Notes}
		if a, ok := byID[it.AssetID]; ok {
			row.Tag = a.Tag
			row.Description = a.Description
			row.CategoryName = a.CategoryName
			row.SiteName = a.SiteName
			row.LocationName = a.LocationName
		}
		if it.Found {
			report.Found = append(report.Found, row)
		} else {
			report.Missing = append(report.Missing, row)
		}
	}
	return report, nil
}
