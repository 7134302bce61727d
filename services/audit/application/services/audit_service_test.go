package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	auditdomain "github.com/trackhq/trackhq/services/audit/domain"
	"github.com/trackhq/trackhq/services/audit/domain/models"
	"github.com/trackhq/trackhq/services/audit/domain/repositories"
)

type fakeRepo struct {
	audits map[uuid.UUID]*models.Audit
	items  map[uuid.UUID]*models.AuditItem

	created      *models.Audit
	createdItems []*models.AuditItem
	completed    *models.Audit
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		audits: make(map[uuid.UUID]*models.Audit),
		items:  make(map[uuid.UUID]*models.AuditItem),
	}
}

func (f *fakeRepo) Create(_ context.Context, audit *models.Audit, items []*models.AuditItem) error {
	f.created = audit
	f.createdItems = items
	f.audits[audit.ID] = audit
	for _, it := range items {
		f.items[it.ID] = it
	}
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (*models.Audit, error) {
	a, ok := f.audits[id]
	if !ok || a.OrgID != orgID {
		return nil, auditdomain.ErrAuditNotFound
	}
	return a, nil
}

func (f *fakeRepo) FindByOrg(_ context.Context, orgID uuid.UUID, _ repositories.QueryOpts) ([]*models.Audit, int, error) {
	var out []*models.Audit
	for _, a := range f.audits {
		if a.OrgID == orgID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) GetItem(_ context.Context, orgID, itemID uuid.UUID) (*models.AuditItem, error) {
	it, ok := f.items[itemID]
	if !ok {
		return nil, auditdomain.ErrAuditItemNotFound
	}
	if a, ok := f.audits[it.AuditID]; !ok || a.OrgID != orgID {
		return nil, auditdomain.ErrAuditItemNotFound
	}
	return it, nil
}

func (f *fakeRepo) FindItems(_ context.Context, _, auditID uuid.UUID) ([]*models.AuditItem, error) {
	var out []*models.AuditItem
	for _, it := range f.createdItems {
		if it.AuditID == auditID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateItem(_ context.Context, item *models.AuditItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepo) CompleteAudit(_ context.Context, audit *models.Audit, _ repositories.ItemCounts) error {
	f.completed = audit
	f.audits[audit.ID] = audit
	return nil
}

func (f *fakeRepo) CountItems(_ context.Context, _, auditID uuid.UUID) (repositories.ItemCounts, error) {
	counts := repositories.ItemCounts{}
	for _, it := range f.items {
		if it.AuditID == auditID {
			counts.Total++
			if it.Found {
				counts.Found++
			}
		}
	}
	return counts, nil
}

type fakeDirectory struct {
	scoped []repositories.AssetRecord
	byID   map[uuid.UUID]repositories.AssetRecord
	sites  map[uuid.UUID]bool
	locs   map[uuid.UUID]bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		byID:  make(map[uuid.UUID]repositories.AssetRecord),
		sites: make(map[uuid.UUID]bool),
		locs:  make(map[uuid.UUID]bool),
	}
}

func (f *fakeDirectory) FindByScope(_ context.Context, _, _ uuid.UUID, _ *uuid.UUID, _ []uuid.UUID) ([]repositories.AssetRecord, error) {
	return f.scoped, nil
}

func (f *fakeDirectory) FindByIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]repositories.AssetRecord, error) {
	var out []repositories.AssetRecord
	for _, id := range ids {
		if a, ok := f.byID[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeDirectory) SiteExists(_ context.Context, _, siteID uuid.UUID) (bool, error) {
	return f.sites[siteID], nil
}

func (f *fakeDirectory) LocationInSite(_ context.Context, _, _, locationID uuid.UUID) (bool, error) {
	return f.locs[locationID], nil
}

func newTestService(repo *fakeRepo, dir *fakeDirectory) *AuditService {
	svc := NewAuditService(repo, dir, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func addAsset(dir *fakeDirectory, tag string) repositories.AssetRecord {
	a := repositories.AssetRecord{ID: uuid.New(), Tag: tag, Description: tag + " desc"}
	dir.byID[a.ID] = a
	return a
}

func TestAuditService_Start(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	siteID := uuid.New()

	setup := func() (*fakeRepo, *fakeDirectory, *AuditService) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		dir.sites[siteID] = true
		return repo, dir, newTestService(repo, dir)
	}

	t.Run("creates ongoing audit with one item per asset", func(t *testing.T) {
		repo, dir, svc := setup()
		a1 := addAsset(dir, "LT-001")
		a2 := addAsset(dir, "LT-002")
		dir.scoped = []repositories.AssetRecord{a1, a2}

		audit, err := svc.Start(ctx, orgID, StartAuditInput{Name: "March audit", SiteID: siteID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if audit.Status != models.StatusOngoing {
			t.Fatalf("expected ongoing, got %v", audit.Status)
		}
		if len(repo.createdItems) != 2 {
			t.Fatalf("expected 2 items, got %d", len(repo.createdItems))
		}
		for _, it := range repo.createdItems {
			if it.AuditID != audit.ID {
				t.Fatalf("item not linked to audit: %v", it.AuditID)
			}
			if it.Found || it.CheckedAt != nil {
				t.Fatal("expected items to start unchecked")
			}
		}
	})

	t.Run("empty scope creates draft with no items", func(t *testing.T) {
		repo, _, svc := setup()

		audit, err := svc.Start(ctx, orgID, StartAuditInput{Name: "Empty scope", SiteID: siteID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if audit.Status != models.StatusDraft {
			t.Fatalf("expected draft, got %v", audit.Status)
		}
		if len(repo.createdItems) != 0 {
			t.Fatalf("expected no items, got %d", len(repo.createdItems))
		}
	})

	t.Run("unions scope matches with explicit assets", func(t *testing.T) {
		repo, dir, svc := setup()
		a1 := addAsset(dir, "LT-001")
		a2 := addAsset(dir, "SRV-001")
		dir.scoped = []repositories.AssetRecord{a1}

		_, err := svc.Start(ctx, orgID, StartAuditInput{
			Name:     "Mixed scope",
			SiteID:   siteID,
			AssetIDs: []uuid.UUID{a2.ID},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.createdItems) != 2 {
			t.Fatalf("expected 2 items, got %d", len(repo.createdItems))
		}
	})

	t.Run("deduplicates explicit asset already in scope", func(t *testing.T) {
		repo, dir, svc := setup()
		a1 := addAsset(dir, "LT-001")
		dir.scoped = []repositories.AssetRecord{a1}

		_, err := svc.Start(ctx, orgID, StartAuditInput{
			Name:     "Overlap",
			SiteID:   siteID,
			AssetIDs: []uuid.UUID{a1.ID},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.createdItems) != 1 {
			t.Fatalf("expected 1 item after dedup, got %d", len(repo.createdItems))
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, _, svc := setup()
		_, err := svc.Start(ctx, orgID, StartAuditInput{Name: "", SiteID: siteID})
		if !errors.Is(err, auditdomain.ErrInvalidAuditName) {
			t.Fatalf("expected ErrInvalidAuditName, got %v", err)
		}
	})

	t.Run("rejects unknown site", func(t *testing.T) {
		_, _, svc := setup()
		_, err := svc.Start(ctx, orgID, StartAuditInput{Name: "Bad site", SiteID: uuid.New()})
		if !errors.Is(err, auditdomain.ErrUnknownSite) {
			t.Fatalf("expected ErrUnknownSite, got %v", err)
		}
	})

	t.Run("rejects location outside site", func(t *testing.T) {
		_, _, svc := setup()
		locID := uuid.New()
		_, err := svc.Start(ctx, orgID, StartAuditInput{Name: "Bad loc", SiteID: siteID, LocationID: &locID})
		if !errors.Is(err, auditdomain.ErrLocationNotInSite) {
			t.Fatalf("expected ErrLocationNotInSite, got %v", err)
		}
	})

	t.Run("rejects unknown explicit asset", func(t *testing.T) {
		repo, _, svc := setup()
		_, err := svc.Start(ctx, orgID, StartAuditInput{
			Name:     "Ghost asset",
			SiteID:   siteID,
			AssetIDs: []uuid.UUID{uuid.New()},
		})
		if !errors.Is(err, auditdomain.ErrUnknownAsset) {
			t.Fatalf("expected ErrUnknownAsset, got %v", err)
		}
		if repo.created != nil {
			t.Fatal("expected nothing persisted on validation failure")
		}
	})
}

func TestAuditService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	siteID := uuid.New()

	start := func(t *testing.T, repo *fakeRepo, dir *fakeDirectory, svc *AuditService) (*models.Audit, *models.AuditItem) {
		t.Helper()
		a := addAsset(dir, "LT-001")
		dir.scoped = []repositories.AssetRecord{a}
		audit, err := svc.Start(ctx, orgID, StartAuditInput{Name: "Audit", SiteID: siteID})
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		return audit, repo.createdItems[0]
	}

	t.Run("records found with notes and stamps checked_at", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		dir.sites[siteID] = true
		svc := newTestService(repo, dir)
		_, item := start(t, repo, dir, svc)

		notes := "on desk 4"
		updated, err := svc.UpdateItem(ctx, orgID, item.ID, UpdateItemInput{Found: true, Notes: &notes})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated.Found {
			t.Fatal("expected Found true")
		}
		if updated.Notes == nil || *updated.Notes != notes {
			t.Fatalf("expected notes %q, got %v", notes, updated.Notes)
		}
		if updated.CheckedAt == nil {
			t.Fatal("expected CheckedAt stamped")
		}
	})

	t.Run("second update overwrites the first", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		dir.sites[siteID] = true
		svc := newTestService(repo, dir)
		_, item := start(t, repo, dir, svc)

		notes := "first pass"
		if _, err := svc.UpdateItem(ctx, orgID, item.ID, UpdateItemInput{Found: true, Notes: &notes}); err != nil {
			t.Fatalf("first update: %v", err)
		}
		updated, err := svc.UpdateItem(ctx, orgID, item.ID, UpdateItemInput{Found: false})
		if err != nil {
			t.Fatalf("second update: %v", err)
		}
		if updated.Found {
			t.Fatal("expected Found reset to false")
		}
		if updated.Notes != nil {
			t.Fatalf("expected notes cleared, got %v", updated.Notes)
		}
	})

	t.Run("unknown item returns ErrAuditItemNotFound", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		svc := newTestService(repo, dir)

		_, err := svc.UpdateItem(ctx, orgID, uuid.New(), UpdateItemInput{Found: true})
		if !errors.Is(err, auditdomain.ErrAuditItemNotFound) {
			t.Fatalf("expected ErrAuditItemNotFound, got %v", err)
		}
	})

	t.Run("item from another org is invisible", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		dir.sites[siteID] = true
		svc := newTestService(repo, dir)
		_, item := start(t, repo, dir, svc)

		_, err := svc.UpdateItem(ctx, uuid.New(), item.ID, UpdateItemInput{Found: true})
		if !errors.Is(err, auditdomain.ErrAuditItemNotFound) {
			t.Fatalf("expected ErrAuditItemNotFound, got %v", err)
		}
	})
}

func TestAuditService_Complete(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	siteID := uuid.New()

	t.Run("completes ongoing audit", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		dir.sites[siteID] = true
		svc := newTestService(repo, dir)
		a := addAsset(dir, "LT-001")
		dir.scoped = []repositories.AssetRecord{a}
		started, _ := svc.Start(ctx, orgID, StartAuditInput{Name: "Audit", SiteID: siteID})

		completed, err := svc.Complete(ctx, orgID, started.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if completed.Status != models.StatusCompleted {
			t.Fatalf("expected completed, got %v", completed.Status)
		}
		if completed.CompletedAt == nil {
			t.Fatal("expected CompletedAt stamped")
		}
	})

	t.Run("re-complete restamps", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		dir.sites[siteID] = true
		svc := newTestService(repo, dir)
		a := addAsset(dir, "LT-001")
		dir.scoped = []repositories.AssetRecord{a}
		started, _ := svc.Start(ctx, orgID, StartAuditInput{Name: "Audit", SiteID: siteID})

		first, err := svc.Complete(ctx, orgID, started.ID)
		if err != nil {
			t.Fatalf("first complete: %v", err)
		}
		firstStamp := *first.CompletedAt

		svc.now = func() time.Time { return firstStamp.Add(time.Hour) }
		second, err := svc.Complete(ctx, orgID, started.ID)
		if err != nil {
			t.Fatalf("second complete: %v", err)
		}
		if !second.CompletedAt.Equal(firstStamp.Add(time.Hour)) {
			t.Fatalf("expected restamp, got %v", second.CompletedAt)
		}
	})

	t.Run("draft audit returns ErrAuditNotStarted", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		dir.sites[siteID] = true
		svc := newTestService(repo, dir)
		started, _ := svc.Start(ctx, orgID, StartAuditInput{Name: "Empty", SiteID: siteID})

		_, err := svc.Complete(ctx, orgID, started.ID)
		if !errors.Is(err, auditdomain.ErrAuditNotStarted) {
			t.Fatalf("expected ErrAuditNotStarted, got %v", err)
		}
	})

	t.Run("unknown audit returns ErrAuditNotFound", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		svc := newTestService(repo, dir)

		_, err := svc.Complete(ctx, orgID, uuid.New())
		if !errors.Is(err, auditdomain.ErrAuditNotFound) {
			t.Fatalf("expected ErrAuditNotFound, got %v", err)
		}
	})
}

func TestAuditService_Summarise(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	siteID := uuid.New()

	t.Run("tallies found and missing", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		dir.sites[siteID] = true
		svc := newTestService(repo, dir)
		a1 := addAsset(dir, "LT-001")
		a2 := addAsset(dir, "LT-002")
		a3 := addAsset(dir, "LT-003")
		dir.scoped = []repositories.AssetRecord{a1, a2, a3}
		started, _ := svc.Start(ctx, orgID, StartAuditInput{Name: "Audit", SiteID: siteID})
		if _, err := svc.UpdateItem(ctx, orgID, repo.createdItems[0].ID, UpdateItemInput{Found: true}); err != nil {
			t.Fatalf("update: %v", err)
		}

		s, err := svc.Summarise(ctx, orgID, started.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Total != 3 || s.Found != 1 || s.Missing != 2 {
			t.Fatalf("unexpected summary %+v", s)
		}
	})

	t.Run("unknown audit returns ErrAuditNotFound", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), newFakeDirectory())
		_, err := svc.Summarise(ctx, orgID, uuid.New())
		if !errors.Is(err, auditdomain.ErrAuditNotFound) {
			t.Fatalf("expected ErrAuditNotFound, got %v", err)
		}
	})
}

func TestAuditService_Variance(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	siteID := uuid.New()

	t.Run("splits found and missing with asset detail", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		dir.sites[siteID] = true
		svc := newTestService(repo, dir)
		a1 := addAsset(dir, "LT-001")
		a2 := addAsset(dir, "LT-002")
		dir.scoped = []repositories.AssetRecord{a1, a2}
		started, _ := svc.Start(ctx, orgID, StartAuditInput{Name: "Audit", SiteID: siteID})
		notes := "found behind printer"
		if _, err := svc.UpdateItem(ctx, orgID, repo.createdItems[0].ID, UpdateItemInput{Found: true, Notes: &notes}); err != nil {
			t.Fatalf("update: %v", err)
		}

		report, err := svc.Variance(ctx, orgID, started.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Found) != 1 || len(report.Missing) != 1 {
			t.Fatalf("expected 1 found / 1 missing, got %d/%d", len(report.Found), len(report.Missing))
		}
		if report.Found[0].Tag != "LT-001" {
			t.Fatalf("expected tag LT-001, got %q", report.Found[0].Tag)
		}
		if report.Found[0].Notes == nil || *report.Found[0].Notes != notes {
			t.Fatalf("expected notes carried into report, got %v", report.Found[0].Notes)
		}
		if report.Summary.Total != 2 || report.Summary.Found != 1 {
			t.Fatalf("unexpected summary %+v", report.Summary)
		}
	})

	t.Run("extras always empty", func(t *testing.T) {
		repo := newFakeRepo()
		dir := newFakeDirectory()
		dir.sites[siteID] = true
		svc := newTestService(repo, dir)
		a1 := addAsset(dir, "LT-001")
		dir.scoped = []repositories.AssetRecord{a1}
		started, _ := svc.Start(ctx, orgID, StartAuditInput{Name: "Audit", SiteID: siteID})

		report, err := svc.Variance(ctx, orgID, started.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Extras == nil || len(report.Extras) != 0 {
			t.Fatalf("expected empty non-nil extras, got %v", report.Extras)
		}
	})
}
