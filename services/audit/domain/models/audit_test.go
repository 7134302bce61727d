package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewAudit(t *testing.T) {
	orgID := uuid.New()
	siteID := uuid.New()
	name := AuditName("Quarterly stocktake")

	t.Run("non-empty scope starts ongoing", func(t *testing.T) {
		a := NewAudit(orgID, name, siteID, nil, 3)
		if a.Status != StatusOngoing {
			t.Fatalf("expected %v, got %v", StatusOngoing, a.Status)
		}
	})

	t.Run("empty scope yields draft", func(t *testing.T) {
		a := NewAudit(orgID, name, siteID, nil, 0)
		if a.Status != StatusDraft {
			t.Fatalf("expected %v, got %v", StatusDraft, a.Status)
		}
	})

	t.Run("sets scope fields", func(t *testing.T) {
		locID := uuid.New()
		a := NewAudit(orgID, name, siteID, &locID, 1)
		if a.OrgID != orgID {
			t.Fatalf("expected OrgID %v, got %v", orgID, a.OrgID)
		}
		if a.SiteID != siteID {
			t.Fatalf("expected SiteID %v, got %v", siteID, a.SiteID)
		}
		if a.LocationID == nil || *a.LocationID != locID {
			t.Fatalf("expected LocationID %v, got %v", locID, a.LocationID)
		}
	})

	t.Run("nil location means whole site", func(t *testing.T) {
		a := NewAudit(orgID, name, siteID, nil, 1)
		if a.LocationID != nil {
			t.Fatalf("expected nil LocationID, got %v", a.LocationID)
		}
	})

	t.Run("sets StartedAt to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		a := NewAudit(orgID, name, siteID, nil, 1)
		after := time.Now().UTC()
		if a.StartedAt.Before(before) || a.StartedAt.After(after) {
			t.Fatalf("StartedAt %v not between %v and %v", a.StartedAt, before, after)
		}
	})

	t.Run("CompletedAt starts nil", func(t *testing.T) {
		a := NewAudit(orgID, name, siteID, nil, 1)
		if a.CompletedAt != nil {
			t.Fatalf("expected nil CompletedAt, got %v", a.CompletedAt)
		}
	})

	t.Run("generates unique IDs on each call", func(t *testing.T) {
		a1 := NewAudit(orgID, name, siteID, nil, 1)
		a2 := NewAudit(orgID, name, siteID, nil, 1)
		if a1.ID == a2.ID {
			t.Fatal("expected unique IDs, got identical")
		}
	})
}

func TestAudit_Complete(t *testing.T) {
	orgID := uuid.New()
	siteID := uuid.New()
	name := AuditName("Server room check")

	t.Run("ongoing completes and stamps CompletedAt", func(t *testing.T) {
		a := NewAudit(orgID, name, siteID, nil, 2)
		now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

		if ok := a.Complete(now); !ok {
			t.Fatal("expected Complete to succeed")
		}
		if a.Status != StatusCompleted {
			t.Fatalf("expected %v, got %v", StatusCompleted, a.Status)
		}
		if a.CompletedAt == nil || !a.CompletedAt.Equal(now) {
			t.Fatalf("expected CompletedAt %v, got %v", now, a.CompletedAt)
		}
	})

	t.Run("re-completing restamps CompletedAt", func(t *testing.T) {
		a := NewAudit(orgID, name, siteID, nil, 2)
		first := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
		second := first.Add(2 * time.Hour)

		a.Complete(first)
		if ok := a.Complete(second); !ok {
			t.Fatal("expected second Complete to succeed")
		}
		if a.Status != StatusCompleted {
			t.Fatalf("expected status to stay %v, got %v", StatusCompleted, a.Status)
		}
		if a.CompletedAt == nil || !a.CompletedAt.Equal(second) {
			t.Fatalf("expected CompletedAt restamped to %v, got %v", second, a.CompletedAt)
		}
	})

	t.Run("draft cannot complete", func(t *testing.T) {
		a := NewAudit(orgID, name, siteID, nil, 0)
		if ok := a.Complete(time.Now()); ok {
			t.Fatal("expected Complete on draft to fail")
		}
		if a.Status != StatusDraft {
			t.Fatalf("expected status to stay %v, got %v", StatusDraft, a.Status)
		}
		if a.CompletedAt != nil {
			t.Fatalf("expected CompletedAt to stay nil, got %v", a.CompletedAt)
		}
	})

	t.Run("stores CompletedAt in UTC", func(t *testing.T) {
		a := NewAudit(orgID, name, siteID, nil, 1)
		loc := time.FixedZone("UTC+5", 5*3600)
		local := time.Date(2026, 3, 15, 15, 0, 0, 0, loc)

		a.Complete(local)
		if a.CompletedAt.Location() != time.UTC {
			t.Fatalf("expected UTC, got %v", a.CompletedAt.Location())
		}
	})
}
