package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewAsset(t *testing.T) {
	orgID := uuid.New()
	categoryID := uuid.New()
	siteID := uuid.New()
	tag := AssetTag("LT-0042")

	t.Run("defaults status to in_stock", func(t *testing.T) {
		a := NewAsset(orgID, tag, "ThinkPad X1", categoryID, siteID, nil)
		if a.Status != StatusInStock {
			t.Fatalf("expected %q, got %q", StatusInStock, a.Status)
		}
	})

	t.Run("sets identity and placement", func(t *testing.T) {
		locID := uuid.New()
		a := NewAsset(orgID, tag, "ThinkPad X1", categoryID, siteID, &locID)
		if a.OrgID != orgID {
			t.Fatalf("expected OrgID %v, got %v", orgID, a.OrgID)
		}
		if a.Tag != tag {
			t.Fatalf("expected Tag %v, got %v", tag, a.Tag)
		}
		if a.CategoryID != categoryID || a.SiteID != siteID {
			t.Fatal("category/site not set")
		}
		if a.LocationID == nil || *a.LocationID != locID {
			t.Fatalf("expected LocationID %v, got %v", locID, a.LocationID)
		}
	})

	t.Run("nil location allowed", func(t *testing.T) {
		a := NewAsset(orgID, tag, "Rack switch", categoryID, siteID, nil)
		if a.LocationID != nil {
			t.Fatalf("expected nil LocationID, got %v", a.LocationID)
		}
	})

	t.Run("sets CreatedAt to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		a := NewAsset(orgID, tag, "ThinkPad X1", categoryID, siteID, nil)
		after := time.Now().UTC()
		if a.CreatedAt.Before(before) || a.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", a.CreatedAt, before, after)
		}
	})

	t.Run("generates unique IDs on each call", func(t *testing.T) {
		a1 := NewAsset(orgID, tag, "x", categoryID, siteID, nil)
		a2 := NewAsset(orgID, tag, "x", categoryID, siteID, nil)
		if a1.ID == a2.ID {
			t.Fatal("expected unique IDs, got identical")
		}
	})
}
