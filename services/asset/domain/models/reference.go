package models

import "github.com/google/uuid"

// Site is reference data: a physical place where assets live.
type Site struct {
	ID    uuid.UUID
	OrgID uuid.UUID
	Name  string
}

// Location is reference data: a named area within a site (room, rack, shelf).
// A location always belongs to exactly one site.
type Location struct {
	ID     uuid.UUID
	OrgID  uuid.UUID
	SiteID uuid.UUID
	Name   string
}

// Category is reference data: an asset classification (laptop, monitor, ...).
type Category struct {
	ID    uuid.UUID
	OrgID uuid.UUID
	Name  string
}
