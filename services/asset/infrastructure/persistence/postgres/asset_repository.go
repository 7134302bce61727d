package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/trackhq/trackhq/pkg/database"
	"github.com/trackhq/trackhq/pkg/events"
	assetdomain "github.com/trackhq/trackhq/services/asset/domain"
	domainevents "github.com/trackhq/trackhq/services/asset/domain/events"
	"github.com/trackhq/trackhq/services/asset/domain/models"
	"github.com/trackhq/trackhq/services/asset/domain/repositories"
)

// AssetRepository implements repositories.AssetRepository against PostgreSQL.
type AssetRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewAssetRepository returns an AssetRepository backed by the given connection
// pool and event bus. The bus is used to publish AssetCreatedEvents after a
// successful save.
func NewAssetRepository(db *database.Database, bus *events.EventBus) *AssetRepository {
	return &AssetRepository{db: db, bus: bus}
}

const assetViewSelect = `
SELECT a.id, a.org_id, a.tag, a.description, c.name, s.name, COALESCE(l.name, ''), a.status
FROM assets a
JOIN categories c ON c.id = a.category_id
JOIN sites s ON s.id = a.site_id
LEFT JOIN locations l ON l.id = a.location_id`

// Save persists a new Asset and publishes an AssetCreatedEvent within the same
// transaction. Returns ErrAssetTagTaken on unique constraint violations.
func (r *AssetRepository) Save(ctx context.Context, asset *models.Asset) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO assets (id, org_id, tag, description, category_id, site_id, location_id, assigned_to, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			asset.ID, asset.OrgID, asset.Tag.String(), asset.Description,
			asset.CategoryID, asset.SiteID, nullUUID(asset.LocationID),
			asset.AssignedTo, asset.Status, asset.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return assetdomain.ErrAssetTagTaken
			}
			return fmt.Errorf("insert asset: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, asset); err != nil {
				return fmt.Errorf("publish asset created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an Asset by ID scoped to the given org. Returns
// ErrAssetNotFound if not found.
func (r *AssetRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Asset, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, org_id, tag, description, category_id, site_id, location_id, assigned_to, status, created_at
		FROM assets WHERE id = $1 AND org_id = $2`, id, orgID)

	asset, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assetdomain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("query asset: %w", err)
	}
	return asset, nil
}

// FindByOrg retrieves a paginated list of asset views and total count for the given org.
func (r *AssetRepository) FindByOrg(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]repositories.AssetView, int, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		assetViewSelect+` WHERE a.org_id = $1 ORDER BY a.tag LIMIT $2 OFFSET $3`,
		orgID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query assets: %w", err)
	}
	views, err := scanViews(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assets WHERE org_id = $1`, orgID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}
	return views, total, nil
}

// FindByScope returns every asset view at the site, optionally narrowed to one
// location and/or an inclusion set of categories.
func (r *AssetRepository) FindByScope(ctx context.Context, orgID, siteID uuid.UUID, locationID *uuid.UUID, categoryIDs []uuid.UUID) ([]repositories.AssetView, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		assetViewSelect+`
		WHERE a.org_id = $1 AND a.site_id = $2
		  AND ($3::uuid IS NULL OR a.location_id = $3)
		  AND (cardinality($4::uuid[]) = 0 OR a.category_id = ANY($4))
		ORDER BY a.tag`,
		orgID, siteID, nullUUID(locationID), uuidStrings(categoryIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("query assets by scope: %w", err)
	}
	return scanViews(rows)
}

// FindByIDs returns the asset views matching ids. Missing ids are absent from
// the result.
func (r *AssetRepository) FindByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]repositories.AssetView, error) {
	if len(ids) == 0 {
		return []repositories.AssetView{}, nil
	}
	rows, err := r.db.DB().QueryContext(ctx,
		assetViewSelect+` WHERE a.org_id = $1 AND a.id = ANY($2::uuid[]) ORDER BY a.tag`,
		orgID, uuidStrings(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("query assets by ids: %w", err)
	}
	return scanViews(rows)
}

// Delete removes an asset by ID scoped to the given org.
func (r *AssetRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM assets WHERE id = $1 AND org_id = $2`, id, orgID,
	); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// SiteExists reports whether the site belongs to the org.
func (r *AssetRepository) SiteExists(ctx context.Context, orgID, siteID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM sites WHERE id = $1 AND org_id = $2)`, siteID, orgID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check site exists: %w", err)
	}
	return exists, nil
}

// LocationInSite reports whether the location exists and belongs to the site.
func (r *AssetRepository) LocationInSite(ctx context.Context, orgID, siteID, locationID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM locations WHERE id = $1 AND site_id = $2 AND org_id = $3)`,
		locationID, siteID, orgID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check location in site: %w", err)
	}
	return exists, nil
}

// CategoryExists reports whether the category belongs to the org.
func (r *AssetRepository) CategoryExists(ctx context.Context, orgID, categoryID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1 AND org_id = $2)`, categoryID, orgID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check category exists: %w", err)
	}
	return exists, nil
}

func (r *AssetRepository) publishCreated(tx *sql.Tx, asset *models.Asset) error {
	event := domainevents.AssetCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		AssetID:     asset.ID,
		OrgID:       asset.OrgID,
		Tag:         asset.Tag.String(),
		Description: asset.Description,
		CategoryID:  asset.CategoryID,
		SiteID:      asset.SiteID,
		LocationID:  asset.LocationID,
		Status:      asset.Status,
		OccurredAt:  asset.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicAssetCreated, msg)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*models.Asset, error) {
	var (
		asset      models.Asset
		tag        string
		locationID uuid.NullUUID
		assignedTo sql.NullString
	)
	if err := row.Scan(
		&asset.ID, &asset.OrgID, &tag, &asset.Description,
		&asset.CategoryID, &asset.SiteID, &locationID, &assignedTo,
		&asset.Status, &asset.CreatedAt,
	); err != nil {
		return nil, err
	}
	asset.Tag = models.AssetTag(tag)
	if locationID.Valid {
		asset.LocationID = &locationID.UUID
	}
	if assignedTo.Valid {
		asset.AssignedTo = &assignedTo.String
	}
	return &asset, nil
}

func scanViews(rows *sql.Rows) ([]repositories.AssetView, error) {
	defer rows.Close() //nolint:errcheck
	views := []repositories.AssetView{}
	for rows.Next() {
		var v repositories.AssetView
		if err := rows.Scan(
			&v.ID, &v.OrgID, &v.Tag, &v.Description,
			&v.CategoryName, &v.SiteName, &v.LocationName, &v.Status,
		); err != nil {
			return nil, fmt.Errorf("scan asset view: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset views: %w", err)
	}
	return views, nil
}

// nullUUID converts an optional UUID into its database representation.
func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// uuidStrings renders ids as strings for a ::uuid[] parameter.
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
