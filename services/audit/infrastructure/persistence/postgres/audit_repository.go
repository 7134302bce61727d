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

	"github.com/trackhq/trackhq/pkg/database"
	"github.com/trackhq/trackhq/pkg/events"
	auditdomain "github.com/trackhq/trackhq/services/audit/domain"
	domainevents "github.com/trackhq/trackhq/services/audit/domain/events"
	"github.com/trackhq/trackhq/services/audit/domain/models"
	"github.com/trackhq/trackhq/services/audit/domain/repositories"
)

// AuditRepository implements repositories.AuditRepository against PostgreSQL.
type AuditRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewAuditRepository returns an AuditRepository backed by the given connection
// pool and event bus. The bus is used to publish audit lifecycle events in the
// same transaction as the state change (outbox pattern).
func NewAuditRepository(db *database.Database, bus *events.EventBus) *AuditRepository {
	return &AuditRepository{db: db, bus: bus}
}

// Create persists the audit and its entire checklist in one transaction,
// together with the AuditStartedEvent. If any insert fails nothing is written.
func (r *AuditRepository) Create(ctx context.Context, audit *models.Audit, items []*models.AuditItem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO audits (id, org_id, name, site_id, location_id, status, started_at, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			audit.ID, audit.OrgID, audit.Name.String(), audit.SiteID,
			nullUUID(audit.LocationID), audit.Status.String(), audit.StartedAt, audit.CompletedAt,
		)
		if err != nil {
			return fmt.Errorf("insert audit: %w", err)
		}

		for _, item := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO audit_items (id, audit_id, asset_id, found, notes, checked_at)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				item.ID, item.AuditID, item.AssetID, item.Found, item.Notes, item.CheckedAt,
			); err != nil {
				return fmt.Errorf("insert audit item: %w", err)
			}
		}

		if r.bus != nil {
			if err := r.publishStarted(tx, audit, len(items)); err != nil {
				return fmt.Errorf("publish audit started: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an Audit by ID scoped to the given org. Returns
// ErrAuditNotFound if not found.
func (r *AuditRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Audit, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, org_id, name, site_id, location_id, status, started_at, completed_at
		FROM audits WHERE id = $1 AND org_id = $2`, id, orgID)

	audit, err := scanAudit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auditdomain.ErrAuditNotFound
		}
		return nil, fmt.Errorf("query audit: %w", err)
	}
	return audit, nil
}

// FindByOrg retrieves a paginated list of audits and total count for the given
// org, most recently started first.
func (r *AuditRepository) FindByOrg(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Audit, int, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, org_id, name, site_id, location_id, status, started_at, completed_at
		FROM audits WHERE org_id = $1
		ORDER BY started_at DESC LIMIT $2 OFFSET $3`,
		orgID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query audits: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	audits := []*models.Audit{}
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan audit: %w", err)
		}
		audits = append(audits, audit)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audits: %w", err)
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audits WHERE org_id = $1`, orgID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audits: %w", err)
	}
	return audits, total, nil
}

// GetItem retrieves one checklist item, org-scoped through its audit.
// Returns ErrAuditItemNotFound if not found.
func (r *AuditRepository) GetItem(ctx context.Context, orgID, itemID uuid.UUID) (*models.AuditItem, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT i.id, i.audit_id, i.asset_id, i.found, i.notes, i.checked_at
		FROM audit_items i
		JOIN audits a ON a.id = i.audit_id
		WHERE i.id = $1 AND a.org_id = $2`, itemID, orgID)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auditdomain.ErrAuditItemNotFound
		}
		return nil, fmt.Errorf("query audit item: %w", err)
	}
	return item, nil
}

// FindItems returns every checklist item of an audit.
func (r *AuditRepository) FindItems(ctx context.Context, orgID, auditID uuid.UUID) ([]*models.AuditItem, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT i.id, i.audit_id, i.asset_id, i.found, i.notes, i.checked_at
		FROM audit_items i
		JOIN audits a ON a.id = i.audit_id
		WHERE i.audit_id = $1 AND a.org_id = $2
		ORDER BY i.id`, auditID, orgID)
	if err != nil {
		return nil, fmt.Errorf("query audit items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	items := []*models.AuditItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit items: %w", err)
	}
	return items, nil
}

// UpdateItem persists an overwrite of found/notes/checked_at.
func (r *AuditRepository) UpdateItem(ctx context.Context, item *models.AuditItem) error {
	if _, err := r.db.DB().ExecContext(ctx, `
		UPDATE audit_items SET found = $2, notes = $3, checked_at = $4 WHERE id = $1`,
		item.ID, item.Found, item.Notes, item.CheckedAt,
	); err != nil {
		return fmt.Errorf("update audit item: %w", err)
	}
	return nil
}

// CompleteAudit persists the status/completed_at change and publishes the
// AuditCompletedEvent within the same transaction.
func (r *AuditRepository) CompleteAudit(ctx context.Context, audit *models.Audit, counts repositories.ItemCounts) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE audits SET status = $3, completed_at = $4 WHERE id = $1 AND org_id = $2`,
			audit.ID, audit.OrgID, audit.Status.String(), audit.CompletedAt,
		); err != nil {
			return fmt.Errorf("update audit: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCompleted(tx, audit, counts); err != nil {
				return fmt.Errorf("publish audit completed: %w", err)
			}
		}
		return nil
	})
}

// CountItems tallies total and found items for an audit.
func (r *AuditRepository) CountItems(ctx context.Context, orgID, auditID uuid.UUID) (repositories.ItemCounts, error) {
	var counts repositories.ItemCounts
	if err := r.db.DB().QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE i.found)
		FROM audit_items i
		JOIN audits a ON a.id = i.audit_id
		WHERE i.audit_id = $1 AND a.org_id = $2`, auditID, orgID,
	).Scan(&counts.Total, &counts.Found); err != nil {
		return repositories.ItemCounts{}, fmt.Errorf("count audit items: %w", err)
	}
	return counts, nil
}

func (r *AuditRepository) publishStarted(tx *sql.Tx, audit *models.Audit, itemCount int) error {
	event := domainevents.AuditStartedEvent{
		EventID:    uuid.New(),
		Version:    1,
		AuditID:    audit.ID,
		OrgID:      audit.OrgID,
		Name:       audit.Name.String(),
		SiteID:     audit.SiteID,
		Status:     audit.Status.String(),
		ItemCount:  itemCount,
		OccurredAt: audit.StartedAt,
	}
	return r.publish(tx, domainevents.TopicAuditStarted, event, event.EventID)
}

func (r *AuditRepository) publishCompleted(tx *sql.Tx, audit *models.Audit, counts repositories.ItemCounts) error {
	missing := counts.Total - counts.Found
	if missing < 0 {
		missing = 0
	}
	event := domainevents.AuditCompletedEvent{
		EventID: uuid.New(),
		Version: 1,
		AuditID: audit.ID,
		OrgID:   audit.OrgID,
		Total:   counts.Total,
		Found:   counts.Found,
		Missing: missing,
	}
	if audit.CompletedAt != nil {
		event.OccurredAt = *audit.CompletedAt
	}
	return r.publish(tx, domainevents.TopicAuditCompleted, event, event.EventID)
}

func (r *AuditRepository) publish(tx *sql.Tx, topic string, event any, eventID uuid.UUID) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAudit(row rowScanner) (*models.Audit, error) {
	var (
		audit       models.Audit
		name        string
		locationID  uuid.NullUUID
		status      string
		completedAt sql.NullTime
	)
	if err := row.Scan(
		&audit.ID, &audit.OrgID, &name, &audit.SiteID,
		&locationID, &status, &audit.StartedAt, &completedAt,
	); err != nil {
		return nil, err
	}
	audit.Name = models.AuditName(name)
	parsed, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	audit.Status = parsed
	if locationID.Valid {
		audit.LocationID = &locationID.UUID
	}
	if completedAt.Valid {
		audit.CompletedAt = &completedAt.Time
	}
	return &audit, nil
}

func scanItem(row rowScanner) (*models.AuditItem, error) {
	var (
		item      models.AuditItem
		notes     sql.NullString
		checkedAt sql.NullTime
	)
	if err := row.Scan(
		&item.ID, &item.AuditID, &item.AssetID, &item.Found, &notes, &checkedAt,
	); err != nil {
		return nil, err
	}
	if notes.Valid {
		item.Notes = &notes.String
	}
	if checkedAt.Valid {
		item.CheckedAt = &checkedAt.Time
	}
	return &item, nil
}

// nullUUID converts an optional UUID into its database representation.
func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
