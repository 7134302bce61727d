package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// AuditSummaryTTL is the time-to-live for cached audit summaries.
	AuditSummaryTTL = 24 * time.Hour

	auditSummaryKeyPrefix = "audit-summary"
)

// CachedSummary is the denormalized found/missing tally stored in Redis.
// Written by the worker when an audit completes and invalidated whenever a
// checklist item changes.
type CachedSummary struct {
	AuditID uuid.UUID `json:"audit_id"`
	OrgID   uuid.UUID `json:"org_id"`
	Total   int       `json:"total"`
	Found   int       `json:"found"`
	Missing int       `json:"missing"`
}

// AuditSummaryCache provides structured read/write operations for audit
// summary entries. Keys are scoped by orgID to prevent cross-tenant leakage.
// Key format: "audit-summary:{orgID}:{auditID}"
type AuditSummaryCache struct {
	client *RedisClient
}

// NewAuditSummaryCache creates an AuditSummaryCache backed by the given RedisClient.
func NewAuditSummaryCache(r *RedisClient) *AuditSummaryCache {
	return &AuditSummaryCache{client: r}
}

// Get retrieves a cached summary by org + audit ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *AuditSummaryCache) Get(ctx context.Context, orgID, auditID uuid.UUID) (*CachedSummary, error) {
	key := c.key(orgID, auditID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	total, err := strconv.Atoi(vals["total"])
	if err != nil {
		return nil, fmt.Errorf("cache parse total: %w", err)
	}
	found, err := strconv.Atoi(vals["found"])
	if err != nil {
		return nil, fmt.Errorf("cache parse found: %w", err)
	}
	missing, err := strconv.Atoi(vals["missing"])
	if err != nil {
		return nil, fmt.Errorf("cache parse missing: %w", err)
	}

	return &CachedSummary{
		AuditID: auditID,
		OrgID:   orgID,
		Total:   total,
		Found:   found,
		Missing: missing,
	}, nil
}

// Set writes a summary as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *AuditSummaryCache) Set(ctx context.Context, s *CachedSummary) error {
	key := c.key(s.OrgID, s.AuditID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"total", strconv.Itoa(s.Total),
		"found", strconv.Itoa(s.Found),
		"missing", strconv.Itoa(s.Missing),
	)
	pipe.Expire(ctx, key, AuditSummaryTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached summary.
func (c *AuditSummaryCache) Delete(ctx context.Context, orgID, auditID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(orgID, auditID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "audit-summary:{orgID}:{auditID}"
func (c *AuditSummaryCache) key(orgID, auditID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", auditSummaryKeyPrefix, orgID, auditID)
}
