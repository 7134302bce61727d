package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/trackhq/trackhq/pkg/app"
	"github.com/trackhq/trackhq/pkg/cache"
	"github.com/trackhq/trackhq/pkg/config"
	"github.com/trackhq/trackhq/pkg/database"
	"github.com/trackhq/trackhq/pkg/events"
	"github.com/trackhq/trackhq/pkg/logger"
	"github.com/trackhq/trackhq/pkg/telemetry"
	assetEvents "github.com/trackhq/trackhq/services/asset/domain/events"
	auditEvents "github.com/trackhq/trackhq/services/audit/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	//temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	//if err != nil {
	//	log.Error("failed to initialize temporal client", "error", err)
	//	os.Exit(1) //nolint:gocritic
	//}
	//defer temporalClient.Close()

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		//TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	outboxCtx, cancelOutbox := context.WithCancel(ctx)
	go runOutboxRelay(outboxCtx, appConfig)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancelOutbox()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	subscriptions := []struct {
		topic   string
		handler func(context.Context, *message.Message) error
	}{
		{assetEvents.TopicAssetCreated, handleAssetCreated(a)},
		{auditEvents.TopicAuditCompleted, handleAuditCompleted(a)},
	}

	topics := make([]string, 0, len(subscriptions))
	for _, sub := range subscriptions {
		errCh, err := a.EventBus.Subscribe(ctx, sub.topic, sub.handler)
		if err != nil {
			return err
		}
		topics = append(topics, sub.topic)

		// Drain subscriber errors in background so the channel never blocks.
		topic := sub.topic
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}()
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleAssetCreated returns a handler for asset.created events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Warms the Redis read-model cache so subsequent GetByID calls are served from cache.
func handleAssetCreated(a *app.Application) func(context.Context, *message.Message) error {
	assetCache := cache.NewAssetCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt assetEvents.AssetCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := assetCache.Set(ctx, &cache.CachedAsset{
			ID:          evt.AssetID,
			OrgID:       evt.OrgID,
			Tag:         evt.Tag,
			Description: evt.Description,
			CategoryID:  evt.CategoryID,
			SiteID:      evt.SiteID,
			LocationID:  evt.LocationID,
			Status:      evt.Status,
			CreatedAt:   evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for asset.created",
				"asset_id", evt.AssetID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"asset_id", evt.AssetID, "org_id", evt.OrgID)
		}

		return nil
	}
}

// handleAuditCompleted returns a handler for audit.completed events.
// Writes the final found/missing tally into the summary read-model cache so
// summary reads for completed audits skip Postgres.
func handleAuditCompleted(a *app.Application) func(context.Context, *message.Message) error {
	summaryCache := cache.NewAuditSummaryCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt auditEvents.AuditCompletedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := summaryCache.Set(ctx, &cache.CachedSummary{
			AuditID: evt.AuditID,
			OrgID:   evt.OrgID,
			Total:   evt.Total,
			Found:   evt.Found,
			Missing: evt.Missing,
		}); err != nil {
			a.Logger.WarnContext(ctx, "cache warm failed for audit.completed",
				"audit_id", evt.AuditID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "summary cache warmed",
				"audit_id", evt.AuditID, "org_id", evt.OrgID)
		}

		return nil
	}
}

// runOutboxRelay polls the outbox for unpublished events and forwards them to
// the EventBus. Runs until ctx is cancelled.
// The Watermill Forwarder (started in cmd/api/main.go) handles at-least-once
// delivery; this relay is a secondary safety net for future outbox tables.
func runOutboxRelay(ctx context.Context, a *app.Application) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("outbox relay shutting down")
			return
		case <-ticker.C:
			// TODO: query outbox table, publish unpublished events, mark as published
		}
	}
}
