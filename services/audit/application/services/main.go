package services

import (
	"github.com/trackhq/trackhq/pkg/app"
	"github.com/trackhq/trackhq/pkg/cache"
	assetsvcs "github.com/trackhq/trackhq/services/asset/application/services"
	"github.com/trackhq/trackhq/services/audit/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Audit *AuditService
}

// New wires all audit application services with infrastructure from the
// Application container. The asset context's service doubles as the audit
// context's AssetDirectory.
func New(a *app.Application, assets *assetsvcs.Services) *Services {
	repo := postgres.NewAuditRepository(a.Db, a.EventBus)
	summaryCache := cache.NewAuditSummaryCache(a.Redis)
	return &Services{
		Audit: NewAuditService(repo, NewAssetDirectory(assets.Asset), summaryCache),
	}
}
