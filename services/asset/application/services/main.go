package services

import (
	"github.com/trackhq/trackhq/pkg/app"
	"github.com/trackhq/trackhq/pkg/cache"
	"github.com/trackhq/trackhq/services/asset/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Asset *AssetService
}

// New wires all asset application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewAssetRepository(a.Db, a.EventBus)
	assetCache := cache.NewAssetCache(a.Redis)
	return &Services{
		Asset: NewAssetService(repo, assetCache),
	}
}
