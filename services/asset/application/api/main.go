package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/trackhq/trackhq/pkg/app"
	"github.com/trackhq/trackhq/services/asset/application/handlers"
	appsvcs "github.com/trackhq/trackhq/services/asset/application/services"
)

// AssetRoutes registers asset endpoints on the provided chi router and returns
// the service container so other contexts (audits) can consume it.
func AssetRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			r.Post("/", handlers.NewPostAssetHandler(svcs).Execute)
			r.Get("/", handlers.NewGetAssetsHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetAssetHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteAssetHandler(svcs).Execute)
		})
	})
	return svcs
}
