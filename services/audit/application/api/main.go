package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/trackhq/trackhq/pkg/app"
	assetsvcs "github.com/trackhq/trackhq/services/asset/application/services"
	"github.com/trackhq/trackhq/services/audit/application/handlers"
	appsvcs "github.com/trackhq/trackhq/services/audit/application/services"
)

// AuditRoutes registers audit endpoints on the provided chi router.
// The asset context's services are passed in as the audit context's
// asset directory.
func AuditRoutes(r chi.Router, a *app.Application, assets *assetsvcs.Services) {
	svcs := appsvcs.New(a, assets)
	r.Group(func(r chi.Router) {
		r.Route("/audits", func(r chi.Router) {
			r.Post("/", handlers.NewPostAuditHandler(svcs).Execute)
			r.Get("/", handlers.NewGetAuditsHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetAuditHandler(svcs).Execute)
			r.Post("/{id}/complete", handlers.NewPostCompleteHandler(svcs).Execute)
			r.Get("/{id}/summary", handlers.NewGetSummaryHandler(svcs).Execute)
			r.Get("/{id}/variance", handlers.NewGetVarianceHandler(svcs).Execute)
			r.Get("/{id}/variance.csv", handlers.NewGetVarianceCSVHandler(svcs).Execute)
			r.Patch("/{id}/items/{itemID}", handlers.NewPatchAuditItemHandler(svcs).Execute)
		})
	})
}
